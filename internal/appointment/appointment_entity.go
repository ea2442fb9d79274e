package appointment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusNoShow     = "NO_SHOW"
)

// Appointment adalah satu booking pelanggan ke satu karyawan.
// TotalPrice dihitung dari snapshot harga di AppointmentLine,
// bukan dari harga katalog saat ini.
type Appointment struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingNumber    string    `gorm:"size:30;not null;uniqueIndex:uq_appointment_booking_number"`
	CustomerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;index:idx_appointment_employee_date,priority:1"`
	Date             time.Time `gorm:"type:date;not null;index:idx_appointment_employee_date,priority:2"`
	StartTime        time.Time `gorm:"not null"`
	EndTime          time.Time `gorm:"not null"`
	Status           string    `gorm:"size:20;not null;default:'SCHEDULED';index"`
	TotalPrice       int64     `gorm:"type:bigint;not null;default:0"`
	CommissionAmount int64     `gorm:"type:bigint;not null;default:0"`
	ServiceType      *string   `gorm:"size:50"`
	OvertimePay      int64     `gorm:"type:bigint;not null;default:0"`
	TransportFee     int64     `gorm:"type:bigint;not null;default:0"`
	Notes            *string   `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Lines []AppointmentLine `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentLine adalah join row appointment <-> service.
// Price di sini snapshot harga katalog saat layanan ditambahkan,
// dan tidak pernah dihitung ulang dari katalog.
type AppointmentLine struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceName   string    `gorm:"size:255;not null"`
	Price         int64     `gorm:"type:bigint;not null"`
	CreatedAt     time.Time
}

func (AppointmentLine) TableName() string {
	return "appointment_services"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
