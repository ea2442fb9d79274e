package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"

	GenerationStatusInProgress = "IN_PROGRESS"
	GenerationStatusCompleted  = "COMPLETED"
)

// Payroll adalah gaji satu karyawan untuk satu periode (month, year).
// Unique index periode adalah guard terakhir terhadap generate ganda;
// pre-check di service hanya fast path.
type Payroll struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period,priority:1"`
	Month        int       `gorm:"not null;uniqueIndex:uq_payroll_employee_period,priority:2"`
	Year         int       `gorm:"not null;uniqueIndex:uq_payroll_employee_period,priority:3"`
	BaseSalary   int64     `gorm:"type:bigint;not null"`
	Commission   int64     `gorm:"type:bigint;not null;default:0"`
	Bonus        int64     `gorm:"type:bigint;not null;default:0"`
	Deduction    int64     `gorm:"type:bigint;not null;default:0"`
	TotalSalary  int64     `gorm:"type:bigint;not null"`
	Status       string    `gorm:"size:20;not null;default:'PENDING';index"`
	PaidAt       *time.Time
	GenerationID *uuid.UUID `gorm:"type:uuid;index"`
	Notes        *string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}

// PayrollGeneration adalah record batch satu kali generate per periode.
type PayrollGeneration struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Month         int       `gorm:"not null;uniqueIndex:uq_payroll_generation_period,priority:1"`
	Year          int       `gorm:"not null;uniqueIndex:uq_payroll_generation_period,priority:2"`
	Status        string    `gorm:"size:20;not null;default:'IN_PROGRESS'"`
	EmployeeCount int       `gorm:"not null;default:0"`
	TotalAmount   int64     `gorm:"type:bigint;not null;default:0"`
	GeneratedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PayrollGeneration) TableName() string {
	return "payroll_generations"
}

// EmployeeRow adalah proyeksi baris karyawan yang dibutuhkan generator.
type EmployeeRow struct {
	ID     uuid.UUID
	Name   string
	Salary int64
}

func (EmployeeRow) TableName() string {
	return "employees"
}

// CommissionRow adalah proyeksi appointment COMPLETED untuk agregasi komisi.
// CommissionAmount nullable; nil dihitung 0.
type CommissionRow struct {
	ID               uuid.UUID
	CommissionAmount *int64
}

func (CommissionRow) TableName() string {
	return "appointments"
}
