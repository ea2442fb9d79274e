package appointment

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=appointment_repo.go -destination=mock/appointment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, appt *Appointment) error
	FindAll(ctx context.Context, filter ListFilter) ([]Appointment, error)
	FindByID(ctx context.Context, id string) (*Appointment, error)
	FindActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	CreateLines(ctx context.Context, lines []AppointmentLine) error
	DeleteLines(ctx context.Context, appointmentID uuid.UUID, serviceIDs []uuid.UUID) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, appt *Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	db := r.db.WithContext(ctx).
		Preload("Lines").
		Order("date DESC, start_time ASC")

	if filter.Date != nil && *filter.Date != "" {
		db = db.Where("date = ?", *filter.Date)
	}
	if filter.CustomerID != nil && *filter.CustomerID != "" {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}

	var appts []Appointment
	err := db.Find(&appts).Error
	return appts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Appointment, error) {
	var appt Appointment
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&appt, "id = ?", id).Error
	return &appt, err
}

// FindActiveByEmployeeAndDate mengembalikan semua appointment non-CANCELLED
// milik satu karyawan di satu tanggal kalender. Date dibandingkan sebagai
// kolom DATE, bukan timestamp.
func (r *repository) FindActiveByEmployeeAndDate(
	ctx context.Context,
	employeeID string,
	date time.Time,
) ([]Appointment, error) {
	var appts []Appointment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("status <> ?", StatusCancelled).
		Find(&appts).Error
	return appts, err
}

func (r *repository) Update(ctx context.Context, appt *Appointment) error {
	return r.db.WithContext(ctx).
		Omit("Lines").
		Save(appt).Error
}

func (r *repository) CreateLines(ctx context.Context, lines []AppointmentLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) DeleteLines(
	ctx context.Context,
	appointmentID uuid.UUID,
	serviceIDs []uuid.UUID,
) error {
	if len(serviceIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Where("service_id IN ?", serviceIDs).
		Delete(&AppointmentLine{}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", id).
		Delete(&AppointmentLine{}).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&Appointment{}, "id = ?", id).Error
}
