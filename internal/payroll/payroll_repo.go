package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreatePayroll(ctx context.Context, p *Payroll) error
	FindAllPayrolls(ctx context.Context, month, year *int) ([]Payroll, error)
	FindPayrollByID(ctx context.Context, id string) (*Payroll, error)
	FindPayrollByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*Payroll, error)
	FindPayrollsByGeneration(ctx context.Context, generationID string) ([]Payroll, error)
	UpdatePayroll(ctx context.Context, p *Payroll) error
	MarkAllPaid(ctx context.Context, generationID string, paidAt time.Time) (int64, error)
	NullifyGenerationLinks(ctx context.Context, generationID string) error

	CreateGeneration(ctx context.Context, g *PayrollGeneration) error
	FindGenerationByID(ctx context.Context, id string) (*PayrollGeneration, error)
	FindGenerationByPeriod(ctx context.Context, month, year int) (*PayrollGeneration, error)
	FindAllGenerations(ctx context.Context, month, year *int) ([]PayrollGeneration, error)
	UpdateGeneration(ctx context.Context, g *PayrollGeneration) error
	DeleteGeneration(ctx context.Context, id string) error

	ListActiveEmployees(ctx context.Context, employeeIDs []string) ([]EmployeeRow, error)
	ListCompletedAppointments(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]CommissionRow, error)
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

func (r *repository) CreatePayroll(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllPayrolls(ctx context.Context, month, year *int) ([]Payroll, error) {
	db := r.db.WithContext(ctx).
		Order("year DESC, month DESC, created_at ASC")

	if month != nil {
		db = db.Where("month = ?", *month)
	}
	if year != nil {
		db = db.Where("year = ?", *year)
	}

	var payrolls []Payroll
	err := db.Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindPayrollByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindPayrollByEmployeeAndPeriod(
	ctx context.Context,
	employeeID string,
	month, year int,
) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("month = ?", month).
		Where("year = ?", year).
		First(&p).Error
	return &p, err
}

func (r *repository) FindPayrollsByGeneration(
	ctx context.Context,
	generationID string,
) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Where("generation_id = ?", generationID).
		Order("created_at ASC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) UpdatePayroll(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// MarkAllPaid hanya menyentuh baris PENDING; baris yang sudah PAID
// tidak match lagi, jadi aman dipanggil berulang.
func (r *repository) MarkAllPaid(
	ctx context.Context,
	generationID string,
	paidAt time.Time,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("generation_id = ?", generationID).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":  StatusPaid,
			"paid_at": paidAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) NullifyGenerationLinks(ctx context.Context, generationID string) error {
	return r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("generation_id = ?", generationID).
		Update("generation_id", nil).Error
}

func (r *repository) CreateGeneration(ctx context.Context, g *PayrollGeneration) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindGenerationByID(ctx context.Context, id string) (*PayrollGeneration, error) {
	var g PayrollGeneration
	err := r.db.WithContext(ctx).
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) FindGenerationByPeriod(
	ctx context.Context,
	month, year int,
) (*PayrollGeneration, error) {
	var g PayrollGeneration
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Where("year = ?", year).
		First(&g).Error
	return &g, err
}

func (r *repository) FindAllGenerations(
	ctx context.Context,
	month, year *int,
) ([]PayrollGeneration, error) {
	db := r.db.WithContext(ctx).
		Order("year DESC, month DESC")

	if month != nil {
		db = db.Where("month = ?", *month)
	}
	if year != nil {
		db = db.Where("year = ?", *year)
	}

	var generations []PayrollGeneration
	err := db.Find(&generations).Error
	return generations, err
}

func (r *repository) UpdateGeneration(ctx context.Context, g *PayrollGeneration) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *repository) DeleteGeneration(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&PayrollGeneration{}, "id = ?", id).Error
}

func (r *repository) ListActiveEmployees(
	ctx context.Context,
	employeeIDs []string,
) ([]EmployeeRow, error) {
	db := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC")

	if len(employeeIDs) > 0 {
		db = db.Where("id IN ?", employeeIDs)
	}

	var rows []EmployeeRow
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) ListCompletedAppointments(
	ctx context.Context,
	employeeID uuid.UUID,
	start, end time.Time,
) ([]CommissionRow, error) {
	var rows []CommissionRow
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", "COMPLETED").
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}
