package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-salon/internal/events"
	"go-salon/internal/messaging/kafka"
	payrollerrors "go-salon/internal/payroll/errors"
	"go-salon/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, generatedBy string, req GeneratePayrollRequest) (GenerateResponse, error)
	GetAll(ctx context.Context, filter GenerationFilter) ([]PayrollResponse, error)
	GetGenerations(ctx context.Context, filter GenerationFilter) ([]GenerationResponse, error)
	GetGenerationDetail(ctx context.Context, id string) (GenerationDetailResponse, error)
	DeleteGeneration(ctx context.Context, id string) error
	MarkAsPaid(ctx context.Context, id string) (PayrollResponse, error)
	PayAll(ctx context.Context, generationID string) (PayAllResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository) Service {
	return &service{
		db:         db,
		repo:       repo,
		outboxRepo: outboxRepo,
		logger:     zap.L().Named("payroll.service"),
	}
}

// Generate membuat satu batch payroll untuk periode (month, year).
// Loop per karyawan sengaja tidak dibungkus satu transaksi besar:
// satu karyawan gagal tidak membatalkan baris yang sudah dibuat,
// dan hasil tiap karyawan dilaporkan di Results. Unique index di
// payroll_generations dan payrolls menutup race antar request.
func (s *service) Generate(
	ctx context.Context,
	generatedBy string,
	req GeneratePayrollRequest,
) (GenerateResponse, error) {
	generatedByUUID, err := uuid.Parse(generatedBy)
	if err != nil {
		return GenerateResponse{}, payrollerrors.ErrInvalidPayrollID
	}
	if req.Month < 1 || req.Month > 12 {
		return GenerateResponse{}, payrollerrors.ErrInvalidPeriod
	}

	gen, err := s.createGeneration(ctx, generatedByUUID, req.Month, req.Year)
	if err != nil {
		return GenerateResponse{}, err
	}

	employees, err := s.repo.ListActiveEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return GenerateResponse{}, err
	}

	periodStart, periodEnd := monthBounds(req.Year, req.Month)

	results := make([]GenerationResultItem, 0, len(employees))
	var (
		createdCount int
		totalAmount  int64
	)

	for _, emp := range employees {
		item := s.generateForEmployee(ctx, gen, emp, periodStart, periodEnd)
		if item.Status == ResultCreated {
			createdCount++
			totalAmount += item.Payroll.TotalSalary
		}
		results = append(results, item)
	}

	gen.EmployeeCount = createdCount
	gen.TotalAmount = totalAmount
	gen.Status = GenerationStatusCompleted

	if err := s.finalizeGeneration(ctx, gen); err != nil {
		return GenerateResponse{}, err
	}

	s.logger.Info("payroll generation completed",
		zap.String("generation_id", gen.ID.String()),
		zap.Int("month", gen.Month),
		zap.Int("year", gen.Year),
		zap.Int("created", createdCount),
		zap.Int64("total_amount", totalAmount),
	)

	return GenerateResponse{
		Generation: mapGenerationToResponse(*gen),
		Results:    results,
	}, nil
}

// createGeneration menulis baris batch IN_PROGRESS lebih dulu, supaya
// run yang berhenti di tengah tetap terlihat di audit.
func (s *service) createGeneration(
	ctx context.Context,
	generatedBy uuid.UUID,
	month, year int,
) (*PayrollGeneration, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindGenerationByPeriod(ctx, month, year)
	if err == nil {
		return nil, payrollerrors.ErrGenerationExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gen := &PayrollGeneration{
		ID:          uuid.New(),
		Month:       month,
		Year:        year,
		Status:      GenerationStatusInProgress,
		GeneratedBy: generatedBy,
	}

	if err := qtx.CreateGeneration(ctx, gen); err != nil {
		if isUniqueViolation(err, "uq_payroll_generation_period") {
			return nil, payrollerrors.ErrGenerationExists
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return gen, nil
}

func (s *service) generateForEmployee(
	ctx context.Context,
	gen *PayrollGeneration,
	emp EmployeeRow,
	periodStart, periodEnd time.Time,
) GenerationResultItem {
	item := GenerationResultItem{
		EmployeeID:   emp.ID.String(),
		EmployeeName: emp.Name,
	}

	_, err := s.repo.FindPayrollByEmployeeAndPeriod(ctx, emp.ID.String(), gen.Month, gen.Year)
	if err == nil {
		item.Status = ResultSkipped
		item.Reason = strPtr("payroll already exists for this period")
		return item
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		item.Status = ResultFailed
		item.Reason = strPtr(err.Error())
		return item
	}

	commission, err := s.sumCommission(ctx, emp.ID, periodStart, periodEnd)
	if err != nil {
		item.Status = ResultFailed
		item.Reason = strPtr(err.Error())
		return item
	}

	genID := gen.ID
	p := &Payroll{
		ID:           uuid.New(),
		EmployeeID:   emp.ID,
		Month:        gen.Month,
		Year:         gen.Year,
		BaseSalary:   emp.Salary,
		Commission:   commission,
		TotalSalary:  emp.Salary + commission,
		Status:       StatusPending,
		GenerationID: &genID,
	}

	if err := s.repo.CreatePayroll(ctx, p); err != nil {
		if isUniqueViolation(err, "uq_payroll_employee_period") {
			item.Status = ResultSkipped
			item.Reason = strPtr("payroll already exists for this period")
			return item
		}
		item.Status = ResultFailed
		item.Reason = strPtr(err.Error())
		return item
	}

	resp := mapPayrollToResponse(*p)
	item.Status = ResultCreated
	item.Payroll = &resp
	return item
}

// sumCommission menjumlahkan commissionAmount appointment COMPLETED
// dalam periode; nilai null dihitung 0.
func (s *service) sumCommission(
	ctx context.Context,
	employeeID uuid.UUID,
	periodStart, periodEnd time.Time,
) (int64, error) {
	rows, err := s.repo.ListCompletedAppointments(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, row := range rows {
		if row.CommissionAmount != nil {
			total += *row.CommissionAmount
		}
	}
	return total, nil
}

func (s *service) finalizeGeneration(ctx context.Context, gen *PayrollGeneration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.UpdateGeneration(ctx, gen); err != nil {
		return err
	}

	if err := s.enqueueGenerationEvent(ctx, tx, gen); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) enqueueGenerationEvent(
	ctx context.Context,
	tx *sql.Tx,
	gen *PayrollGeneration,
) error {
	event := events.PayrollGenerationCompletedEvent{
		EventType:     "payroll.generation.completed",
		GenerationID:  gen.ID.String(),
		Month:         gen.Month,
		Year:          gen.Year,
		EmployeeCount: gen.EmployeeCount,
		TotalAmount:   gen.TotalAmount,
		GeneratedBy:   gen.GeneratedBy.String(),
		OccurredAt:    time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_generation",
		AggregateID:   gen.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollGenerationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(
	ctx context.Context,
	filter GenerationFilter,
) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllPayrolls(ctx, filter.Month, filter.Year)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapPayrollToResponse(p)
	}
	return resp, nil
}

func (s *service) GetGenerations(
	ctx context.Context,
	filter GenerationFilter,
) ([]GenerationResponse, error) {
	generations, err := s.repo.FindAllGenerations(ctx, filter.Month, filter.Year)
	if err != nil {
		return nil, err
	}

	resp := make([]GenerationResponse, len(generations))
	for i, gen := range generations {
		resp[i] = mapGenerationToResponse(gen)
	}
	return resp, nil
}

func (s *service) GetGenerationDetail(
	ctx context.Context,
	id string,
) (GenerationDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GenerationDetailResponse{}, payrollerrors.ErrInvalidGenerationID
	}

	gen, err := s.repo.FindGenerationByID(ctx, id)
	if err != nil {
		return GenerationDetailResponse{}, mapGenerationError(err)
	}

	payrolls, err := s.repo.FindPayrollsByGeneration(ctx, id)
	if err != nil {
		return GenerationDetailResponse{}, err
	}

	resp := GenerationDetailResponse{
		Generation: mapGenerationToResponse(*gen),
		Payrolls:   make([]PayrollResponse, len(payrolls)),
	}
	for i, p := range payrolls {
		resp.Payrolls[i] = mapPayrollToResponse(p)
	}
	return resp, nil
}

// DeleteGeneration melepas link payroll ke batch sebelum menghapus
// batch-nya. Baris payroll tidak pernah ikut terhapus.
func (s *service) DeleteGeneration(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidGenerationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindGenerationByID(ctx, id); err != nil {
		return mapGenerationError(err)
	}

	if err := qtx.NullifyGenerationLinks(ctx, id); err != nil {
		return err
	}

	if err := qtx.DeleteGeneration(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) MarkAsPaid(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindPayrollByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapPayrollError(err)
	}

	switch p.Status {
	case StatusPaid:
		// sudah dibayar, no-op
		return mapPayrollToResponse(*p), nil
	case StatusCancelled:
		return PayrollResponse{}, payrollerrors.ErrPayrollNotPending
	}

	now := time.Now()
	p.Status = StatusPaid
	p.PaidAt = &now

	if err := qtx.UpdatePayroll(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapPayrollToResponse(*p), nil
}

func (s *service) PayAll(ctx context.Context, generationID string) (PayAllResponse, error) {
	if _, err := uuid.Parse(generationID); err != nil {
		return PayAllResponse{}, payrollerrors.ErrInvalidGenerationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayAllResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindGenerationByID(ctx, generationID); err != nil {
		return PayAllResponse{}, mapGenerationError(err)
	}

	updated, err := qtx.MarkAllPaid(ctx, generationID, time.Now())
	if err != nil {
		return PayAllResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayAllResponse{}, err
	}

	return PayAllResponse{Updated: updated}, nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdatePayrollRequest,
) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindPayrollByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapPayrollError(err)
	}

	if req.BaseSalary != nil {
		p.BaseSalary = *req.BaseSalary
	}
	if req.Commission != nil {
		p.Commission = *req.Commission
	}
	if req.Bonus != nil {
		p.Bonus = *req.Bonus
	}
	if req.Deduction != nil {
		p.Deduction = *req.Deduction
	}
	// Total selalu dihitung ulang dari keempat field hasil merge,
	// bukan hanya dari field yang berubah.
	p.TotalSalary = p.BaseSalary + p.Commission + p.Bonus - p.Deduction

	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	if req.PaidAt != nil && *req.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return PayrollResponse{}, payrollerrors.ErrInvalidPaidAt
		}
		p.PaidAt = &paidAt
	}

	if err := qtx.UpdatePayroll(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	return mapPayrollToResponse(*p), nil
}

// monthBounds mengembalikan tanggal 1 dan tanggal terakhir bulan
// tersebut, keduanya inklusif, dalam UTC.
func monthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

func strPtr(s string) *string {
	return &s
}

func mapPayrollError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	return err
}

func mapGenerationError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrGenerationNotFound
	}
	return err
}

func mapPayrollToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		Month:       p.Month,
		Year:        p.Year,
		BaseSalary:  p.BaseSalary,
		Commission:  p.Commission,
		Bonus:       p.Bonus,
		Deduction:   p.Deduction,
		TotalSalary: p.TotalSalary,
		Status:      p.Status,
		Notes:       p.Notes,
	}

	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if p.GenerationID != nil {
		v := p.GenerationID.String()
		resp.GenerationID = &v
	}

	return resp
}

func mapGenerationToResponse(g PayrollGeneration) GenerationResponse {
	return GenerationResponse{
		ID:            g.ID.String(),
		Month:         g.Month,
		Year:          g.Year,
		Status:        g.Status,
		EmployeeCount: g.EmployeeCount,
		TotalAmount:   g.TotalAmount,
		GeneratedBy:   g.GeneratedBy.String(),
	}
}
