package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appointmenterrors "go-salon/internal/appointment/errors"
	"go-salon/internal/catalog"
	"go-salon/internal/events"
	"go-salon/internal/messaging/kafka"
	"go-salon/internal/shared/contextutil"
	"go-salon/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const bookingCounterType = "appointment"

//go:generate mockgen -source=appointment_service.go -destination=mock/appointment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAppointmentRequest) (AppointmentResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]AppointmentResponse, error)
	GetByID(ctx context.Context, id string) (AppointmentResponse, error)
	Update(ctx context.Context, id string, req UpdateAppointmentRequest) (AppointmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	catalogRepo catalog.Repository
	counterRepo counter.Repository
	outboxRepo  kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	catalogRepo catalog.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		catalogRepo: catalogRepo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
		logger:      zap.L().Named("appointment.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateAppointmentRequest,
) (AppointmentResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidAppointmentID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidAppointmentID
	}

	date, startTime, endTime, err := parseSchedule(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return AppointmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AppointmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	svcs, err := s.catalogRepo.FindByIDs(ctx, req.ServiceIDs)
	if err != nil {
		return AppointmentResponse{}, err
	}
	if len(svcs) != len(uniqueIDs(req.ServiceIDs)) {
		return AppointmentResponse{}, appointmenterrors.ErrServiceNotFound
	}

	available, err := s.isSlotAvailable(ctx, qtx, req.EmployeeID, date, startTime, endTime, nil)
	if err != nil {
		return AppointmentResponse{}, err
	}
	if !available {
		return AppointmentResponse{}, appointmenterrors.ErrTimeSlotTaken
	}

	seq, err := s.counterRepo.GetNextValue(ctx, bookingCounterType)
	if err != nil {
		return AppointmentResponse{}, err
	}

	appt := &Appointment{
		ID:            uuid.New(),
		BookingNumber: fmt.Sprintf("APT-%s-%04d", date.Format("20060102"), seq),
		CustomerID:    customerID,
		EmployeeID:    employeeID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		Status:        StatusScheduled,
		ServiceType:   req.ServiceType,
		Notes:         req.Notes,
	}
	if req.CommissionAmount != nil {
		appt.CommissionAmount = *req.CommissionAmount
	}
	if req.OvertimePay != nil {
		appt.OvertimePay = *req.OvertimePay
	}
	if req.TransportFee != nil {
		appt.TransportFee = *req.TransportFee
	}

	// Snapshot harga katalog ke join row. Edit harga katalog setelah ini
	// tidak mengubah totalPrice appointment.
	for _, svc := range svcs {
		appt.Lines = append(appt.Lines, AppointmentLine{
			ID:            uuid.New(),
			AppointmentID: appt.ID,
			ServiceID:     svc.ID,
			ServiceName:   svc.Name,
			Price:         svc.Price,
		})
		appt.TotalPrice += svc.Price
	}

	if err := qtx.Create(ctx, appt); err != nil {
		return AppointmentResponse{}, err
	}

	if err := s.enqueueBookedEvent(ctx, tx, appt); err != nil {
		return AppointmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AppointmentResponse{}, err
	}

	s.logger.Info("appointment created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("booking_number", appt.BookingNumber),
		zap.String("employee_id", appt.EmployeeID.String()),
	)

	return mapToResponse(*appt), nil
}

func (s *service) GetAll(
	ctx context.Context,
	filter ListFilter,
) ([]AppointmentResponse, error) {
	if filter.Date != nil && *filter.Date != "" {
		if _, err := time.Parse("2006-01-02", *filter.Date); err != nil {
			return nil, appointmenterrors.ErrInvalidDate
		}
	}

	appts, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(appts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AppointmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidAppointmentID
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AppointmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*appt), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateAppointmentRequest,
) (AppointmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidAppointmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AppointmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	appt, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AppointmentResponse{}, mapRepositoryError(err)
	}

	wasCancelled := appt.Status == StatusCancelled
	rescheduled := false

	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return AppointmentResponse{}, appointmenterrors.ErrInvalidAppointmentID
		}
		appt.CustomerID = customerID
	}
	if req.EmployeeID != nil {
		employeeID, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return AppointmentResponse{}, appointmenterrors.ErrInvalidAppointmentID
		}
		appt.EmployeeID = employeeID
		rescheduled = true
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return AppointmentResponse{}, err
		}
		appt.Date = date
		rescheduled = true
	}
	if req.StartTime != nil {
		startTime, err := parseTime(*req.StartTime)
		if err != nil {
			return AppointmentResponse{}, err
		}
		appt.StartTime = startTime
		rescheduled = true
	}
	if req.EndTime != nil {
		endTime, err := parseTime(*req.EndTime)
		if err != nil {
			return AppointmentResponse{}, err
		}
		appt.EndTime = endTime
		rescheduled = true
	}
	if !appt.EndTime.After(appt.StartTime) {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidTimeRange
	}

	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return AppointmentResponse{}, appointmenterrors.ErrInvalidStatus
		}
		appt.Status = *req.Status
	}
	if req.Notes != nil {
		appt.Notes = req.Notes
	}
	if req.ServiceType != nil {
		appt.ServiceType = req.ServiceType
	}
	if req.CommissionAmount != nil {
		appt.CommissionAmount = *req.CommissionAmount
	}
	if req.OvertimePay != nil {
		appt.OvertimePay = *req.OvertimePay
	}
	if req.TransportFee != nil {
		appt.TransportFee = *req.TransportFee
	}

	// Cek konflik pakai nilai efektif hasil merge, exclude diri sendiri.
	// Un-cancel juga dicek: slot-nya sudah dilepas waktu di-cancel dan
	// bisa saja sudah diisi booking lain.
	if (rescheduled || wasCancelled) && appt.Status != StatusCancelled {
		excludeID := appt.ID
		available, err := s.isSlotAvailable(
			ctx, qtx,
			appt.EmployeeID.String(), appt.Date, appt.StartTime, appt.EndTime,
			&excludeID,
		)
		if err != nil {
			return AppointmentResponse{}, err
		}
		if !available {
			return AppointmentResponse{}, appointmenterrors.ErrTimeSlotTaken
		}
	}

	if req.ServiceIDs != nil {
		if err := s.reconcileLines(ctx, qtx, appt, req.ServiceIDs); err != nil {
			return AppointmentResponse{}, err
		}
	}

	if err := qtx.Update(ctx, appt); err != nil {
		return AppointmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AppointmentResponse{}, err
	}

	return mapToResponse(*appt), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appointmenterrors.ErrInvalidAppointmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// reconcileLines menyamakan join row dengan serviceIds yang diminta.
// Layanan yang dipertahankan tetap memakai snapshot harga lamanya;
// hanya layanan baru yang disnapshot dari harga katalog saat ini.
func (s *service) reconcileLines(
	ctx context.Context,
	qtx Repository,
	appt *Appointment,
	serviceIDs []string,
) error {
	requested := make(map[uuid.UUID]bool, len(serviceIDs))
	for _, raw := range serviceIDs {
		svcID, err := uuid.Parse(raw)
		if err != nil {
			return appointmenterrors.ErrServiceNotFound
		}
		requested[svcID] = true
	}

	var (
		kept    []AppointmentLine
		removed []uuid.UUID
	)
	existing := make(map[uuid.UUID]bool, len(appt.Lines))
	for _, line := range appt.Lines {
		existing[line.ServiceID] = true
		if requested[line.ServiceID] {
			kept = append(kept, line)
		} else {
			removed = append(removed, line.ServiceID)
		}
	}

	var addedIDs []string
	for svcID := range requested {
		if !existing[svcID] {
			addedIDs = append(addedIDs, svcID.String())
		}
	}

	var added []AppointmentLine
	if len(addedIDs) > 0 {
		svcs, err := s.catalogRepo.FindByIDs(ctx, addedIDs)
		if err != nil {
			return err
		}
		if len(svcs) != len(addedIDs) {
			return appointmenterrors.ErrServiceNotFound
		}
		for _, svc := range svcs {
			added = append(added, AppointmentLine{
				ID:            uuid.New(),
				AppointmentID: appt.ID,
				ServiceID:     svc.ID,
				ServiceName:   svc.Name,
				Price:         svc.Price,
			})
		}
	}

	if err := qtx.DeleteLines(ctx, appt.ID, removed); err != nil {
		return err
	}
	if err := qtx.CreateLines(ctx, added); err != nil {
		return err
	}

	appt.Lines = append(kept, added...)
	appt.TotalPrice = 0
	for _, line := range appt.Lines {
		appt.TotalPrice += line.Price
	}

	return nil
}

func (s *service) isSlotAvailable(
	ctx context.Context,
	qtx Repository,
	employeeID string,
	date, startTime, endTime time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	existing, err := qtx.FindActiveByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return false, err
	}

	for _, other := range existing {
		if excludeID != nil && other.ID == *excludeID {
			continue
		}
		if overlaps(startTime, endTime, other.StartTime, other.EndTime) {
			return false, nil
		}
	}

	return true, nil
}

// overlaps menguji irisan dua interval half-open [s1,e1) dan [s2,e2).
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

func (s *service) enqueueBookedEvent(ctx context.Context, tx *sql.Tx, appt *Appointment) error {
	event := events.AppointmentBookedEvent{
		EventType:     "appointment.booked",
		AppointmentID: appt.ID.String(),
		BookingNumber: appt.BookingNumber,
		CustomerID:    appt.CustomerID.String(),
		EmployeeID:    appt.EmployeeID.String(),
		Date:          appt.Date.Format("2006-01-02"),
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		TotalPrice:    appt.TotalPrice,
		OccurredAt:    time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "appointment",
		AggregateID:   appt.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AppointmentLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseSchedule(rawDate, rawStart, rawEnd string) (time.Time, time.Time, time.Time, error) {
	date, err := parseDate(rawDate)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	startTime, err := parseTime(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	endTime, err := parseTime(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	if !endTime.After(startTime) {
		return time.Time{}, time.Time{}, time.Time{}, appointmenterrors.ErrInvalidTimeRange
	}
	return date, startTime, endTime, nil
}

// parseDate menormalisasi tanggal ke key kalender UTC tanpa komponen jam,
// supaya perbandingan tanggal tidak terganggu timezone atau time-of-day.
func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, appointmenterrors.ErrInvalidDate
	}
	return t.UTC(), nil
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, appointmenterrors.ErrInvalidTime
	}
	return t, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appointmenterrors.ErrAppointmentNotFound
	}

	return err
}

func mapToResponse(appt Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:               appt.ID.String(),
		BookingNumber:    appt.BookingNumber,
		CustomerID:       appt.CustomerID.String(),
		EmployeeID:       appt.EmployeeID.String(),
		Date:             appt.Date.Format("2006-01-02"),
		StartTime:        appt.StartTime.Format(time.RFC3339),
		EndTime:          appt.EndTime.Format(time.RFC3339),
		Status:           appt.Status,
		TotalPrice:       appt.TotalPrice,
		CommissionAmount: appt.CommissionAmount,
		ServiceType:      appt.ServiceType,
		OvertimePay:      appt.OvertimePay,
		TransportFee:     appt.TransportFee,
		Notes:            appt.Notes,
		Services:         make([]AppointmentLineResponse, 0, len(appt.Lines)),
	}

	for _, line := range appt.Lines {
		resp.Services = append(resp.Services, AppointmentLineResponse{
			ServiceID:   line.ServiceID.String(),
			ServiceName: line.ServiceName,
			Price:       line.Price,
		})
	}

	return resp
}

func mapToListResponse(appts []Appointment) []AppointmentResponse {
	resp := make([]AppointmentResponse, len(appts))
	for i, appt := range appts {
		resp[i] = mapToResponse(appt)
	}
	return resp
}
