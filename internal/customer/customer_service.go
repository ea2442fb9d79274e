package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	customererrors "go-salon/internal/customer/errors"
	"go-salon/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_service.go -destination=mock/customer_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	GetAll(ctx context.Context) ([]CustomerResponse, error)
	GetByID(ctx context.Context, id string) (CustomerResponse, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("customer.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateCustomerRequest,
) (CustomerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create customer requested",
		zap.String("request_id", rid),
		zap.String("phone", req.Phone),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CustomerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Uniqueness email bersifat best-effort; index unik di DB tetap jadi pagar terakhir
	if req.Email != nil && *req.Email != "" {
		count, err := qtx.CountByEmail(ctx, *req.Email, nil)
		if err != nil {
			return CustomerResponse{}, err
		}
		if count > 0 {
			return CustomerResponse{}, customererrors.ErrEmailAlreadyUsed
		}
	}

	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return CustomerResponse{}, err
	}

	cust := &Customer{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		BirthDate: birthDate,
		Gender:    req.Gender,
		Notes:     req.Notes,
	}

	if err := qtx.Create(ctx, cust); err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return CustomerResponse{}, err
	}

	return mapToResponse(*cust), nil
}

func (s *service) GetAll(ctx context.Context) ([]CustomerResponse, error) {
	custs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(custs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CustomerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}

	cust, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*cust), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateCustomerRequest,
) (CustomerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CustomerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cust, err := qtx.FindByID(ctx, id)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}

	if req.Email != nil && *req.Email != "" {
		count, err := qtx.CountByEmail(ctx, *req.Email, &id)
		if err != nil {
			return CustomerResponse{}, err
		}
		if count > 0 {
			return CustomerResponse{}, customererrors.ErrEmailAlreadyUsed
		}
	}

	if req.Name != nil {
		cust.Name = *req.Name
	}
	if req.Phone != nil {
		cust.Phone = *req.Phone
	}
	if req.Email != nil {
		cust.Email = req.Email
	}
	if req.Address != nil {
		cust.Address = req.Address
	}
	if req.BirthDate != nil {
		birthDate, err := parseOptionalDate(req.BirthDate)
		if err != nil {
			return CustomerResponse{}, err
		}
		cust.BirthDate = birthDate
	}
	if req.Gender != nil {
		cust.Gender = req.Gender
	}
	if req.Notes != nil {
		cust.Notes = req.Notes
	}

	if err := qtx.Update(ctx, cust); err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return CustomerResponse{}, err
	}

	return mapToResponse(*cust), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return customererrors.ErrInvalidCustomerID
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

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customererrors.ErrCustomerNotFound
	}

	if isUniqueViolation(err, "uq_customer_email") {
		return customererrors.ErrEmailAlreadyUsed
	}

	return err
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, customererrors.ErrInvalidBirthDate
	}
	return &t, nil
}

func mapToResponse(cust Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:      cust.ID.String(),
		Name:    cust.Name,
		Phone:   cust.Phone,
		Email:   cust.Email,
		Address: cust.Address,
		Gender:  cust.Gender,
		Notes:   cust.Notes,
	}

	if cust.BirthDate != nil {
		v := cust.BirthDate.Format("2006-01-02")
		resp.BirthDate = &v
	}

	return resp
}

func mapToListResponse(custs []Customer) []CustomerResponse {
	resp := make([]CustomerResponse, len(custs))
	for i, cust := range custs {
		resp[i] = mapToResponse(cust)
	}
	return resp
}
