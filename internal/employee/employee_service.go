package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	employeeerrors "go-salon/internal/employee/errors"
	"go-salon/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("position", req.Position),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Employee{
		ID:       uuid.New(),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Position: req.Position,
		Salary:   req.Salary,
		IsActive: true,
		HireDate: hireDate,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(emps), nil
}

// GetOptions mengembalikan karyawan aktif untuk dropdown booking.
// Hasil dicache di Redis; singleflight mencegah stampede saat cache kosong.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result()
		if err == nil {
			var opts []EmployeeOption
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
		}
	}

	result, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindAllActive(ctx)
		if err != nil {
			return nil, err
		}

		opts := make([]EmployeeOption, len(emps))
		for i, emp := range emps {
			opts[i] = EmployeeOption{
				ID:       emp.ID.String(),
				Name:     emp.Name,
				Position: emp.Position,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(opts); err == nil {
				_ = s.rdb.Set(ctx, EmployeeOptionsKey, payload, 10*time.Minute).Err()
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Salary != nil {
		emp.Salary = *req.Salary
	}
	if req.IsActive != nil {
		// Nonaktif tidak menghapus histori appointment maupun payroll
		emp.IsActive = *req.IsActive
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
		emp.HireDate = hireDate
	}

	if err := qtx.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
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

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)

	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_email" {
			return employeeerrors.ErrEmailAlreadyUsed
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrEmailAlreadyUsed
	}

	return err
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       emp.ID.String(),
		Name:     emp.Name,
		Phone:    emp.Phone,
		Email:    emp.Email,
		Position: emp.Position,
		Salary:   emp.Salary,
		IsActive: emp.IsActive,
		HireDate: emp.HireDate.Format("2006-01-02"),
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}
	return resp
}
