package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	catalogerrors "go-salon/internal/catalog/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ServiceListKey = "services:all"

//go:generate mockgen -source=catalog_service.go -destination=mock/catalog_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateServiceRequest) (ServiceResponse, error)
	GetAll(ctx context.Context) ([]ServiceResponse, error)
	GetByID(ctx context.Context, id string) (ServiceResponse, error)
	Update(ctx context.Context, id string, req UpdateServiceRequest) (ServiceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("catalog.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateServiceRequest,
) (ServiceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ServiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	svc := &CatalogService{
		ID:              uuid.New(),
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.Duration,
		Category:        req.Category,
		IsActive:        true,
	}

	if err := qtx.Create(ctx, svc); err != nil {
		return ServiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ServiceResponse{}, err
	}

	s.invalidateListCache(ctx)

	return mapToResponse(*svc), nil
}

func (s *service) GetAll(ctx context.Context) ([]ServiceResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, ServiceListKey).Result()
		if err == nil {
			var resp []ServiceResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	result, err, _ := s.sf.Do(ServiceListKey, func() (interface{}, error) {
		svcs, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(svcs)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				_ = s.rdb.Set(ctx, ServiceListKey, payload, 10*time.Minute).Err()
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]ServiceResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ServiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ServiceResponse{}, catalogerrors.ErrInvalidServiceID
	}

	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ServiceResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*svc), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateServiceRequest,
) (ServiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ServiceResponse{}, catalogerrors.ErrInvalidServiceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ServiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	svc, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ServiceResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Price != nil {
		// Tidak menyentuh appointment lama; harga di join row sudah disnapshot
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		svc.DurationMinutes = *req.Duration
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, svc); err != nil {
		return ServiceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ServiceResponse{}, err
	}

	s.invalidateListCache(ctx)

	return mapToResponse(*svc), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return catalogerrors.ErrInvalidServiceID
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

	s.invalidateListCache(ctx)

	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ServiceListKey).Err(); err != nil {
		s.logger.Warn("invalidate service list cache failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalogerrors.ErrServiceNotFound
	}

	return err
}

func mapToResponse(svc CatalogService) ServiceResponse {
	return ServiceResponse{
		ID:       svc.ID.String(),
		Name:     svc.Name,
		Price:    svc.Price,
		Duration: svc.DurationMinutes,
		Category: svc.Category,
		IsActive: svc.IsActive,
	}
}

func mapToListResponse(svcs []CatalogService) []ServiceResponse {
	resp := make([]ServiceResponse, len(svcs))
	for i, svc := range svcs {
		resp[i] = mapToResponse(svc)
	}
	return resp
}
