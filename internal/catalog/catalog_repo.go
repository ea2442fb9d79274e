package catalog

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=catalog_repo.go -destination=mock/catalog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, svc *CatalogService) error
	FindAll(ctx context.Context) ([]CatalogService, error)
	FindByID(ctx context.Context, id string) (*CatalogService, error)
	FindByIDs(ctx context.Context, ids []string) ([]CatalogService, error)
	Update(ctx context.Context, svc *CatalogService) error
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

func (r *repository) Create(ctx context.Context, svc *CatalogService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *repository) FindAll(ctx context.Context) ([]CatalogService, error) {
	var svcs []CatalogService
	err := r.db.WithContext(ctx).
		Order("category ASC, name ASC").
		Find(&svcs).Error
	return svcs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*CatalogService, error) {
	var svc CatalogService
	err := r.db.WithContext(ctx).
		First(&svc, "id = ?", id).Error
	return &svc, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]CatalogService, error) {
	var svcs []CatalogService
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&svcs).Error
	return svcs, err
}

func (r *repository) Update(ctx context.Context, svc *CatalogService) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&CatalogService{}, "id = ?", id).Error
}
