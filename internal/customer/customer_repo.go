package customer

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_repo.go -destination=mock/customer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cust *Customer) error
	FindAll(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	CountByEmail(ctx context.Context, email string, excludeID *string) (int64, error)
	Update(ctx context.Context, cust *Customer) error
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

func (r *repository) Create(ctx context.Context, cust *Customer) error {
	return r.db.WithContext(ctx).Create(cust).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Customer, error) {
	var custs []Customer
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&custs).Error
	return custs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Customer, error) {
	var cust Customer
	err := r.db.WithContext(ctx).
		First(&cust, "id = ?", id).Error
	return &cust, err
}

func (r *repository) CountByEmail(ctx context.Context, email string, excludeID *string) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("email = ?", email)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, cust *Customer) error {
	return r.db.WithContext(ctx).Save(cust).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Customer{}, "id = ?", id).Error
}
