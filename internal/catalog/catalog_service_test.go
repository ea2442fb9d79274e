package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	catalogerrors "go-salon/internal/catalog/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn    func(ctx context.Context, svc *CatalogService) error
	findAllFn   func(ctx context.Context) ([]CatalogService, error)
	findByIDFn  func(ctx context.Context, id string) (*CatalogService, error)
	findByIDsFn func(ctx context.Context, ids []string) ([]CatalogService, error)
	updateFn    func(ctx context.Context, svc *CatalogService) error
	deleteFn    func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, svc *CatalogService) error {
	return f.createFn(ctx, svc)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]CatalogService, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*CatalogService, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByIDs(ctx context.Context, ids []string) ([]CatalogService, error) {
	return f.findByIDsFn(ctx, ids)
}
func (f *fakeRepo) Update(ctx context.Context, svc *CatalogService) error {
	return f.updateFn(ctx, svc)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestCatalogService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repo", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		cached := []ServiceResponse{
			{ID: uuid.New().String(), Name: "Swedish Massage", Price: 250000},
			{ID: uuid.New().String(), Name: "Haircut", Price: 100000},
		}
		payload, _ := json.Marshal(cached)
		redisMock.ExpectGet(ServiceListKey).SetVal(string(payload))

		repo := &fakeRepo{
			findAllFn: func(ctx context.Context) ([]CatalogService, error) {
				t.Fatal("repo must not be hit on cache hit")
				return nil, nil
			},
		}

		svc := NewService(db, repo, rdb)

		resp, err := svc.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Swedish Massage", resp[0].Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss reads db and fills cache", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		row := CatalogService{
			ID:              uuid.New(),
			Name:            "Manicure",
			Price:           150000,
			DurationMinutes: 45,
			Category:        "NAIL",
			IsActive:        true,
		}
		expected := mapToListResponse([]CatalogService{row})
		payload, _ := json.Marshal(expected)

		redisMock.ExpectGet(ServiceListKey).RedisNil()
		redisMock.ExpectSet(ServiceListKey, payload, 10*time.Minute).SetVal("OK")

		repo := &fakeRepo{
			findAllFn: func(ctx context.Context) ([]CatalogService, error) {
				return []CatalogService{row}, nil
			},
		}

		svc := NewService(db, repo, rdb)

		resp, err := svc.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Manicure", resp[0].Name)
		assert.Equal(t, int64(150000), resp[0].Price)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestCatalogService_Create_InvalidatesListCache(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	var created CatalogService
	repo := &fakeRepo{
		createFn: func(ctx context.Context, svc *CatalogService) error {
			created = *svc
			return nil
		},
	}

	svc := NewService(db, repo, rdb)

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(ServiceListKey).SetVal(1)

	resp, err := svc.Create(context.Background(), CreateServiceRequest{
		Name:     "Facial",
		Price:    300000,
		Duration: 60,
		Category: "SKINCARE",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Facial", resp.Name)
	assert.True(t, created.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCatalogService_Update(t *testing.T) {
	t.Run("merges fields and invalidates cache", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		svcID := uuid.New()
		newPrice := int64(275000)

		var updated CatalogService
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*CatalogService, error) {
				return &CatalogService{
					ID:              svcID,
					Name:            "Swedish Massage",
					Price:           250000,
					DurationMinutes: 60,
					Category:        "MASSAGE",
					IsActive:        true,
				}, nil
			},
			updateFn: func(ctx context.Context, s *CatalogService) error {
				updated = *s
				return nil
			},
		}

		svc := NewService(db, repo, rdb)

		mock.ExpectBegin()
		mock.ExpectCommit()
		redisMock.ExpectDel(ServiceListKey).SetVal(1)

		resp, err := svc.Update(context.Background(), svcID.String(), UpdateServiceRequest{
			Price: &newPrice,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(275000), resp.Price)
		assert.Equal(t, "Swedish Massage", updated.Name)
		assert.Equal(t, 60, updated.DurationMinutes)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		rdb, _ := redismock.NewClientMock()

		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, id string) (*CatalogService, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := NewService(db, repo, rdb)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Update(context.Background(), uuid.New().String(), UpdateServiceRequest{})
		assert.ErrorIs(t, err, catalogerrors.ErrServiceNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogService_GetByID_InvalidID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, _ := redismock.NewClientMock()

	svc := NewService(db, &fakeRepo{}, rdb)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, catalogerrors.ErrInvalidServiceID)
}
