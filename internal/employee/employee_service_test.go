package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	employeeerrors "go-salon/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn        func(ctx context.Context, emp *Employee) error
	findAllFn       func(ctx context.Context) ([]Employee, error)
	findAllActiveFn func(ctx context.Context) ([]Employee, error)
	findByIDFn      func(ctx context.Context, id string) (*Employee, error)
	updateFn        func(ctx context.Context, emp *Employee) error
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, emp *Employee) error {
	return f.createFn(ctx, emp)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]Employee, error) {
	return f.findAllActiveFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, emp *Employee) error {
	return f.updateFn(ctx, emp)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success starts active", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		var created Employee
		repo := &fakeRepo{
			createFn: func(ctx context.Context, emp *Employee) error {
				created = *emp
				return nil
			},
		}

		svc := NewService(db, repo, rdb)

		mock.ExpectBegin()
		mock.ExpectCommit()
		redisMock.ExpectDel(EmployeeOptionsKey).SetVal(1)

		resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
			Name:     "Sari",
			Phone:    "081234567890",
			Position: "Therapist",
			Salary:   3_000_000,
			HireDate: "2024-01-15",
		})
		assert.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.True(t, created.IsActive)
		assert.Equal(t, "2024-01-15", resp.HireDate)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, _ := redismock.NewClientMock()

		svc := NewService(db, &fakeRepo{}, rdb)

		_, err := svc.Create(context.Background(), CreateEmployeeRequest{
			Name:     "Sari",
			Phone:    "081234567890",
			Position: "Therapist",
			Salary:   3_000_000,
			HireDate: "15/01/2024",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repo", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		opts := []EmployeeOption{
			{ID: uuid.New().String(), Name: "Sari", Position: "Therapist"},
		}
		payload, _ := json.Marshal(opts)
		redisMock.ExpectGet(EmployeeOptionsKey).SetVal(string(payload))

		repo := &fakeRepo{
			findAllActiveFn: func(ctx context.Context) ([]Employee, error) {
				t.Fatal("repo must not be hit on cache hit")
				return nil, nil
			},
		}

		svc := NewService(db, repo, rdb)

		got, err := svc.GetOptions(ctx)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Sari", got[0].Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss lists only active employees", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		emp := Employee{ID: uuid.New(), Name: "Dewi", Position: "Stylist", IsActive: true}
		expected := []EmployeeOption{{ID: emp.ID.String(), Name: "Dewi", Position: "Stylist"}}
		payload, _ := json.Marshal(expected)

		redisMock.ExpectGet(EmployeeOptionsKey).RedisNil()
		redisMock.ExpectSet(EmployeeOptionsKey, payload, 10*time.Minute).SetVal("OK")

		repo := &fakeRepo{
			findAllActiveFn: func(ctx context.Context) ([]Employee, error) {
				return []Employee{emp}, nil
			},
		}

		svc := NewService(db, repo, rdb)

		got, err := svc.GetOptions(ctx)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Dewi", got[0].Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Update_DeactivateKeepsRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	empID := uuid.New()
	inactive := false

	var updated Employee
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return &Employee{
				ID:       empID,
				Name:     "Sari",
				Phone:    "081234567890",
				Position: "Therapist",
				Salary:   3_000_000,
				IsActive: true,
				HireDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			}, nil
		},
		updateFn: func(ctx context.Context, emp *Employee) error {
			updated = *emp
			return nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			t.Fatal("deactivation must not delete the row")
			return nil
		},
	}

	svc := NewService(db, repo, rdb)

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(EmployeeOptionsKey).SetVal(1)

	resp, err := svc.Update(context.Background(), empID.String(), UpdateEmployeeRequest{
		IsActive: &inactive,
	})
	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Sari", updated.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, _ := redismock.NewClientMock()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, rdb)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}
