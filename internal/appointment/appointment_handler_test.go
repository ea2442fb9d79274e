package appointment_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-salon/internal/appointment"
	appointmenterrors "go-salon/internal/appointment/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *apiMeta        `json:"meta"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAppointmentService struct {
	createFn  func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error)
	getAllFn  func(ctx context.Context, filter appointment.ListFilter) ([]appointment.AppointmentResponse, error)
	getByIDFn func(ctx context.Context, id string) (appointment.AppointmentResponse, error)
	updateFn  func(ctx context.Context, id string, req appointment.UpdateAppointmentRequest) (appointment.AppointmentResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeAppointmentService) Create(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeAppointmentService) GetAll(ctx context.Context, filter appointment.ListFilter) ([]appointment.AppointmentResponse, error) {
	return f.getAllFn(ctx, filter)
}
func (f *fakeAppointmentService) GetByID(ctx context.Context, id string) (appointment.AppointmentResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeAppointmentService) Update(ctx context.Context, id string, req appointment.UpdateAppointmentRequest) (appointment.AppointmentResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeAppointmentService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func createBody(serviceID string) string {
	return `{"customerId":"` + uuid.New().String() +
		`","employeeId":"` + uuid.New().String() +
		`","date":"2026-03-10","startTime":"2026-03-10T09:00:00Z","endTime":"2026-03-10T10:00:00Z","serviceIds":["` + serviceID + `"]}`
}

func TestAppointmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAppointmentService{
			createFn: func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return appointment.AppointmentResponse{
					ID:            uuid.New().String(),
					BookingNumber: "APT-20260310-0001",
					Status:        appointment.StatusScheduled,
					TotalPrice:    100000,
				}, nil
			},
		}

		h := appointment.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(createBody(uuid.New().String())))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		var got appointment.AppointmentResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "APT-20260310-0001", got.BookingNumber)
		assert.Equal(t, appointment.StatusScheduled, got.Status)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := appointment.NewHandler(&fakeAppointmentService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative overlap returns conflict", func(t *testing.T) {
		svc := &fakeAppointmentService{
			createFn: func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return appointment.AppointmentResponse{}, appointmenterrors.ErrTimeSlotTaken
			},
		}
		h := appointment.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(createBody(uuid.New().String())))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, "employee already has an appointment in this time window", env.Error.Message)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeAppointmentService{
			createFn: func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return appointment.AppointmentResponse{}, errors.New("db down")
			},
		}
		h := appointment.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(createBody(uuid.New().String())))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestAppointmentHandler_GetAll(t *testing.T) {
	t.Run("passes filters and paginates in memory", func(t *testing.T) {
		date := "2026-03-10"
		customerID := uuid.New().String()

		all := make([]appointment.AppointmentResponse, 0, 25)
		for i := 0; i < 25; i++ {
			all = append(all, appointment.AppointmentResponse{ID: uuid.New().String()})
		}

		svc := &fakeAppointmentService{
			getAllFn: func(ctx context.Context, filter appointment.ListFilter) ([]appointment.AppointmentResponse, error) {
				assert.NotNil(t, filter.Date)
				assert.Equal(t, date, *filter.Date)
				assert.NotNil(t, filter.CustomerID)
				assert.Equal(t, customerID, *filter.CustomerID)
				assert.Nil(t, filter.EmployeeID)
				return all, nil
			},
		}

		h := appointment.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet,
			"/appointment?date="+date+"&customerId="+customerID+"&page=2&limit=10", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		var got []appointment.AppointmentResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 10)
		assert.NotNil(t, env.Meta)
		assert.Equal(t, int64(25), env.Meta.Total)
		assert.Equal(t, 3, env.Meta.TotalPages)
		assert.Equal(t, 2, env.Meta.Page)
	})

	t.Run("last page is partial", func(t *testing.T) {
		all := make([]appointment.AppointmentResponse, 0, 25)
		for i := 0; i < 25; i++ {
			all = append(all, appointment.AppointmentResponse{ID: uuid.New().String()})
		}
		svc := &fakeAppointmentService{
			getAllFn: func(ctx context.Context, filter appointment.ListFilter) ([]appointment.AppointmentResponse, error) {
				return all, nil
			},
		}

		h := appointment.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/appointment?page=3&limit=10", nil)

		h.GetAll(c)

		env := decodeEnvelope(t, w.Body.Bytes())
		var got []appointment.AppointmentResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 5)
	})
}

func TestAppointmentHandler_Update(t *testing.T) {
	t.Run("conflict maps to 409", func(t *testing.T) {
		svc := &fakeAppointmentService{
			updateFn: func(ctx context.Context, id string, req appointment.UpdateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return appointment.AppointmentResponse{}, appointmenterrors.ErrTimeSlotTaken
			},
		}
		h := appointment.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		apptID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPut, "/appointment/"+apptID, strings.NewReader(`{"startTime":"2026-03-10T11:00:00Z"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: apptID}}

		h.Update(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &fakeAppointmentService{
			updateFn: func(ctx context.Context, id string, req appointment.UpdateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return appointment.AppointmentResponse{}, appointmenterrors.ErrAppointmentNotFound
			},
		}
		h := appointment.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		apptID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPut, "/appointment/"+apptID, strings.NewReader(`{"notes":"x"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: apptID}}

		h.Update(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestAppointmentHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		apptID := uuid.New().String()
		svc := &fakeAppointmentService{
			deleteFn: func(ctx context.Context, id string) error {
				assert.Equal(t, apptID, id)
				return nil
			},
		}

		h := appointment.NewHandler(svc)
		r := gin.New()
		r.DELETE("/appointment/:id", h.Delete)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/appointment/"+apptID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
	})
}

func TestAppointmentHandler_Create_IdempotencyKeys(t *testing.T) {
	cacheKey := "idemp:/api/appointment:user-1:key-1"
	lockKey := cacheKey + ":lock"

	t.Run("success caches response and releases lock", func(t *testing.T) {
		resp := appointment.AppointmentResponse{
			ID:            uuid.New().String(),
			BookingNumber: "APT-20260310-0001",
			Status:        appointment.StatusScheduled,
			TotalPrice:    100000,
		}
		svc := &fakeAppointmentService{
			createFn: func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return resp, nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		payload, err := json.Marshal(resp)
		assert.NoError(t, err)
		redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		// Del jalan lewat defer, jadi urutannya setelah Set
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := appointment.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(createBody(uuid.New().String())))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("failure releases lock without caching", func(t *testing.T) {
		svc := &fakeAppointmentService{
			createFn: func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return appointment.AppointmentResponse{}, appointmenterrors.ErrTimeSlotTaken
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		// Tidak ada Set: respons gagal tidak boleh di-replay
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := appointment.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(createBody(uuid.New().String())))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("no middleware keys means no redis traffic", func(t *testing.T) {
		svc := &fakeAppointmentService{
			createFn: func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentResponse, error) {
				return appointment.AppointmentResponse{ID: uuid.New().String()}, nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()

		h := appointment.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(createBody(uuid.New().String())))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
