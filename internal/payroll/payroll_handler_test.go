package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-salon/internal/payroll"
	payrollerrors "go-salon/internal/payroll/errors"
	"go-salon/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	generateFn       func(ctx context.Context, generatedBy string, req payroll.GeneratePayrollRequest) (payroll.GenerateResponse, error)
	getAllFn         func(ctx context.Context, filter payroll.GenerationFilter) ([]payroll.PayrollResponse, error)
	getGenerationsFn func(ctx context.Context, filter payroll.GenerationFilter) ([]payroll.GenerationResponse, error)
	getDetailFn      func(ctx context.Context, id string) (payroll.GenerationDetailResponse, error)
	deleteFn         func(ctx context.Context, id string) error
	markAsPaidFn     func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	payAllFn         func(ctx context.Context, generationID string) (payroll.PayAllResponse, error)
	updateFn         func(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error)
}

func (f *fakePayrollService) Generate(ctx context.Context, generatedBy string, req payroll.GeneratePayrollRequest) (payroll.GenerateResponse, error) {
	return f.generateFn(ctx, generatedBy, req)
}
func (f *fakePayrollService) GetAll(ctx context.Context, filter payroll.GenerationFilter) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, filter)
}
func (f *fakePayrollService) GetGenerations(ctx context.Context, filter payroll.GenerationFilter) ([]payroll.GenerationResponse, error) {
	return f.getGenerationsFn(ctx, filter)
}
func (f *fakePayrollService) GetGenerationDetail(ctx context.Context, id string) (payroll.GenerationDetailResponse, error) {
	return f.getDetailFn(ctx, id)
}
func (f *fakePayrollService) DeleteGeneration(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakePayrollService) MarkAsPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.markAsPaidFn(ctx, id)
}
func (f *fakePayrollService) PayAll(ctx context.Context, generationID string) (payroll.PayAllResponse, error) {
	return f.payAllFn(ctx, generationID)
}
func (f *fakePayrollService) Update(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.updateFn(ctx, id, req)
}

func newGenerateRequest(body string, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/payroll/generation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(contextutil.WithUserID(req.Context(), userID))
}

func TestPayrollHandler_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userID := uuid.New().String()
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, generatedBy string, req payroll.GeneratePayrollRequest) (payroll.GenerateResponse, error) {
				assert.Equal(t, userID, generatedBy)
				assert.Equal(t, 9, req.Month)
				assert.Equal(t, 2024, req.Year)
				return payroll.GenerateResponse{
					Generation: payroll.GenerationResponse{
						ID:            uuid.New().String(),
						Month:         9,
						Year:          2024,
						Status:        payroll.GenerationStatusCompleted,
						EmployeeCount: 2,
					},
					Results: []payroll.GenerationResultItem{
						{EmployeeID: uuid.New().String(), Status: payroll.ResultCreated},
						{EmployeeID: uuid.New().String(), Status: payroll.ResultCreated},
					},
				}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newGenerateRequest(`{"month":9,"year":2024}`, userID)

		h.Generate(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		var got payroll.GenerateResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, payroll.GenerationStatusCompleted, got.Generation.Status)
		assert.Len(t, got.Results, 2)
	})

	t.Run("negative invalid month", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newGenerateRequest(`{"month":13,"year":2024}`, uuid.New().String())

		h.Generate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative duplicate period returns conflict", func(t *testing.T) {
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, generatedBy string, req payroll.GeneratePayrollRequest) (payroll.GenerateResponse, error) {
				return payroll.GenerateResponse{}, payrollerrors.ErrGenerationExists
			},
		}
		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newGenerateRequest(`{"month":9,"year":2024}`, uuid.New().String())

		h.Generate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestPayrollHandler_GetGenerations(t *testing.T) {
	t.Run("passes period filter", func(t *testing.T) {
		svc := &fakePayrollService{
			getGenerationsFn: func(ctx context.Context, filter payroll.GenerationFilter) ([]payroll.GenerationResponse, error) {
				assert.NotNil(t, filter.Month)
				assert.Equal(t, 9, *filter.Month)
				assert.NotNil(t, filter.Year)
				assert.Equal(t, 2024, *filter.Year)
				return []payroll.GenerationResponse{{ID: uuid.New().String()}}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payroll/generation?month=9&year=2024", nil)

		h.GetGenerations(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative non numeric month", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payroll/generation?month=abc", nil)

		h.GetGenerations(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestPayrollHandler_MarkAsPaid(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		payrollID := uuid.New().String()
		svc := &fakePayrollService{
			markAsPaidFn: func(ctx context.Context, id string) (payroll.PayrollResponse, error) {
				assert.Equal(t, payrollID, id)
				return payroll.PayrollResponse{ID: payrollID, Status: payroll.StatusPaid}, nil
			},
		}

		h := payroll.NewHandler(svc)
		r := gin.New()
		r.PATCH("/payroll/:id/pay", h.MarkAsPaid)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/payroll/"+payrollID+"/pay", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got payroll.PayrollResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, payroll.StatusPaid, got.Status)
	})

	t.Run("negative cancelled payroll", func(t *testing.T) {
		svc := &fakePayrollService{
			markAsPaidFn: func(ctx context.Context, id string) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotPending
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		payrollID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/payroll/"+payrollID+"/pay", nil)
		c.Params = []gin.Param{{Key: "id", Value: payrollID}}

		h.MarkAsPaid(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestPayrollHandler_PayAll(t *testing.T) {
	genID := uuid.New().String()
	svc := &fakePayrollService{
		payAllFn: func(ctx context.Context, generationID string) (payroll.PayAllResponse, error) {
			assert.Equal(t, genID, generationID)
			return payroll.PayAllResponse{Updated: 3}, nil
		},
	}

	h := payroll.NewHandler(svc)
	r := gin.New()
	r.PATCH("/payroll/generation/:id/pay-all", h.PayAll)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/payroll/generation/"+genID+"/pay-all", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got payroll.PayAllResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, int64(3), got.Updated)
}

func TestPayrollHandler_Update(t *testing.T) {
	t.Run("negative not found", func(t *testing.T) {
		svc := &fakePayrollService{
			updateFn: func(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		payrollID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPut, "/payroll/"+payrollID, strings.NewReader(`{"bonus":200000}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: payrollID}}

		h.Update(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("negative invalid status value", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		payrollID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPut, "/payroll/"+payrollID, strings.NewReader(`{"status":"DONE"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: payrollID}}

		h.Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestPayrollHandler_Generate_IdempotencyKeys(t *testing.T) {
	cacheKey := "idemp:/api/payroll/generation:user-1:key-1"
	lockKey := cacheKey + ":lock"

	t.Run("success caches response and releases lock", func(t *testing.T) {
		resp := payroll.GenerateResponse{
			Generation: payroll.GenerationResponse{
				ID:            uuid.New().String(),
				Month:         9,
				Year:          2024,
				Status:        payroll.GenerationStatusCompleted,
				EmployeeCount: 1,
			},
			Results: []payroll.GenerationResultItem{
				{EmployeeID: uuid.New().String(), Status: payroll.ResultCreated},
			},
		}
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, generatedBy string, req payroll.GeneratePayrollRequest) (payroll.GenerateResponse, error) {
				return resp, nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		payload, err := json.Marshal(resp)
		assert.NoError(t, err)
		redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		// Del jalan lewat defer, jadi urutannya setelah Set
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := payroll.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newGenerateRequest(`{"month":9,"year":2024}`, uuid.New().String())
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Generate(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate period releases lock without caching", func(t *testing.T) {
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, generatedBy string, req payroll.GeneratePayrollRequest) (payroll.GenerateResponse, error) {
				return payroll.GenerateResponse{}, payrollerrors.ErrGenerationExists
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		// Tidak ada Set: respons gagal tidak boleh di-replay
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := payroll.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newGenerateRequest(`{"month":9,"year":2024}`, uuid.New().String())
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Generate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
