package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/cache"
	"github.com/chainsync/backend/internal/infrastructure/config"
	"github.com/chainsync/backend/internal/infrastructure/persistence"
	"github.com/chainsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type noopPusher struct{}

func (noopPusher) Push(ctx context.Context, endpoint syncdom.BranchEndpoint, path string, payload any) error {
	return nil
}

func newSyncTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	log := zap.NewNop()
	registry := syncapp.NewRegistry(
		syncapp.NewCustomerAdapter(),
		syncapp.NewEmployeeAdapter(),
		syncapp.NewProductAdapter(),
		syncapp.NewInventoryAdapter(),
		syncapp.NewPriceAdapter(),
	)
	engine := syncapp.NewEngine(
		registry,
		persistence.NewGormTransactionScope(db),
		persistence.NewRepositories(db),
		syncapp.NewRecorder(persistence.NewGormSyncLogRepository(db), log),
		syncapp.NewDistributor(persistence.NewGormBranchRepository(db), noopPusher{}, time.Second, log),
		log,
	)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	handler := NewSyncHandler(engine, store, &config.BranchConfig{IdempotencyTTL: time.Hour})
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postBatch(t *testing.T, router *gin.Engine, entity, body, idempotencyKey string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/"+entity, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestRunBatchEndpoint(t *testing.T) {
	router := newSyncTestRouter(t)

	body := `{"total":2,"records":[
		{"erp_id":"E-1","name":"Acme Retail"},
		{"erp_id":"E-2","name":"Globex"}
	]}`
	rec, resp := postBatch(t, router, "customers", body, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["imported"])
	assert.Equal(t, float64(0), data["failed"])
	assert.NotEmpty(t, data["sync_log_id"])
	assert.Len(t, data["results"], 2)
}

func TestRunBatchEndpointAllFailed(t *testing.T) {
	router := newSyncTestRouter(t)

	// No identifier fields, every record fails but the ledger comes back.
	body := `{"total":1,"records":[{"name":"Acme"}]}`
	rec, resp := postBatch(t, router, "customers", body, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)
	assert.Equal(t, "all records in the batch failed", resp.Error.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["failed"])
	assert.Len(t, data["results"], 1)
}

func TestRunBatchEndpointRejectsUnsupportedEntity(t *testing.T) {
	router := newSyncTestRouter(t)

	rec, resp := postBatch(t, router, "warehouses", `{"total":0,"records":[]}`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "warehouses")
}

func TestRunBatchEndpointRejectsMalformedJSON(t *testing.T) {
	router := newSyncTestRouter(t)

	rec, resp := postBatch(t, router, "customers", `{"total":`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}

func TestRunBatchEndpointIdempotencyKey(t *testing.T) {
	router := newSyncTestRouter(t)
	body := `{"total":1,"records":[{"erp_id":"E-1","name":"Acme"}]}`

	rec, _ := postBatch(t, router, "customers", body, "batch-42")
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("replay with the same key is rejected", func(t *testing.T) {
		rec, resp := postBatch(t, router, "customers", body, "batch-42")
		require.Equal(t, http.StatusConflict, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeDuplicate, resp.Error.Code)
	})

	t.Run("same key under another entity type is independent", func(t *testing.T) {
		rec, _ := postBatch(t, router, "products",
			`{"total":1,"records":[{"sku":"SKU-1","name":"Widget","price":"9.90"}]}`, "batch-42")
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRunBatchEndpointReleasesKeyWhenBatchAborts(t *testing.T) {
	router := newSyncTestRouter(t)

	// Declared total disagrees with the record count, nothing is committed.
	rec, resp := postBatch(t, router, "customers",
		`{"total":3,"records":[{"erp_id":"E-1","name":"Acme"}]}`, "batch-7")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)

	// The key was released, so the corrected batch goes through.
	rec, _ = postBatch(t, router, "customers",
		`{"total":1,"records":[{"erp_id":"E-1","name":"Acme"}]}`, "batch-7")
	require.Equal(t, http.StatusOK, rec.Code)
}
