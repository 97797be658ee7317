package syncapp_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/persistence"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubPusher records every push and can be told to fail.
type stubPusher struct {
	mu     sync.Mutex
	pushes []pushCall
	err    error
}

type pushCall struct {
	branch string
	path   string
}

func (p *stubPusher) Push(ctx context.Context, endpoint syncdom.BranchEndpoint, path string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, pushCall{branch: endpoint.Code, path: path})
	return p.err
}

func (p *stubPusher) calls() []pushCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushCall(nil), p.pushes...)
}

type testEnv struct {
	engine   *syncapp.Engine
	db       *gorm.DB
	branches syncdom.BranchEndpointRepository
	pusher   *stubPusher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	log := zap.NewNop()
	syncLogRepo := persistence.NewGormSyncLogRepository(db)
	branchRepo := persistence.NewGormBranchRepository(db)
	pusher := &stubPusher{}

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
		syncapp.NewRecorder(syncLogRepo, log),
		syncapp.NewDistributor(branchRepo, pusher, time.Second, log),
		log,
	)

	return &testEnv{engine: engine, db: db, branches: branchRepo, pusher: pusher}
}

func (e *testEnv) addBranch(t *testing.T, code string, enabled bool) {
	t.Helper()
	endpoint, err := syncdom.NewBranchEndpoint(code, code, "https://"+code+".example.com", "token")
	require.NoError(t, err)
	if !enabled {
		endpoint.Disable()
	}
	require.NoError(t, e.branches.Save(context.Background(), endpoint))
}

func TestRunBatchCreatesThenUpdates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, log, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 2, []record.Record{
		{"erp_id": "E-1", "name": "Acme Retail", "phone": "13800000001"},
		{"erp_id": "E-2", "name": "Globex", "credit_limit": float64(500)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, syncdom.ActionCreated, result.Results[0].Action)
	assert.Equal(t, syncdom.SyncStatusCompleted, log.Status)
	assert.Equal(t, 2, log.Processed)

	// Same erp_id resolves to the existing row and updates it in place.
	result, _, err = env.engine.RunBatch(ctx, syncdom.EntityCustomers, 1, []record.Record{
		{"erp_id": "E-1", "name": "Acme Retail Group"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	assert.Equal(t, syncdom.ActionUpdated, result.Results[0].Action)

	entity, err := env.engine.GetEntity(ctx, syncdom.EntityCustomers, "E-1")
	require.NoError(t, err)
	customer, ok := entity.(interface{ IdentifierValues() map[string]string })
	require.True(t, ok)
	assert.Equal(t, "E-1", customer.IdentifierValues()["erp_id"])

	var count int64
	require.NoError(t, env.db.Table("customers").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRunBatchRejectsBadEnvelopes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("total mismatch", func(t *testing.T) {
		_, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 3, []record.Record{{"erp_id": "E-1", "name": "A"}})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "declared total 3 does not match 1")
	})

	t.Run("empty batch", func(t *testing.T) {
		_, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 0, nil)
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("unsupported entity type", func(t *testing.T) {
		_, _, err := env.engine.RunBatch(ctx, syncdom.EntityType("orders"), 1, []record.Record{{}})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	// Nothing above opened a sync log.
	var count int64
	require.NoError(t, env.db.Table("sync_logs").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRunBatchIsolatesFailedRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, log, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 3, []record.Record{
		{"erp_id": "E-1", "name": "Acme"},
		{"name": "No Identifiers"},
		{"erp_id": "E-3", "name": "Globex"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Failed)

	failed := result.Results[1]
	assert.False(t, failed.Success)
	assert.Equal(t, shared.CodeValidation, failed.ErrorCode)
	assert.Contains(t, failed.Error, "at least one identifier is required")

	// The log completes even with failures; failed is reserved for aborts.
	assert.Equal(t, syncdom.SyncStatusCompleted, log.Status)
	assert.Equal(t, 1, log.FailedCount)

	var count int64
	require.NoError(t, env.db.Table("customers").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRunBatchReportsPersistenceConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 2, []record.Record{
		{"erp_id": "E-1", "code": "C-1", "name": "Acme"},
		{"erp_id": "E-2", "code": "C-2", "name": "Globex"},
	})
	require.NoError(t, err)

	// Record resolves to E-2 but claims a code already held by E-1.
	result, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 1, []record.Record{
		{"erp_id": "E-2", "code": "C-1"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Failed)
	assert.Equal(t, shared.CodePersistenceConflict, result.Results[0].ErrorCode)

	// The conflicting write was rolled back; E-2 keeps its own code.
	entity, err := env.engine.GetEntity(ctx, syncdom.EntityCustomers, "E-2")
	require.NoError(t, err)
	customer := entity.(interface{ IdentifierValues() map[string]string })
	assert.Equal(t, "C-2", customer.IdentifierValues()["code"])
}

func TestRunBatchReportsResolutionConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Two customers legitimately share a phone; phone is non-unique.
	_, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 2, []record.Record{
		{"erp_id": "E-1", "name": "Acme", "phone": "13800000000"},
		{"erp_id": "E-2", "name": "Globex", "phone": "13800000000"},
	})
	require.NoError(t, err)

	result, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 1, []record.Record{
		{"phone": "13800000000", "name": "Which One"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Failed)
	assert.Equal(t, shared.CodeResolutionConflict, result.Results[0].ErrorCode)
	assert.True(t, result.AllFailed())
}

func TestRunBatchAllFailed(t *testing.T) {
	env := newTestEnv(t)

	result, log, err := env.engine.RunBatch(context.Background(), syncdom.EntityCustomers, 2, []record.Record{
		{"name": "No Identifiers"},
		{"status": "archived", "erp_id": "E-9"},
	})
	require.NoError(t, err)
	assert.True(t, result.AllFailed())
	assert.Equal(t, syncdom.SyncStatusCompleted, log.Status)
	assert.Equal(t, 0, log.Processed)
	assert.Equal(t, 2, log.FailedCount)
}

func TestRunBatchDistributesToEnabledBranches(t *testing.T) {
	env := newTestEnv(t)
	env.addBranch(t, "BR-1", true)
	env.addBranch(t, "BR-2", false)
	ctx := context.Background()

	result, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 2, []record.Record{
		{"erp_id": "E-1", "name": "Acme"},
		{"erp_id": "E-2", "name": "Globex", "status": "inactive"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)

	// Only the active entity reaches the one enabled branch.
	calls := env.pusher.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "BR-1", calls[0].branch)
	assert.Equal(t, "/api/v1/sync/customers", calls[0].path)

	require.Len(t, result.Results[0].Distribution, 1)
	assert.True(t, result.Results[0].Distribution[0].Delivered)
	assert.Empty(t, result.Results[1].Distribution)
}

func TestRunBatchPushFailureDoesNotReverseUpsert(t *testing.T) {
	env := newTestEnv(t)
	env.addBranch(t, "BR-1", true)
	env.pusher.err = errors.New("connection refused")
	ctx := context.Background()

	result, log, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 1, []record.Record{
		{"erp_id": "E-1", "name": "Acme"},
	})
	require.NoError(t, err)

	// The record counts as imported; the failed push shows on its entry.
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, syncdom.SyncStatusCompleted, log.Status)
	require.Len(t, result.Results[0].Distribution, 1)
	assert.False(t, result.Results[0].Distribution[0].Delivered)
	assert.Contains(t, result.Results[0].Distribution[0].Error, "connection refused")

	_, err = env.engine.GetEntity(ctx, syncdom.EntityCustomers, "E-1")
	assert.NoError(t, err)
}

func TestResolveIdentifierPrecedence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.engine.RunBatch(ctx, syncdom.EntityProducts, 2, []record.Record{
		{"erp_id": "P-1", "sku": "SKU-1", "name": "Widget"},
		{"erp_id": "P-2", "sku": "SKU-2", "name": "Gadget"},
	})
	require.NoError(t, err)

	t.Run("resolves by any declared identifier", func(t *testing.T) {
		byErp, err := env.engine.ResolveIdentifier(ctx, syncdom.EntityProducts, "P-1")
		require.NoError(t, err)
		bySku, err := env.engine.ResolveIdentifier(ctx, syncdom.EntityProducts, "SKU-1")
		require.NoError(t, err)
		assert.Equal(t, byErp, bySku)
	})

	t.Run("unknown identifier is not found", func(t *testing.T) {
		_, err := env.engine.ResolveIdentifier(ctx, syncdom.EntityProducts, "nope")
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("empty identifier is a validation error", func(t *testing.T) {
		_, err := env.engine.ResolveIdentifier(ctx, syncdom.EntityProducts, "")
		assert.True(t, shared.IsValidation(err))
	})
}

func TestUpdateEntityCoalesces(t *testing.T) {
	env := newTestEnv(t)
	env.addBranch(t, "BR-1", true)
	ctx := context.Background()

	_, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 1, []record.Record{
		{"erp_id": "E-1", "name": "Acme", "email": "ops@acme.example.com"},
	})
	require.NoError(t, err)
	env.pusher.pushes = nil

	payload, outcomes, err := env.engine.UpdateEntity(ctx, syncdom.EntityCustomers, "E-1", record.Record{
		"name": "Acme Group",
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Delivered)

	// The absent email field was left untouched.
	customer := payload.(interface{ IdentifierValues() map[string]string })
	assert.Equal(t, "E-1", customer.IdentifierValues()["erp_id"])
	var email string
	require.NoError(t, env.db.Table("customers").Select("email").Where("erp_id = ?", "E-1").Scan(&email).Error)
	assert.Equal(t, "ops@acme.example.com", email)
}

func TestDeactivateEntityStopsDistribution(t *testing.T) {
	env := newTestEnv(t)
	env.addBranch(t, "BR-1", true)
	ctx := context.Background()

	_, _, err := env.engine.RunBatch(ctx, syncdom.EntityCustomers, 1, []record.Record{
		{"erp_id": "E-1", "name": "Acme"},
	})
	require.NoError(t, err)
	env.pusher.pushes = nil

	require.NoError(t, env.engine.DeactivateEntity(ctx, syncdom.EntityCustomers, "E-1"))

	// A follow-up update of the now-inactive entity commits but does not push.
	_, outcomes, err := env.engine.UpdateEntity(ctx, syncdom.EntityCustomers, "E-1", record.Record{"notes": "dormant"})
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Empty(t, env.pusher.calls())
}

func TestRunBatchInventoryRequiresQuantityOnCreate(t *testing.T) {
	env := newTestEnv(t)

	result, _, err := env.engine.RunBatch(context.Background(), syncdom.EntityInventory, 2, []record.Record{
		{"sku": "SKU-1", "quantity": float64(10)},
		{"sku": "SKU-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Equal(t, 1, result.Failed)
	assert.Equal(t, shared.CodeValidation, result.Results[1].ErrorCode)
	assert.Contains(t, result.Results[1].Error, "quantity is required")
}
