package sync

import (
	"testing"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncLog(t *testing.T) {
	t.Run("opens a running log", func(t *testing.T) {
		log, err := NewSyncLog(EntityCustomers, DirectionInbound, 10)

		require.NoError(t, err)
		assert.Equal(t, SyncStatusRunning, log.Status)
		assert.Equal(t, 10, log.RecordsTotal)
		assert.True(t, log.IsOpen())
		assert.Nil(t, log.CompletedAt)
		assert.False(t, log.StartedAt.IsZero())
	})

	t.Run("rejects invalid entity type", func(t *testing.T) {
		_, err := NewSyncLog(EntityType("orders"), DirectionInbound, 1)
		assert.Error(t, err)
	})

	t.Run("rejects invalid direction", func(t *testing.T) {
		_, err := NewSyncLog(EntityCustomers, Direction("sideways"), 1)
		assert.Error(t, err)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := NewSyncLog(EntityCustomers, DirectionInbound, -1)
		assert.Error(t, err)
	})
}

func TestSyncLogComplete(t *testing.T) {
	log, err := NewSyncLog(EntityProducts, DirectionInbound, 5)
	require.NoError(t, err)

	require.NoError(t, log.Complete(3, 2))
	assert.Equal(t, SyncStatusCompleted, log.Status)
	assert.Equal(t, 3, log.Processed)
	assert.Equal(t, 2, log.FailedCount)
	assert.NotNil(t, log.CompletedAt)
	assert.False(t, log.IsOpen())

	t.Run("all-failed batches still complete", func(t *testing.T) {
		log, err := NewSyncLog(EntityProducts, DirectionInbound, 2)
		require.NoError(t, err)
		require.NoError(t, log.Complete(0, 2))
		assert.Equal(t, SyncStatusCompleted, log.Status)
	})

	t.Run("cannot close twice", func(t *testing.T) {
		err := log.Complete(3, 2)
		require.Error(t, err)
		assert.True(t, shared.HasCode(err, shared.CodeInvalidState))
	})
}

func TestSyncLogFail(t *testing.T) {
	log, err := NewSyncLog(EntityInventory, DirectionInbound, 4)
	require.NoError(t, err)

	require.NoError(t, log.Fail(1, 1, "batch transaction failed"))
	assert.Equal(t, SyncStatusFailed, log.Status)
	assert.Equal(t, "batch transaction failed", log.ErrorMessage)
	assert.NotNil(t, log.CompletedAt)

	assert.Error(t, log.Complete(1, 1))
}

func TestSyncLogDuration(t *testing.T) {
	log, err := NewSyncLog(EntityPrices, DirectionInbound, 1)
	require.NoError(t, err)
	require.NoError(t, log.Complete(1, 0))

	assert.Equal(t, log.CompletedAt.Sub(log.StartedAt), log.Duration())
}
