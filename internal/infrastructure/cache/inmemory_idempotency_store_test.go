package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStoreClaim(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		fresh, err := store.Claim(ctx, "customers:batch-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("second claim is rejected", func(t *testing.T) {
		fresh, err := store.Claim(ctx, "customers:batch-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("keys are scoped by entity type", func(t *testing.T) {
		fresh, err := store.Claim(ctx, "products:batch-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, fresh)
	})
}

func TestInMemoryIdempotencyStoreRelease(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	fresh, err := store.Claim(ctx, "customers:batch-2", time.Minute)
	require.NoError(t, err)
	require.True(t, fresh)

	// Releasing makes the key claimable again, so an aborted batch can retry.
	require.NoError(t, store.Release(ctx, "customers:batch-2"))

	fresh, err = store.Claim(ctx, "customers:batch-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestInMemoryIdempotencyStoreExpiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	fresh, err := store.Claim(ctx, "customers:batch-3", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, fresh)

	time.Sleep(20 * time.Millisecond)

	fresh, err = store.Claim(ctx, "customers:batch-3", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh, "expired claims no longer block")
}

func TestInMemoryIdempotencyStoreCleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.Claim(ctx, "a", time.Nanosecond)
	require.NoError(t, err)
	_, err = store.Claim(ctx, "b", time.Minute)
	require.NoError(t, err)

	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStoreCloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
