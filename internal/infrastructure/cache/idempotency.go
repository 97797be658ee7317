// Package cache holds the idempotency store that guards batch replays.
package cache

import (
	"context"
	"time"
)

// IdempotencyStore remembers batch idempotency keys so an ERP retry of an
// already-accepted batch is rejected instead of re-imported.
type IdempotencyStore interface {
	// Claim atomically records the key with a TTL. It returns true when the
	// key was fresh, false when a previous batch already claimed it.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops a claimed key, used when the claimed batch failed before
	// any record was committed so a retry can go through.
	Release(ctx context.Context, key string) error

	Close() error
}
