package sync

import (
	"context"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SyncLogFilter narrows sync log queries for the provenance endpoints.
type SyncLogFilter struct {
	EntityType EntityType
	Direction  Direction
	Status     SyncStatus
	Since      *time.Time
	Until      *time.Time
}

// SyncLogSummary aggregates log counts per entity type and status.
type SyncLogSummary struct {
	EntityType EntityType `json:"entity_type"`
	Status     SyncStatus `json:"status"`
	Count      int64      `json:"count"`
}

// SyncLogRepository persists provenance records. The orchestrator is the
// only writer; the provenance endpoints only read.
type SyncLogRepository interface {
	Save(ctx context.Context, log *SyncLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*SyncLog, error)
	FindAll(ctx context.Context, filter SyncLogFilter, page shared.Filter) ([]SyncLog, error)
	Count(ctx context.Context, filter SyncLogFilter) (int64, error)
	Summarize(ctx context.Context, since *time.Time) ([]SyncLogSummary, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
