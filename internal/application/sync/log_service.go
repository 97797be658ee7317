package syncapp

import (
	"context"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogService serves the provenance read endpoints and retention cleanup.
type LogService struct {
	logs   syncdom.SyncLogRepository
	logger *zap.Logger
}

// NewLogService creates the sync log query service
func NewLogService(logs syncdom.SyncLogRepository, logger *zap.Logger) *LogService {
	return &LogService{logs: logs, logger: logger}
}

// List returns a page of sync logs plus the unpaged total
func (s *LogService) List(ctx context.Context, filter syncdom.SyncLogFilter, page shared.Filter) ([]syncdom.SyncLog, int64, error) {
	if filter.EntityType != "" && !filter.EntityType.IsValid() {
		return nil, 0, shared.NewValidationError("invalid entity type filter")
	}
	logs, err := s.logs.FindAll(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.logs.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Get returns one sync log by id
func (s *LogService) Get(ctx context.Context, id uuid.UUID) (*syncdom.SyncLog, error) {
	return s.logs.FindByID(ctx, id)
}

// Summarize aggregates log counts per entity type and status since a cutoff
func (s *LogService) Summarize(ctx context.Context, since *time.Time) ([]syncdom.SyncLogSummary, error) {
	return s.logs.Summarize(ctx, since)
}

// Cleanup deletes closed logs older than the retention window
func (s *LogService) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, shared.NewValidationError("retention must be positive")
	}
	cutoff := time.Now().Add(-retention)
	deleted, err := s.logs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("sync log cleanup",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return deleted, nil
}
