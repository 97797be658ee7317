package syncapp

import (
	"context"

	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"go.uber.org/zap"
)

// Recorder writes sync provenance around a batch. The log is opened before
// the first record is touched and closed exactly once; an abort closes it as
// failed, a finished loop closes it as completed even when every record in
// the ledger failed.
type Recorder struct {
	logs   syncdom.SyncLogRepository
	logger *zap.Logger
}

// NewRecorder creates a recorder over the sync log repository
func NewRecorder(logs syncdom.SyncLogRepository, logger *zap.Logger) *Recorder {
	return &Recorder{logs: logs, logger: logger}
}

// Begin opens a running sync log for the batch
func (r *Recorder) Begin(ctx context.Context, entityType syncdom.EntityType, direction syncdom.Direction, total int) (*syncdom.SyncLog, error) {
	log, err := syncdom.NewSyncLog(entityType, direction, total)
	if err != nil {
		return nil, err
	}
	if err := r.logs.Save(ctx, log); err != nil {
		return nil, err
	}
	r.logger.Info("sync batch started",
		zap.String("sync_log_id", log.ID.String()),
		zap.String("entity_type", string(entityType)),
		zap.String("direction", string(direction)),
		zap.Int("records_total", total))
	return log, nil
}

// Complete closes the log after the ledger loop ran to the end
func (r *Recorder) Complete(ctx context.Context, log *syncdom.SyncLog, processed, failed int) error {
	if err := log.Complete(processed, failed); err != nil {
		return err
	}
	if err := r.logs.Save(ctx, log); err != nil {
		return err
	}
	r.logger.Info("sync batch completed",
		zap.String("sync_log_id", log.ID.String()),
		zap.Int("processed", processed),
		zap.Int("failed", failed),
		zap.Duration("duration", log.Duration()))
	return nil
}

// Abort closes the log as failed after the batch stopped before the loop
// could finish, typically a transaction or infrastructure error.
func (r *Recorder) Abort(ctx context.Context, log *syncdom.SyncLog, processed, failed int, cause error) {
	if err := log.Fail(processed, failed, cause.Error()); err != nil {
		r.logger.Error("could not mark sync log failed", zap.String("sync_log_id", log.ID.String()), zap.Error(err))
		return
	}
	if err := r.logs.Save(ctx, log); err != nil {
		r.logger.Error("could not persist failed sync log", zap.String("sync_log_id", log.ID.String()), zap.Error(err))
		return
	}
	r.logger.Warn("sync batch aborted",
		zap.String("sync_log_id", log.ID.String()),
		zap.Error(cause))
}
