package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSyncLogRepository implements SyncLogRepository using GORM
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Save creates or updates a sync log
func (r *GormSyncLogRepository) Save(ctx context.Context, log *syncdom.SyncLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// FindByID finds a sync log by its ID
func (r *GormSyncLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdom.SyncLog, error) {
	var log syncdom.SyncLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindAll finds sync logs matching the filter, newest first
func (r *GormSyncLogRepository) FindAll(ctx context.Context, filter syncdom.SyncLogFilter, page shared.Filter) ([]syncdom.SyncLog, error) {
	var logs []syncdom.SyncLog
	query := r.applyFilter(r.db.WithContext(ctx).Model(&syncdom.SyncLog{}), filter).
		Order("started_at DESC")
	if page.Page > 0 && page.PageSize > 0 {
		query = query.Offset(page.Offset()).Limit(page.PageSize)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts sync logs matching the filter
func (r *GormSyncLogRepository) Count(ctx context.Context, filter syncdom.SyncLogFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&syncdom.SyncLog{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Summarize aggregates log counts per entity type and status
func (r *GormSyncLogRepository) Summarize(ctx context.Context, since *time.Time) ([]syncdom.SyncLogSummary, error) {
	var summaries []syncdom.SyncLogSummary
	query := r.db.WithContext(ctx).Model(&syncdom.SyncLog{}).
		Select("entity_type, status, COUNT(*) as count").
		Group("entity_type, status")
	if since != nil {
		query = query.Where("started_at >= ?", *since)
	}
	if err := query.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// DeleteOlderThan deletes closed logs that started before the cutoff.
// Running logs are never reaped, whatever their age.
func (r *GormSyncLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("started_at < ? AND status <> ?", cutoff, syncdom.SyncStatusRunning).
		Delete(&syncdom.SyncLog{})
	return result.RowsAffected, result.Error
}

func (r *GormSyncLogRepository) applyFilter(query *gorm.DB, filter syncdom.SyncLogFilter) *gorm.DB {
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.Direction != "" {
		query = query.Where("direction = ?", filter.Direction)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Since != nil {
		query = query.Where("started_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		query = query.Where("started_at < ?", *filter.Until)
	}
	return query
}

// Ensure GormSyncLogRepository implements SyncLogRepository
var _ syncdom.SyncLogRepository = (*GormSyncLogRepository)(nil)
