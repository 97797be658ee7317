package sync

import (
	"fmt"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
)

// SyncStatus represents the lifecycle of a sync log entry.
type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// IsTerminal returns true once the log has been closed
func (s SyncStatus) IsTerminal() bool {
	return s == SyncStatusCompleted || s == SyncStatusFailed
}

// SyncLog is the provenance record for one batch. It is opened once before
// any record is processed and closed exactly once when the orchestrator
// finishes, never mutated mid-batch.
type SyncLog struct {
	shared.BaseAggregateRoot
	EntityType   EntityType `gorm:"type:varchar(32);not null;index" json:"entity_type"`
	Direction    Direction  `gorm:"type:varchar(16);not null;index" json:"direction"`
	Status       SyncStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	RecordsTotal int        `gorm:"not null" json:"records_total"`
	Processed    int        `gorm:"not null;default:0" json:"processed"`
	FailedCount  int        `gorm:"not null;default:0" json:"failed_count"`
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt    time.Time  `gorm:"not null;index" json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// TableName returns the table name for GORM
func (SyncLog) TableName() string {
	return "sync_logs"
}

// NewSyncLog opens a provenance record for a batch of total records.
func NewSyncLog(entityType EntityType, direction Direction, total int) (*SyncLog, error) {
	if !entityType.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("invalid entity type: %s", entityType))
	}
	if !direction.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("invalid sync direction: %s", direction))
	}
	if total < 0 {
		return nil, shared.NewValidationError("records total cannot be negative")
	}

	return &SyncLog{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntityType:        entityType,
		Direction:         direction,
		Status:            SyncStatusRunning,
		RecordsTotal:      total,
		StartedAt:         time.Now(),
	}, nil
}

// Complete closes the log after the ledger loop finished. A batch where
// every record failed still completes; failed is reserved for aborts.
func (l *SyncLog) Complete(processed, failed int) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("sync log already closed with status %s", l.Status))
	}

	l.Status = SyncStatusCompleted
	l.Processed = processed
	l.FailedCount = failed
	now := time.Now()
	l.CompletedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()

	return nil
}

// Fail closes the log after the batch aborted before the loop finished.
func (l *SyncLog) Fail(processed, failed int, message string) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("sync log already closed with status %s", l.Status))
	}

	l.Status = SyncStatusFailed
	l.Processed = processed
	l.FailedCount = failed
	l.ErrorMessage = message
	now := time.Now()
	l.CompletedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()

	return nil
}

// IsOpen reports whether the log is still running
func (l *SyncLog) IsOpen() bool {
	return l.Status == SyncStatusRunning
}

// Duration returns how long the batch has been running or took to finish
func (l *SyncLog) Duration() time.Duration {
	if l.CompletedAt != nil {
		return l.CompletedAt.Sub(l.StartedAt)
	}
	return time.Since(l.StartedAt)
}
