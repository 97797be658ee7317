package persistence

import (
	"context"
	"errors"
	"fmt"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	"gorm.io/gorm"
)

// GormTransactionScope implements the batch transaction boundary on GORM.
// The whole batch runs in one transaction; each record gets a savepoint so
// a failed record rolls back alone while its neighbors survive to commit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Batch runs fn inside one database transaction
func (s *GormTransactionScope) Batch(ctx context.Context, fn func(scope syncapp.BatchScope) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBatchScope{tx: tx})
	})
}

type gormBatchScope struct {
	tx  *gorm.DB
	seq int
}

// Record runs fn under a fresh savepoint. On error the savepoint is rolled
// back and the record's error is returned; a failed rollback is joined in
// rather than swallowed, and a broken transaction makes every later
// savepoint fail too, so the damage stays visible.
func (s *gormBatchScope) Record(fn func(repos syncapp.Repositories) error) error {
	s.seq++
	name := fmt.Sprintf("record_%d", s.seq)

	if err := s.tx.SavePoint(name).Error; err != nil {
		return fmt.Errorf("savepoint %s failed: %w", name, err)
	}
	if err := fn(NewRepositories(s.tx)); err != nil {
		if rbErr := s.tx.RollbackTo(name).Error; rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback to %s failed: %w", name, rbErr))
		}
		return err
	}
	return nil
}

// Ensure GormTransactionScope implements TransactionScope
var _ syncapp.TransactionScope = (*GormTransactionScope)(nil)
