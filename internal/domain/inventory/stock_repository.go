package inventory

import (
	"context"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRepository defines the persistence contract for stock levels.
type StockRepository interface {
	Save(ctx context.Context, level *StockLevel) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockLevel, error)
	FindByIdentifier(ctx context.Context, field, value string) ([]StockLevel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLevel, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
