package catalog

import (
	"context"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIdentifier(ctx context.Context, field, value string) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PriceRepository defines the persistence contract for price entries.
type PriceRepository interface {
	Save(ctx context.Context, entry *PriceEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*PriceEntry, error)
	FindByIdentifier(ctx context.Context, field, value string) ([]PriceEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PriceEntry, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
