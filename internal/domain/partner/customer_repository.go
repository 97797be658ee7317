package partner

import (
	"context"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the persistence contract for customers.
// FindByIdentifier performs one equality lookup against a single alternate
// identifier column and returns every match so the resolver can detect
// duplicate-identifier violations.
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIdentifier(ctx context.Context, field, value string) ([]Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
