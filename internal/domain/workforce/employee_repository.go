package workforce

import (
	"context"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository defines the persistence contract for employees.
type EmployeeRepository interface {
	Save(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByIdentifier(ctx context.Context, field, value string) ([]Employee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
