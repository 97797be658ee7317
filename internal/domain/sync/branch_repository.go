package sync

import (
	"context"

	"github.com/google/uuid"
)

// BranchEndpointRepository persists branch distribution targets.
type BranchEndpointRepository interface {
	Save(ctx context.Context, endpoint *BranchEndpoint) error
	FindByID(ctx context.Context, id uuid.UUID) (*BranchEndpoint, error)
	FindByCode(ctx context.Context, code string) (*BranchEndpoint, error)
	FindAll(ctx context.Context) ([]BranchEndpoint, error)
	FindEnabled(ctx context.Context) ([]BranchEndpoint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
