package syncapp

import (
	"context"
	"strings"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BranchService manages the branch endpoint registry that distribution
// fans out to.
type BranchService struct {
	branches syncdom.BranchEndpointRepository
	logger   *zap.Logger
}

// NewBranchService creates the branch registry service
func NewBranchService(branches syncdom.BranchEndpointRepository, logger *zap.Logger) *BranchService {
	return &BranchService{branches: branches, logger: logger}
}

// Register adds a new branch endpoint; codes are unique across the chain
func (s *BranchService) Register(ctx context.Context, code, name, baseURL, token string) (*syncdom.BranchEndpoint, error) {
	endpoint, err := syncdom.NewBranchEndpoint(code, name, baseURL, token)
	if err != nil {
		return nil, err
	}
	if err := s.branches.Save(ctx, endpoint); err != nil {
		return nil, err
	}
	s.logger.Info("branch endpoint registered",
		zap.String("code", endpoint.Code),
		zap.String("base_url", endpoint.BaseURL))
	return endpoint, nil
}

// Update replaces the mutable fields of one endpoint
func (s *BranchService) Update(ctx context.Context, id uuid.UUID, name, baseURL, token string) (*syncdom.BranchEndpoint, error) {
	endpoint, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := endpoint.Update(name, baseURL, token); err != nil {
		return nil, err
	}
	if err := s.branches.Save(ctx, endpoint); err != nil {
		return nil, err
	}
	return endpoint, nil
}

// Get returns one endpoint by id
func (s *BranchService) Get(ctx context.Context, id uuid.UUID) (*syncdom.BranchEndpoint, error) {
	return s.branches.FindByID(ctx, id)
}

// GetByCode returns one endpoint by its branch code
func (s *BranchService) GetByCode(ctx context.Context, code string) (*syncdom.BranchEndpoint, error) {
	if code == "" {
		return nil, shared.NewValidationError("branch code is required")
	}
	return s.branches.FindByCode(ctx, strings.ToUpper(code))
}

// List returns every registered endpoint
func (s *BranchService) List(ctx context.Context) ([]syncdom.BranchEndpoint, error) {
	return s.branches.FindAll(ctx)
}

// SetEnabled flips whether the endpoint receives distribution
func (s *BranchService) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*syncdom.BranchEndpoint, error) {
	endpoint, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enabled {
		endpoint.Enable()
	} else {
		endpoint.Disable()
	}
	if err := s.branches.Save(ctx, endpoint); err != nil {
		return nil, err
	}
	s.logger.Info("branch endpoint toggled",
		zap.String("code", endpoint.Code),
		zap.Bool("enabled", enabled))
	return endpoint, nil
}

// Remove deletes one endpoint from the registry
func (s *BranchService) Remove(ctx context.Context, id uuid.UUID) error {
	endpoint, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.branches.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("branch endpoint removed", zap.String("code", endpoint.Code))
	return nil
}
