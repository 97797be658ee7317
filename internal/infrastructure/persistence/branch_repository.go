package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchEndpointRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Save creates or updates a branch endpoint
func (r *GormBranchRepository) Save(ctx context.Context, endpoint *syncdom.BranchEndpoint) error {
	if err := r.db.WithContext(ctx).Save(endpoint).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

// FindByID finds a branch endpoint by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdom.BranchEndpoint, error) {
	var endpoint syncdom.BranchEndpoint
	if err := r.db.WithContext(ctx).First(&endpoint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &endpoint, nil
}

// FindByCode finds a branch endpoint by its branch code
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*syncdom.BranchEndpoint, error) {
	var endpoint syncdom.BranchEndpoint
	if err := r.db.WithContext(ctx).
		First(&endpoint, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &endpoint, nil
}

// FindAll returns every registered branch endpoint ordered by code
func (r *GormBranchRepository) FindAll(ctx context.Context) ([]syncdom.BranchEndpoint, error) {
	var endpoints []syncdom.BranchEndpoint
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&endpoints).Error; err != nil {
		return nil, err
	}
	return endpoints, nil
}

// FindEnabled returns the endpoints that receive distribution
func (r *GormBranchRepository) FindEnabled(ctx context.Context) ([]syncdom.BranchEndpoint, error) {
	var endpoints []syncdom.BranchEndpoint
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("code ASC").
		Find(&endpoints).Error; err != nil {
		return nil, err
	}
	return endpoints, nil
}

// Delete deletes a branch endpoint
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&syncdom.BranchEndpoint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBranchRepository implements BranchEndpointRepository
var _ syncdom.BranchEndpointRepository = (*GormBranchRepository)(nil)
