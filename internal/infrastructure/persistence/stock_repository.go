package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainsync/backend/internal/domain/inventory"
	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Save creates or updates a stock level
func (r *GormStockRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	if err := r.db.WithContext(ctx).Save(level).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

// FindByID finds a stock level by its ID
func (r *GormStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByIdentifier finds every stock level matching one identifier column
func (r *GormStockRepository) FindByIdentifier(ctx context.Context, field, value string) ([]inventory.StockLevel, error) {
	column, ok := productIdentifierColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown stock identifier field: %s", field)
	}
	if column == "sku" {
		value = strings.ToUpper(value)
	}

	var levels []inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Limit(2).
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindAll finds stock levels matching the filter
func (r *GormStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := applyListFilter(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)
	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Count counts stock levels matching the filter
func (r *GormStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterConditions(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
