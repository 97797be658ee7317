package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainsync/backend/internal/domain/catalog"
	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceRepository implements PriceRepository using GORM
type GormPriceRepository struct {
	db *gorm.DB
}

// NewGormPriceRepository creates a new GormPriceRepository
func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// Save creates or updates a price entry
func (r *GormPriceRepository) Save(ctx context.Context, entry *catalog.PriceEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

// FindByID finds a price entry by its ID
func (r *GormPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PriceEntry, error) {
	var entry catalog.PriceEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByIdentifier finds every price entry matching one identifier column
func (r *GormPriceRepository) FindByIdentifier(ctx context.Context, field, value string) ([]catalog.PriceEntry, error) {
	column, ok := productIdentifierColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown price identifier field: %s", field)
	}
	if column == "sku" {
		value = strings.ToUpper(value)
	}

	var entries []catalog.PriceEntry
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Limit(2).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds price entries matching the filter
func (r *GormPriceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceEntry, error) {
	var entries []catalog.PriceEntry
	query := applyListFilter(r.db.WithContext(ctx).Model(&catalog.PriceEntry{}), filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts price entries matching the filter
func (r *GormPriceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterConditions(r.db.WithContext(ctx).Model(&catalog.PriceEntry{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPriceRepository implements PriceRepository
var _ catalog.PriceRepository = (*GormPriceRepository)(nil)
