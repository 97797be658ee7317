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

// productIdentifierColumns is shared by products, prices, and stock levels,
// which all resolve on the same product-natural keys.
var productIdentifierColumns = map[string]string{
	"erp_id":  "erp_id",
	"sku":     "sku",
	"barcode": "barcode",
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIdentifier finds every product matching one identifier column
func (r *GormProductRepository) FindByIdentifier(ctx context.Context, field, value string) ([]catalog.Product, error) {
	column, ok := productIdentifierColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown product identifier field: %s", field)
	}
	if column == "sku" {
		value = strings.ToUpper(value)
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Limit(2).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyListFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterConditions(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
