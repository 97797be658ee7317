package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainsync/backend/internal/domain/partner"
	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// customerIdentifierColumns whitelists the columns FindByIdentifier may
// touch. Field names arrive from resolver configuration, never user input,
// but the whitelist keeps the query assembly honest.
var customerIdentifierColumns = map[string]string{
	"erp_id":  "erp_id",
	"code":    "code",
	"card_no": "card_no",
	"phone":   "phone",
}

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByIdentifier finds every customer matching one identifier column.
// Two rows are enough to prove a conflict, so the query is capped there.
func (r *GormCustomerRepository) FindByIdentifier(ctx context.Context, field, value string) ([]partner.Customer, error) {
	column, ok := customerIdentifierColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown customer identifier field: %s", field)
	}
	if column == "code" {
		value = strings.ToUpper(value)
	}

	var customers []partner.Customer
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Limit(2).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := applyListFilter(r.db.WithContext(ctx).Model(&partner.Customer{}), filter)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterConditions(r.db.WithContext(ctx).Model(&partner.Customer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
