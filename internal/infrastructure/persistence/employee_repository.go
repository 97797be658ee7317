package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/chainsync/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var employeeIdentifierColumns = map[string]string{
	"erp_id":   "erp_id",
	"code":     "code",
	"badge_no": "badge_no",
	"email":    "email",
}

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *workforce.Employee) error {
	if err := r.db.WithContext(ctx).Save(employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	var employee workforce.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindByIdentifier finds every employee matching one identifier column
func (r *GormEmployeeRepository) FindByIdentifier(ctx context.Context, field, value string) ([]workforce.Employee, error) {
	column, ok := employeeIdentifierColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown employee identifier field: %s", field)
	}
	if column == "code" {
		value = strings.ToUpper(value)
	}

	var employees []workforce.Employee
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Limit(2).
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// FindAll finds employees matching the filter
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	var employees []workforce.Employee
	query := applyListFilter(r.db.WithContext(ctx).Model(&workforce.Employee{}), filter)
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterConditions(r.db.WithContext(ctx).Model(&workforce.Employee{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEmployeeRepository implements EmployeeRepository
var _ workforce.EmployeeRepository = (*GormEmployeeRepository)(nil)
