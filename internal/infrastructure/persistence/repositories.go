package persistence

import (
	syncapp "github.com/chainsync/backend/internal/application/sync"
	"github.com/chainsync/backend/internal/domain/catalog"
	"github.com/chainsync/backend/internal/domain/inventory"
	"github.com/chainsync/backend/internal/domain/partner"
	"github.com/chainsync/backend/internal/domain/workforce"
	"gorm.io/gorm"
)

// gormRepositories bundles every entity repository over one database handle.
// The same implementation serves the root connection and batch transactions.
type gormRepositories struct {
	db *gorm.DB
}

// NewRepositories creates the repository bundle over a database handle
func NewRepositories(db *gorm.DB) syncapp.Repositories {
	return &gormRepositories{db: db}
}

func (r *gormRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.db)
}

func (r *gormRepositories) Employees() workforce.EmployeeRepository {
	return NewGormEmployeeRepository(r.db)
}

func (r *gormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.db)
}

func (r *gormRepositories) Prices() catalog.PriceRepository {
	return NewGormPriceRepository(r.db)
}

func (r *gormRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.db)
}

var _ syncapp.Repositories = (*gormRepositories)(nil)
