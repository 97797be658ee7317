// Package syncapp implements the reconciliation and distribution engine:
// identifier resolution, create-vs-update execution, the batch loop with
// per-record failure isolation, sync provenance, and best-effort branch
// fan-out.
package syncapp

import (
	"context"

	"github.com/chainsync/backend/internal/domain/catalog"
	"github.com/chainsync/backend/internal/domain/inventory"
	"github.com/chainsync/backend/internal/domain/partner"
	"github.com/chainsync/backend/internal/domain/workforce"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
)

// Repositories exposes every entity repository bound to one database handle,
// either the root connection or a batch transaction.
type Repositories interface {
	Customers() partner.CustomerRepository
	Employees() workforce.EmployeeRepository
	Products() catalog.ProductRepository
	Prices() catalog.PriceRepository
	Stock() inventory.StockRepository
}

// BatchScope is the consistency envelope around one batch. Record runs fn
// inside a per-record sub-scope; when fn fails the sub-scope is rolled back
// so the failure cannot poison writes of subsequent records, while prior
// successful records stay committed-pending.
type BatchScope interface {
	Record(fn func(repos Repositories) error) error
}

// TransactionScope opens batch-level consistency scopes.
type TransactionScope interface {
	Batch(ctx context.Context, fn func(scope BatchScope) error) error
}

// Pusher delivers one entity payload to one branch endpoint with a bounded
// timeout. Implementations never retry; retry is the caller's business.
type Pusher interface {
	Push(ctx context.Context, endpoint syncdom.BranchEndpoint, path string, payload any) error
}
