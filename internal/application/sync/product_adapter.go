package syncapp

import (
	"context"

	"github.com/chainsync/backend/internal/domain/catalog"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
)

// ProductAdapter binds the products entity type into the engine.
type ProductAdapter struct {
	validator *record.Validator
}

// NewProductAdapter creates the products adapter
func NewProductAdapter() *ProductAdapter {
	return &ProductAdapter{
		validator: record.NewValidator(
			record.Field("name").MaxLength(200).Build(),
			record.Field("unit").MaxLength(20).Build(),
			record.Field("category").MaxLength(100).Build(),
			record.Field("status").Custom(statusValue).Build(),
		),
	}
}

func (a *ProductAdapter) EntityType() syncdom.EntityType { return syncdom.EntityProducts }

func (a *ProductAdapter) Identifiers() syncdom.IdentifierSet {
	return syncdom.Identifiers(syncdom.EntityProducts)
}

func (a *ProductAdapter) Validate(rec record.Record) error {
	return a.validator.Validate(rec)
}

func (a *ProductAdapter) FindMatches(ctx context.Context, repos Repositories, field, value string) ([]uuid.UUID, error) {
	products, err := repos.Products().FindByIdentifier(ctx, field, value)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids, nil
}

func (a *ProductAdapter) Create(ctx context.Context, repos Repositories, rec record.Record) (uuid.UUID, error) {
	product, err := catalog.NewProduct(rec.String("name"))
	if err != nil {
		return uuid.Nil, err
	}
	if err := a.apply(product, rec); err != nil {
		return uuid.Nil, err
	}
	if err := repos.Products().Save(ctx, product); err != nil {
		return uuid.Nil, err
	}
	return product.ID, nil
}

func (a *ProductAdapter) Update(ctx context.Context, repos Repositories, id uuid.UUID, rec record.Record) error {
	product, err := repos.Products().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Has("name") {
		if err := product.Rename(rec.String("name")); err != nil {
			return err
		}
	}
	if err := a.apply(product, rec); err != nil {
		return err
	}
	return repos.Products().Save(ctx, product)
}

func (a *ProductAdapter) apply(product *catalog.Product, rec record.Record) error {
	product.SetErpID(rec.String("erp_id"))
	product.SetSKU(rec.String("sku"))
	product.SetBarcode(rec.String("barcode"))

	if rec.Has("description") {
		product.SetDescription(rec.String("description"))
	}
	if rec.Has("unit") {
		if err := product.SetUnit(rec.String("unit")); err != nil {
			return err
		}
	}
	if rec.Has("category") {
		product.SetCategory(rec.String("category"))
	}
	if rec.Has("status") && !rec.IsNull("status") {
		if rec.String("status") == string(catalog.ProductStatusActive) {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}
	return nil
}

func (a *ProductAdapter) Snapshot(ctx context.Context, repos Repositories, id uuid.UUID) (any, bool, error) {
	product, err := repos.Products().FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return product, product.IsActive(), nil
}

func (a *ProductAdapter) Deactivate(ctx context.Context, repos Repositories, id uuid.UUID) error {
	product, err := repos.Products().FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return repos.Products().Save(ctx, product)
}
