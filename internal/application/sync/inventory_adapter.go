package syncapp

import (
	"context"

	"github.com/chainsync/backend/internal/domain/inventory"
	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryAdapter binds the inventory entity type into the engine.
type InventoryAdapter struct {
	validator *record.Validator
}

// NewInventoryAdapter creates the inventory adapter
func NewInventoryAdapter() *InventoryAdapter {
	return &InventoryAdapter{
		validator: record.NewValidator(
			record.Field("quantity").Decimal().MinValue(decimal.Zero).Build(),
			record.Field("reorder_point").Decimal().MinValue(decimal.Zero).Build(),
			record.Field("warehouse_code").MaxLength(50).Build(),
			record.Field("status").Custom(statusValue).Build(),
		),
	}
}

func (a *InventoryAdapter) EntityType() syncdom.EntityType { return syncdom.EntityInventory }

func (a *InventoryAdapter) Identifiers() syncdom.IdentifierSet {
	return syncdom.Identifiers(syncdom.EntityInventory)
}

func (a *InventoryAdapter) Validate(rec record.Record) error {
	return a.validator.Validate(rec)
}

func (a *InventoryAdapter) FindMatches(ctx context.Context, repos Repositories, field, value string) ([]uuid.UUID, error) {
	rows, err := repos.Stock().FindByIdentifier(ctx, field, value)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(rows))
	for i, s := range rows {
		ids[i] = s.ID
	}
	return ids, nil
}

func (a *InventoryAdapter) Create(ctx context.Context, repos Repositories, rec record.Record) (uuid.UUID, error) {
	if rec.String("quantity") == "" {
		return uuid.Nil, shared.NewValidationError("quantity is required")
	}
	quantity, err := rec.Decimal("quantity")
	if err != nil {
		return uuid.Nil, shared.NewValidationError(err.Error())
	}
	stock, err := inventory.NewStockLevel(quantity)
	if err != nil {
		return uuid.Nil, err
	}
	if err := a.apply(stock, rec); err != nil {
		return uuid.Nil, err
	}
	if err := repos.Stock().Save(ctx, stock); err != nil {
		return uuid.Nil, err
	}
	return stock.ID, nil
}

func (a *InventoryAdapter) Update(ctx context.Context, repos Repositories, id uuid.UUID, rec record.Record) error {
	stock, err := repos.Stock().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Has("quantity") && !rec.IsNull("quantity") {
		quantity, err := rec.Decimal("quantity")
		if err != nil {
			return shared.NewValidationError(err.Error())
		}
		if err := stock.SetQuantity(quantity); err != nil {
			return err
		}
	}
	if err := a.apply(stock, rec); err != nil {
		return err
	}
	return repos.Stock().Save(ctx, stock)
}

func (a *InventoryAdapter) apply(stock *inventory.StockLevel, rec record.Record) error {
	stock.SetErpID(rec.String("erp_id"))
	stock.SetSKU(rec.String("sku"))
	stock.SetBarcode(rec.String("barcode"))

	if rec.Has("warehouse_code") {
		stock.SetWarehouseCode(rec.String("warehouse_code"))
	}
	if rec.Has("reorder_point") {
		point := decimal.Zero
		if !rec.IsNull("reorder_point") {
			var err error
			if point, err = rec.Decimal("reorder_point"); err != nil {
				return shared.NewValidationError(err.Error())
			}
		}
		if err := stock.SetReorderPoint(point); err != nil {
			return err
		}
	}
	if rec.Has("status") && !rec.IsNull("status") {
		if rec.String("status") == string(inventory.StockStatusActive) {
			stock.Activate()
		} else {
			stock.Deactivate()
		}
	}
	return nil
}

func (a *InventoryAdapter) Snapshot(ctx context.Context, repos Repositories, id uuid.UUID) (any, bool, error) {
	stock, err := repos.Stock().FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return stock, stock.IsActive(), nil
}

func (a *InventoryAdapter) Deactivate(ctx context.Context, repos Repositories, id uuid.UUID) error {
	stock, err := repos.Stock().FindByID(ctx, id)
	if err != nil {
		return err
	}
	stock.Deactivate()
	return repos.Stock().Save(ctx, stock)
}
