package syncapp

import (
	"context"

	"github.com/chainsync/backend/internal/domain/catalog"
	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceAdapter binds the prices entity type into the engine.
type PriceAdapter struct {
	validator *record.Validator
}

// NewPriceAdapter creates the prices adapter
func NewPriceAdapter() *PriceAdapter {
	return &PriceAdapter{
		validator: record.NewValidator(
			record.Field("price").Decimal().MinValue(decimal.Zero).Build(),
			record.Field("currency").Pattern(`^[A-Za-z]{3}$`, "a 3-letter code").Build(),
			record.Field("status").Custom(statusValue).Build(),
		),
	}
}

func (a *PriceAdapter) EntityType() syncdom.EntityType { return syncdom.EntityPrices }

func (a *PriceAdapter) Identifiers() syncdom.IdentifierSet {
	return syncdom.Identifiers(syncdom.EntityPrices)
}

func (a *PriceAdapter) Validate(rec record.Record) error {
	return a.validator.Validate(rec)
}

func (a *PriceAdapter) FindMatches(ctx context.Context, repos Repositories, field, value string) ([]uuid.UUID, error) {
	entries, err := repos.Prices().FindByIdentifier(ctx, field, value)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(entries))
	for i, p := range entries {
		ids[i] = p.ID
	}
	return ids, nil
}

func (a *PriceAdapter) Create(ctx context.Context, repos Repositories, rec record.Record) (uuid.UUID, error) {
	if rec.String("price") == "" {
		return uuid.Nil, shared.NewValidationError("price is required")
	}
	price, err := rec.Decimal("price")
	if err != nil {
		return uuid.Nil, shared.NewValidationError(err.Error())
	}
	entry, err := catalog.NewPriceEntry(price)
	if err != nil {
		return uuid.Nil, err
	}
	if err := a.apply(entry, rec); err != nil {
		return uuid.Nil, err
	}
	if err := repos.Prices().Save(ctx, entry); err != nil {
		return uuid.Nil, err
	}
	return entry.ID, nil
}

func (a *PriceAdapter) Update(ctx context.Context, repos Repositories, id uuid.UUID, rec record.Record) error {
	entry, err := repos.Prices().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Has("price") && !rec.IsNull("price") {
		price, err := rec.Decimal("price")
		if err != nil {
			return shared.NewValidationError(err.Error())
		}
		if err := entry.SetPrice(price); err != nil {
			return err
		}
	}
	if err := a.apply(entry, rec); err != nil {
		return err
	}
	return repos.Prices().Save(ctx, entry)
}

func (a *PriceAdapter) apply(entry *catalog.PriceEntry, rec record.Record) error {
	entry.SetErpID(rec.String("erp_id"))
	entry.SetSKU(rec.String("sku"))
	entry.SetBarcode(rec.String("barcode"))

	if rec.Has("currency") {
		if err := entry.SetCurrency(rec.String("currency")); err != nil {
			return err
		}
	}
	if rec.Has("status") && !rec.IsNull("status") {
		if rec.String("status") == string(catalog.PriceStatusActive) {
			entry.Activate()
		} else {
			entry.Deactivate()
		}
	}
	return nil
}

func (a *PriceAdapter) Snapshot(ctx context.Context, repos Repositories, id uuid.UUID) (any, bool, error) {
	entry, err := repos.Prices().FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return entry, entry.IsActive(), nil
}

func (a *PriceAdapter) Deactivate(ctx context.Context, repos Repositories, id uuid.UUID) error {
	entry, err := repos.Prices().FindByID(ctx, id)
	if err != nil {
		return err
	}
	entry.Deactivate()
	return repos.Prices().Save(ctx, entry)
}
