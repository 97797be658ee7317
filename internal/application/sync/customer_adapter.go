package syncapp

import (
	"context"
	"errors"

	"github.com/chainsync/backend/internal/domain/partner"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerAdapter binds the customers entity type into the engine.
type CustomerAdapter struct {
	validator *record.Validator
}

// NewCustomerAdapter creates the customers adapter
func NewCustomerAdapter() *CustomerAdapter {
	return &CustomerAdapter{
		validator: record.NewValidator(
			record.Field("name").MaxLength(200).Build(),
			record.Field("credit_limit").Decimal().MinValue(decimal.Zero).Build(),
			record.Field("status").Custom(statusValue).Build(),
		),
	}
}

func (a *CustomerAdapter) EntityType() syncdom.EntityType { return syncdom.EntityCustomers }

func (a *CustomerAdapter) Identifiers() syncdom.IdentifierSet {
	return syncdom.Identifiers(syncdom.EntityCustomers)
}

func (a *CustomerAdapter) Validate(rec record.Record) error {
	return a.validator.Validate(rec)
}

func (a *CustomerAdapter) FindMatches(ctx context.Context, repos Repositories, field, value string) ([]uuid.UUID, error) {
	customers, err := repos.Customers().FindByIdentifier(ctx, field, value)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}
	return ids, nil
}

func (a *CustomerAdapter) Create(ctx context.Context, repos Repositories, rec record.Record) (uuid.UUID, error) {
	customer, err := partner.NewCustomer(rec.String("name"))
	if err != nil {
		return uuid.Nil, err
	}
	if err := a.apply(customer, rec); err != nil {
		return uuid.Nil, err
	}
	if err := repos.Customers().Save(ctx, customer); err != nil {
		return uuid.Nil, err
	}
	return customer.ID, nil
}

func (a *CustomerAdapter) Update(ctx context.Context, repos Repositories, id uuid.UUID, rec record.Record) error {
	customer, err := repos.Customers().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Has("name") {
		if err := customer.Rename(rec.String("name")); err != nil {
			return err
		}
	}
	if err := a.apply(customer, rec); err != nil {
		return err
	}
	return repos.Customers().Save(ctx, customer)
}

// apply copies present record fields onto the customer. Absent fields are
// left alone; explicit nulls clear clearable fields; identifier setters
// ignore empty values so a stored identifier is never blanked.
func (a *CustomerAdapter) apply(customer *partner.Customer, rec record.Record) error {
	customer.SetErpID(rec.String("erp_id"))
	customer.SetCode(rec.String("code"))
	customer.SetCardNo(rec.String("card_no"))

	if rec.Has("phone") {
		if err := customer.SetPhone(rec.String("phone")); err != nil {
			return err
		}
	}
	if rec.Has("email") {
		if err := customer.SetEmail(rec.String("email")); err != nil {
			return err
		}
	}
	if rec.Has("address") {
		if err := customer.SetAddress(rec.String("address")); err != nil {
			return err
		}
	}
	if rec.Has("notes") {
		customer.SetNotes(rec.String("notes"))
	}
	if rec.Has("credit_limit") {
		limit := decimal.Zero
		if !rec.IsNull("credit_limit") {
			var err error
			if limit, err = rec.Decimal("credit_limit"); err != nil {
				return err
			}
		}
		if err := customer.SetCreditLimit(limit); err != nil {
			return err
		}
	}
	if rec.Has("status") && !rec.IsNull("status") {
		if rec.String("status") == string(partner.CustomerStatusActive) {
			customer.Activate()
		} else {
			customer.Deactivate()
		}
	}
	return nil
}

func (a *CustomerAdapter) Snapshot(ctx context.Context, repos Repositories, id uuid.UUID) (any, bool, error) {
	customer, err := repos.Customers().FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return customer, customer.IsActive(), nil
}

func (a *CustomerAdapter) Deactivate(ctx context.Context, repos Repositories, id uuid.UUID) error {
	customer, err := repos.Customers().FindByID(ctx, id)
	if err != nil {
		return err
	}
	customer.Deactivate()
	return repos.Customers().Save(ctx, customer)
}

// statusValue accepts the two lifecycle states pushed by the ERP
func statusValue(value string) error {
	if value != "active" && value != "inactive" {
		return errors.New("must be active or inactive")
	}
	return nil
}
