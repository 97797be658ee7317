package syncapp

import (
	"context"

	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/domain/workforce"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
)

// EmployeeAdapter binds the employees entity type into the engine.
type EmployeeAdapter struct {
	validator *record.Validator
}

// NewEmployeeAdapter creates the employees adapter
func NewEmployeeAdapter() *EmployeeAdapter {
	return &EmployeeAdapter{
		validator: record.NewValidator(
			record.Field("name").MaxLength(200).Build(),
			record.Field("department").MaxLength(100).Build(),
			record.Field("position").MaxLength(100).Build(),
			record.Field("status").Custom(statusValue).Build(),
		),
	}
}

func (a *EmployeeAdapter) EntityType() syncdom.EntityType { return syncdom.EntityEmployees }

func (a *EmployeeAdapter) Identifiers() syncdom.IdentifierSet {
	return syncdom.Identifiers(syncdom.EntityEmployees)
}

func (a *EmployeeAdapter) Validate(rec record.Record) error {
	return a.validator.Validate(rec)
}

func (a *EmployeeAdapter) FindMatches(ctx context.Context, repos Repositories, field, value string) ([]uuid.UUID, error) {
	employees, err := repos.Employees().FindByIdentifier(ctx, field, value)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	return ids, nil
}

func (a *EmployeeAdapter) Create(ctx context.Context, repos Repositories, rec record.Record) (uuid.UUID, error) {
	employee, err := workforce.NewEmployee(rec.String("name"))
	if err != nil {
		return uuid.Nil, err
	}
	if err := a.apply(employee, rec); err != nil {
		return uuid.Nil, err
	}
	if err := repos.Employees().Save(ctx, employee); err != nil {
		return uuid.Nil, err
	}
	return employee.ID, nil
}

func (a *EmployeeAdapter) Update(ctx context.Context, repos Repositories, id uuid.UUID, rec record.Record) error {
	employee, err := repos.Employees().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Has("name") {
		if err := employee.Rename(rec.String("name")); err != nil {
			return err
		}
	}
	if err := a.apply(employee, rec); err != nil {
		return err
	}
	return repos.Employees().Save(ctx, employee)
}

func (a *EmployeeAdapter) apply(employee *workforce.Employee, rec record.Record) error {
	employee.SetErpID(rec.String("erp_id"))
	employee.SetCode(rec.String("code"))
	employee.SetBadgeNo(rec.String("badge_no"))

	if rec.Has("email") {
		if err := employee.SetEmail(rec.String("email")); err != nil {
			return err
		}
	}
	if rec.Has("phone") {
		if err := employee.SetPhone(rec.String("phone")); err != nil {
			return err
		}
	}
	if rec.Has("department") {
		employee.SetDepartment(rec.String("department"))
	}
	if rec.Has("position") {
		employee.SetPosition(rec.String("position"))
	}
	if rec.Has("status") && !rec.IsNull("status") {
		if rec.String("status") == string(workforce.EmployeeStatusActive) {
			employee.Activate()
		} else {
			employee.Deactivate()
		}
	}
	return nil
}

func (a *EmployeeAdapter) Snapshot(ctx context.Context, repos Repositories, id uuid.UUID) (any, bool, error) {
	employee, err := repos.Employees().FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return employee, employee.IsActive(), nil
}

func (a *EmployeeAdapter) Deactivate(ctx context.Context, repos Repositories, id uuid.UUID) error {
	employee, err := repos.Employees().FindByID(ctx, id)
	if err != nil {
		return err
	}
	employee.Deactivate()
	return repos.Employees().Save(ctx, employee)
}
