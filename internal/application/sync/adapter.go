package syncapp

import (
	"context"
	"fmt"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
)

// EntityAdapter binds one entity type into the engine. The engine is the
// same for every type; the adapter contributes validation rules, identifier
// lookups, and the create/update executors with field-level coalesce.
type EntityAdapter interface {
	EntityType() syncdom.EntityType

	// Identifiers returns the type's fixed identifier precedence.
	Identifiers() syncdom.IdentifierSet

	// Validate rejects a malformed record before resolution is attempted.
	Validate(rec record.Record) error

	// FindMatches performs one equality lookup for the resolver.
	FindMatches(ctx context.Context, repos Repositories, field, value string) ([]uuid.UUID, error)

	// Create inserts a new entity from all provided fields, applying
	// type-specific defaults, and returns the minted internal id.
	Create(ctx context.Context, repos Repositories, rec record.Record) (uuid.UUID, error)

	// Update applies the record onto an existing entity with field-level
	// coalesce: absent fields keep the stored value, present fields
	// overwrite, stored identifiers are only replaced by non-empty values.
	Update(ctx context.Context, repos Repositories, id uuid.UUID, rec record.Record) error

	// Snapshot loads the entity's distributable representation and whether
	// its lifecycle state allows distribution.
	Snapshot(ctx context.Context, repos Repositories, id uuid.UUID) (payload any, distributable bool, err error)

	// Deactivate moves the entity out of the distributable state.
	Deactivate(ctx context.Context, repos Repositories, id uuid.UUID) error
}

// Registry holds the adapter for each supported entity type.
type Registry struct {
	adapters map[syncdom.EntityType]EntityAdapter
}

// NewRegistry builds a registry from the given adapters
func NewRegistry(adapters ...EntityAdapter) *Registry {
	m := make(map[syncdom.EntityType]EntityAdapter, len(adapters))
	for _, a := range adapters {
		m[a.EntityType()] = a
	}
	return &Registry{adapters: m}
}

// Get returns the adapter for an entity type
func (r *Registry) Get(t syncdom.EntityType) (EntityAdapter, error) {
	a, ok := r.adapters[t]
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("unsupported entity type: %s", t))
	}
	return a, nil
}
