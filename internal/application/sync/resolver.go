package syncapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
)

// Match is the resolver's verdict: the existing entity's internal id and the
// identifier field that located it.
type Match struct {
	ID    uuid.UUID
	Field string
}

// MatchFunc performs one equality lookup against a single alternate
// identifier column and returns every matching internal id.
type MatchFunc func(ctx context.Context, field, value string) ([]uuid.UUID, error)

// Resolver maps an incoming record to zero-or-one existing entity using the
// entity type's fixed identifier precedence.
type Resolver struct{}

// Resolve tries the identifier fields in precedence order. The first field
// present on the record that yields exactly one match wins and lookup stops,
// even if a later field would match a different entity. More than one match
// on a single field is a duplicate-identifier violation and surfaces as a
// RESOLUTION_CONFLICT, never a silent pick. A record carrying none of the
// identifier fields fails fast with a validation error.
func (Resolver) Resolve(ctx context.Context, set syncdom.IdentifierSet, rec record.Record, find MatchFunc) (*Match, error) {
	consulted := false
	for _, field := range set {
		value := rec.String(field.Name)
		if value == "" {
			continue
		}
		consulted = true

		matches, err := find(ctx, field.Name, value)
		if err != nil {
			return nil, fmt.Errorf("lookup by %s failed: %w", field.Name, err)
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return &Match{ID: matches[0], Field: field.Name}, nil
		default:
			return nil, shared.NewDomainError(shared.CodeResolutionConflict,
				fmt.Sprintf("identifier %s=%q matches %d entities", field.Name, value, len(matches)))
		}
	}

	if !consulted {
		return nil, shared.NewValidationError(
			fmt.Sprintf("at least one identifier is required (%s)", strings.Join(set.Names(), ", ")))
	}
	return nil, nil
}
