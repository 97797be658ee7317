package syncapp

import (
	"context"
	"errors"
	"testing"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookup struct {
	field string
	value string
}

// tableMatchFunc returns a MatchFunc backed by a fixed result table and
// records every lookup it serves.
func tableMatchFunc(results map[lookup][]uuid.UUID, trace *[]lookup) MatchFunc {
	return func(ctx context.Context, field, value string) ([]uuid.UUID, error) {
		key := lookup{field, value}
		if trace != nil {
			*trace = append(*trace, key)
		}
		return results[key], nil
	}
}

func TestResolverShortCircuitsOnFirstMatch(t *testing.T) {
	set := syncdom.Identifiers(syncdom.EntityCustomers)
	byErp := uuid.New()
	byCode := uuid.New()
	var trace []lookup

	find := tableMatchFunc(map[lookup][]uuid.UUID{
		{"erp_id", "E-1"}: {byErp},
		{"code", "C-1"}:   {byCode},
	}, &trace)

	match, err := Resolver{}.Resolve(context.Background(), set, record.Record{
		"erp_id": "E-1",
		"code":   "C-1",
	}, find)

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, byErp, match.ID)
	assert.Equal(t, "erp_id", match.Field)
	// code was never consulted once erp_id matched
	assert.Equal(t, []lookup{{"erp_id", "E-1"}}, trace)
}

func TestResolverFallsThroughAbsentAndUnmatchedFields(t *testing.T) {
	set := syncdom.Identifiers(syncdom.EntityCustomers)
	byPhone := uuid.New()
	var trace []lookup

	find := tableMatchFunc(map[lookup][]uuid.UUID{
		{"phone", "138"}: {byPhone},
	}, &trace)

	match, err := Resolver{}.Resolve(context.Background(), set, record.Record{
		"code":  "C-9",
		"phone": "138",
	}, find)

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, byPhone, match.ID)
	assert.Equal(t, "phone", match.Field)
	// erp_id and card_no were absent, code matched nothing
	assert.Equal(t, []lookup{{"code", "C-9"}, {"phone", "138"}}, trace)
}

func TestResolverNoMatchMeansCreate(t *testing.T) {
	set := syncdom.Identifiers(syncdom.EntityProducts)
	find := tableMatchFunc(nil, nil)

	match, err := Resolver{}.Resolve(context.Background(), set, record.Record{"sku": "SKU-1"}, find)

	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestResolverDuplicateMatchesConflict(t *testing.T) {
	set := syncdom.Identifiers(syncdom.EntityCustomers)
	find := tableMatchFunc(map[lookup][]uuid.UUID{
		{"phone", "138"}: {uuid.New(), uuid.New()},
	}, nil)

	match, err := Resolver{}.Resolve(context.Background(), set, record.Record{"phone": "138"}, find)

	require.Error(t, err)
	assert.Nil(t, match)
	assert.True(t, shared.HasCode(err, shared.CodeResolutionConflict))
	assert.Contains(t, err.Error(), `phone="138"`)
}

func TestResolverRequiresAnIdentifier(t *testing.T) {
	set := syncdom.Identifiers(syncdom.EntityCustomers)
	find := tableMatchFunc(nil, nil)

	t.Run("no identifier fields present", func(t *testing.T) {
		_, err := Resolver{}.Resolve(context.Background(), set, record.Record{"name": "Acme"}, find)
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "erp_id, code, card_no, phone")
	})

	t.Run("empty identifier values count as absent", func(t *testing.T) {
		_, err := Resolver{}.Resolve(context.Background(), set, record.Record{"erp_id": "", "code": nil}, find)
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestResolverWrapsLookupErrors(t *testing.T) {
	set := syncdom.Identifiers(syncdom.EntityProducts)
	boom := errors.New("connection reset")
	find := func(ctx context.Context, field, value string) ([]uuid.UUID, error) {
		return nil, boom
	}

	_, err := Resolver{}.Resolve(context.Background(), set, record.Record{"sku": "SKU-1"}, find)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "lookup by sku failed")
}
