package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTypeIsValid(t *testing.T) {
	for _, entityType := range AllEntityTypes {
		assert.True(t, entityType.IsValid(), string(entityType))
	}
	assert.False(t, EntityType("orders").IsValid())
	assert.False(t, EntityType("").IsValid())
}

func TestIdentifierPrecedence(t *testing.T) {
	t.Run("customers resolve by erp_id, code, card_no, then phone", func(t *testing.T) {
		set := Identifiers(EntityCustomers)
		assert.Equal(t, []string{"erp_id", "code", "card_no", "phone"}, set.Names())
	})

	t.Run("employees resolve by erp_id, code, badge_no, then email", func(t *testing.T) {
		set := Identifiers(EntityEmployees)
		assert.Equal(t, []string{"erp_id", "code", "badge_no", "email"}, set.Names())
	})

	t.Run("product-shaped types resolve by erp_id, sku, then barcode", func(t *testing.T) {
		for _, entityType := range []EntityType{EntityProducts, EntityInventory, EntityPrices} {
			set := Identifiers(entityType)
			assert.Equal(t, []string{"erp_id", "sku", "barcode"}, set.Names(), string(entityType))
		}
	})

	t.Run("contact fallbacks are declared non-unique", func(t *testing.T) {
		customers := Identifiers(EntityCustomers)
		require.Len(t, customers, 4)
		assert.True(t, customers[0].Unique)
		assert.False(t, customers[3].Unique)

		employees := Identifiers(EntityEmployees)
		require.Len(t, employees, 4)
		assert.False(t, employees[3].Unique)
	})
}

func TestIdentifierSetContains(t *testing.T) {
	set := Identifiers(EntityProducts)
	assert.True(t, set.Contains("sku"))
	assert.False(t, set.Contains("phone"))
}

func TestBranchPath(t *testing.T) {
	assert.Equal(t, "/api/v1/sync/customers", EntityCustomers.BranchPath())
	assert.Equal(t, "/api/v1/sync/prices", EntityPrices.BranchPath())
}

func TestDirectionIsValid(t *testing.T) {
	assert.True(t, DirectionInbound.IsValid())
	assert.True(t, DirectionOutbound.IsValid())
	assert.False(t, Direction("sideways").IsValid())
}
