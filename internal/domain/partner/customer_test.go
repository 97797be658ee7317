package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates active customer with zero balance", func(t *testing.T) {
		customer, err := NewCustomer("Acme Retail")

		require.NoError(t, err)
		assert.Equal(t, "Acme Retail", customer.Name)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.True(t, customer.CreditLimit.IsZero())
		assert.True(t, customer.Balance.IsZero())
		assert.Nil(t, customer.ErpID)
		assert.Nil(t, customer.Code)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		customer, err := NewCustomer("")
		assert.Error(t, err)
		assert.Nil(t, customer)
	})
}

func TestCustomerIdentifierSetters(t *testing.T) {
	customer, err := NewCustomer("Acme Retail")
	require.NoError(t, err)

	t.Run("code is normalized to uppercase", func(t *testing.T) {
		customer.SetCode("cust-001")
		require.NotNil(t, customer.Code)
		assert.Equal(t, "CUST-001", *customer.Code)
	})

	t.Run("empty values never blank a stored identifier", func(t *testing.T) {
		customer.SetErpID("E-77")
		customer.SetErpID("")
		require.NotNil(t, customer.ErpID)
		assert.Equal(t, "E-77", *customer.ErpID)

		customer.SetCode("")
		assert.Equal(t, "CUST-001", *customer.Code)
	})

	t.Run("card number is kept verbatim", func(t *testing.T) {
		customer.SetCardNo("card-55")
		require.NotNil(t, customer.CardNo)
		assert.Equal(t, "card-55", *customer.CardNo)
	})
}

func TestCustomerContactFields(t *testing.T) {
	customer, err := NewCustomer("Acme Retail")
	require.NoError(t, err)

	t.Run("valid phone", func(t *testing.T) {
		require.NoError(t, customer.SetPhone("+86 138-0000-0000"))
		assert.Equal(t, "+86 138-0000-0000", customer.Phone)
	})

	t.Run("invalid phone", func(t *testing.T) {
		assert.Error(t, customer.SetPhone("not a phone!"))
	})

	t.Run("phone can be cleared", func(t *testing.T) {
		require.NoError(t, customer.SetPhone(""))
		assert.Equal(t, "", customer.Phone)
	})

	t.Run("valid and invalid email", func(t *testing.T) {
		require.NoError(t, customer.SetEmail("ops@acme.example.com"))
		assert.Error(t, customer.SetEmail("nope"))
	})
}

func TestCustomerCreditLimit(t *testing.T) {
	customer, err := NewCustomer("Acme Retail")
	require.NoError(t, err)

	require.NoError(t, customer.SetCreditLimit(decimal.NewFromInt(5000)))
	assert.Equal(t, "5000", customer.CreditLimit.String())

	assert.Error(t, customer.SetCreditLimit(decimal.NewFromInt(-1)))
}

func TestCustomerLifecycle(t *testing.T) {
	customer, err := NewCustomer("Acme Retail")
	require.NoError(t, err)

	assert.True(t, customer.IsActive())
	customer.Deactivate()
	assert.False(t, customer.IsActive())
	customer.Activate()
	assert.True(t, customer.IsActive())
}

func TestCustomerIdentifierValues(t *testing.T) {
	customer, err := NewCustomer("Acme Retail")
	require.NoError(t, err)
	customer.SetErpID("E-1")
	customer.SetCode("C-1")
	require.NoError(t, customer.SetPhone("13800000000"))

	ids := customer.IdentifierValues()
	assert.Equal(t, map[string]string{
		"erp_id": "E-1",
		"code":   "C-1",
		"phone":  "13800000000",
	}, ids)
}
