package record

import (
	"errors"
	"testing"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorRequired(t *testing.T) {
	v := NewValidator(Field("name").Required().Build())

	t.Run("rejects absent field", func(t *testing.T) {
		err := v.Validate(Record{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("rejects explicit null", func(t *testing.T) {
		err := v.Validate(Record{"name": nil})
		assert.Error(t, err)
	})

	t.Run("rejects whitespace-only value", func(t *testing.T) {
		err := v.Validate(Record{"name": "   "})
		assert.Error(t, err)
	})

	t.Run("accepts present value", func(t *testing.T) {
		assert.NoError(t, v.Validate(Record{"name": "Acme"}))
	})
}

func TestValidatorOptionalFieldsSkipWhenAbsent(t *testing.T) {
	v := NewValidator(
		Field("credit_limit").Decimal().MinValue(decimal.Zero).Build(),
		Field("email").MaxLength(10).Build(),
	)

	assert.NoError(t, v.Validate(Record{}))
}

func TestValidatorDecimal(t *testing.T) {
	v := NewValidator(Field("credit_limit").Decimal().MinValue(decimal.Zero).Build())

	t.Run("rejects non-numeric", func(t *testing.T) {
		err := v.Validate(Record{"credit_limit": "lots"})
		assert.Error(t, err)
	})

	t.Run("rejects below minimum", func(t *testing.T) {
		err := v.Validate(Record{"credit_limit": float64(-5)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 0")
	})

	t.Run("accepts zero", func(t *testing.T) {
		assert.NoError(t, v.Validate(Record{"credit_limit": float64(0)}))
	})
}

func TestValidatorMaxLengthAndPattern(t *testing.T) {
	v := NewValidator(
		Field("code").MaxLength(5).Build(),
		Field("sku").Pattern(`^[A-Z0-9-]+$`, "uppercase letters, digits, and dashes").Build(),
	)

	assert.Error(t, v.Validate(Record{"code": "TOOLONG"}))
	assert.Error(t, v.Validate(Record{"sku": "lower case"}))
	assert.NoError(t, v.Validate(Record{"code": "C1", "sku": "SKU-1"}))
}

func TestValidatorCustomFunc(t *testing.T) {
	v := NewValidator(Field("status").Custom(func(value string) error {
		if value != "active" && value != "inactive" {
			return errors.New("must be active or inactive")
		}
		return nil
	}).Build())

	err := v.Validate(Record{"status": "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status must be active or inactive")
	assert.NoError(t, v.Validate(Record{"status": "inactive"}))
}

func TestValidatorErrorsAreDomainValidationErrors(t *testing.T) {
	v := NewValidator(Field("name").Required().Build())

	err := v.Validate(Record{})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
}

func TestValidatorFirstViolationWins(t *testing.T) {
	v := NewValidator(
		Field("name").Required().Build(),
		Field("code").Required().Build(),
	)

	err := v.Validate(Record{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
