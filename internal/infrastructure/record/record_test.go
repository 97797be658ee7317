package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPresence(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme","phone":null}`), &rec))

	t.Run("present field", func(t *testing.T) {
		assert.True(t, rec.Has("name"))
		assert.False(t, rec.IsNull("name"))
	})

	t.Run("explicit null is present", func(t *testing.T) {
		assert.True(t, rec.Has("phone"))
		assert.True(t, rec.IsNull("phone"))
	})

	t.Run("absent field", func(t *testing.T) {
		assert.False(t, rec.Has("email"))
		assert.False(t, rec.IsNull("email"))
	})
}

func TestRecordString(t *testing.T) {
	rec := Record{
		"name":   "  Acme  ",
		"erp_id": float64(10023),
		"flag":   true,
		"empty":  nil,
	}

	t.Run("trims strings", func(t *testing.T) {
		assert.Equal(t, "Acme", rec.String("name"))
	})

	t.Run("formats JSON numbers without exponent", func(t *testing.T) {
		assert.Equal(t, "10023", rec.String("erp_id"))
	})

	t.Run("formats booleans", func(t *testing.T) {
		assert.Equal(t, "true", rec.String("flag"))
	})

	t.Run("null and absent yield empty", func(t *testing.T) {
		assert.Equal(t, "", rec.String("empty"))
		assert.Equal(t, "", rec.String("missing"))
	})
}

func TestRecordDecimal(t *testing.T) {
	rec := Record{
		"price":    float64(19.99),
		"quantity": "42.5",
		"bad":      "not-a-number",
	}

	t.Run("parses JSON number", func(t *testing.T) {
		d, err := rec.Decimal("price")
		require.NoError(t, err)
		assert.Equal(t, "19.99", d.String())
	})

	t.Run("parses numeric string", func(t *testing.T) {
		d, err := rec.Decimal("quantity")
		require.NoError(t, err)
		assert.Equal(t, "42.5", d.String())
	})

	t.Run("rejects non-numeric string", func(t *testing.T) {
		_, err := rec.Decimal("bad")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be a decimal number")
	})

	t.Run("rejects absent field", func(t *testing.T) {
		_, err := rec.Decimal("missing")
		assert.Error(t, err)
	})
}

func TestRecordBool(t *testing.T) {
	rec := Record{
		"a": true,
		"b": "yes",
		"c": "0",
		"d": float64(1),
		"e": "maybe",
	}

	for field, want := range map[string]bool{"a": true, "b": true, "c": false, "d": true} {
		got, err := rec.Bool(field)
		require.NoError(t, err, field)
		assert.Equal(t, want, got, field)
	}

	_, err := rec.Bool("e")
	assert.Error(t, err)
}

func TestRecordIdentifiers(t *testing.T) {
	rec := Record{
		"erp_id": "E-1",
		"code":   "",
		"phone":  nil,
		"name":   "Acme",
	}

	ids := rec.Identifiers([]string{"erp_id", "code", "card_no", "phone"})
	assert.Equal(t, map[string]string{"erp_id": "E-1"}, ids)
}
