// Package record holds the loosely-structured inbound record type and the
// field-rule validation applied to it before resolution.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one untyped record from an inbound batch, as decoded from JSON.
// Absence of a key and an explicit null are distinct states: an absent field
// leaves the stored value untouched on update, a null clears it where the
// domain allows.
type Record map[string]any

// Has reports whether the field is present, including explicit nulls
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// IsNull reports whether the field is present with an explicit null value
func (r Record) IsNull(field string) bool {
	v, ok := r[field]
	return ok && v == nil
}

// String returns the field coerced to a trimmed string. Absent and null
// fields return the empty string.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return decimal.NewFromFloat(t).String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// Decimal parses the field as a decimal value
func (r Record) Decimal(field string) (decimal.Decimal, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return decimal.Zero, fmt.Errorf("%s is not set", field)
	}
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s must be a decimal number", field)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	default:
		return decimal.Zero, fmt.Errorf("%s must be a decimal number", field)
	}
}

// Bool parses the field as a boolean, accepting the usual spellings
func (r Record) Bool(field string) (bool, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return false, fmt.Errorf("%s is not set", field)
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y":
			return true, nil
		case "false", "0", "no", "n":
			return false, nil
		}
	case float64:
		return t != 0, nil
	}
	return false, fmt.Errorf("%s must be a boolean", field)
}

// Identifiers extracts the present, non-empty values of the named fields,
// in the order given. Used to echo identifiers back on ledger entries and
// to feed the resolver.
func (r Record) Identifiers(names []string) map[string]string {
	ids := make(map[string]string)
	for _, name := range names {
		if v := r.String(name); v != "" {
			ids[name] = v
		}
	}
	return ids
}
