package record

import (
	"fmt"
	"regexp"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeDecimal FieldType = "decimal"
	TypeBool    FieldType = "bool"
)

// FieldRule defines validation rules for one record field
type FieldRule struct {
	Name        string
	Type        FieldType
	Required    bool
	MaxLength   int
	MinValue    *decimal.Decimal
	Pattern     *regexp.Regexp
	PatternDesc string
	CustomFunc  func(value string) error
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(name string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Name: name, Type: TypeString}}
}

// Required marks the field as required; empty strings and nulls count as missing
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// String sets the field type to string
func (b *FieldRuleBuilder) String() *FieldRuleBuilder {
	b.rule.Type = TypeString
	return b
}

// Decimal sets the field type to decimal
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// Bool sets the field type to boolean
func (b *FieldRuleBuilder) Bool() *FieldRuleBuilder {
	b.rule.Type = TypeBool
	return b
}

// MaxLength sets the maximum string length
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// MinValue sets the minimum numeric value
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// Pattern sets a regex pattern for validation
func (b *FieldRuleBuilder) Pattern(pattern, description string) *FieldRuleBuilder {
	b.rule.Pattern = regexp.MustCompile(pattern)
	b.rule.PatternDesc = description
	return b
}

// Custom sets a custom validation function, invoked on present values only
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

// Build returns the built field rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// Validator validates a record against an ordered rule set. The first
// violated rule rejects the record; batch callers turn that into a failure
// ledger entry for this record only.
type Validator struct {
	rules []FieldRule
}

// NewValidator creates a validator from ordered rules
func NewValidator(rules ...FieldRule) *Validator {
	return &Validator{rules: rules}
}

// Validate checks the record against every rule, in rule order
func (v *Validator) Validate(rec Record) error {
	for _, rule := range v.rules {
		if err := v.validateField(rec, rule); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateField(rec Record, rule FieldRule) error {
	value := rec.String(rule.Name)

	if rule.Required && value == "" {
		return shared.NewValidationError(fmt.Sprintf("%s is required", rule.Name))
	}
	if value == "" {
		return nil
	}

	switch rule.Type {
	case TypeDecimal:
		d, err := rec.Decimal(rule.Name)
		if err != nil {
			return shared.NewValidationError(err.Error())
		}
		if rule.MinValue != nil && d.LessThan(*rule.MinValue) {
			return shared.NewValidationError(fmt.Sprintf("%s must be at least %s", rule.Name, rule.MinValue.String()))
		}
	case TypeBool:
		if _, err := rec.Bool(rule.Name); err != nil {
			return shared.NewValidationError(err.Error())
		}
	}

	if rule.MaxLength > 0 && len(value) > rule.MaxLength {
		return shared.NewValidationError(fmt.Sprintf("%s cannot exceed %d characters", rule.Name, rule.MaxLength))
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return shared.NewValidationError(fmt.Sprintf("%s must be %s", rule.Name, rule.PatternDesc))
	}
	if rule.CustomFunc != nil {
		if err := rule.CustomFunc(value); err != nil {
			return shared.NewValidationError(fmt.Sprintf("%s %s", rule.Name, err.Error()))
		}
	}
	return nil
}
