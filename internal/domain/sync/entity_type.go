package sync

import "fmt"

// EntityType identifies one reconcilable entity family pushed by the ERP.
type EntityType string

const (
	EntityCustomers EntityType = "customers"
	EntityEmployees EntityType = "employees"
	EntityProducts  EntityType = "products"
	EntityInventory EntityType = "inventory"
	EntityPrices    EntityType = "prices"
)

// AllEntityTypes lists every supported entity type
var AllEntityTypes = []EntityType{
	EntityCustomers, EntityEmployees, EntityProducts, EntityInventory, EntityPrices,
}

// IsValid checks if the entity type is supported
func (t EntityType) IsValid() bool {
	switch t {
	case EntityCustomers, EntityEmployees, EntityProducts, EntityInventory, EntityPrices:
		return true
	}
	return false
}

// BranchPath returns the sub-path used when pushing this entity type to a
// branch endpoint.
func (t EntityType) BranchPath() string {
	return fmt.Sprintf("/api/v1/sync/%s", string(t))
}

// Direction distinguishes inbound imports from outbound exports.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// IsValid checks if the direction is supported
func (d Direction) IsValid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// IdentifierField names one alternate identifier and whether it is declared
// unique for its entity type.
type IdentifierField struct {
	Name   string
	Unique bool
}

// IdentifierSet is the ordered list of alternate identifiers for one entity
// type. Resolution consults fields in slice order and never mixes sets
// across types.
type IdentifierSet []IdentifierField

// Names returns the field names in precedence order
func (s IdentifierSet) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Contains reports whether the set declares the given field
func (s IdentifierSet) Contains(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

// identifierSets fixes the per-type precedence. The ERP row id always wins,
// followed by the human-readable business code, then natural keys, then a
// non-unique contact fallback where one exists.
var identifierSets = map[EntityType]IdentifierSet{
	EntityCustomers: {
		{Name: "erp_id", Unique: true},
		{Name: "code", Unique: true},
		{Name: "card_no", Unique: true},
		{Name: "phone", Unique: false},
	},
	EntityEmployees: {
		{Name: "erp_id", Unique: true},
		{Name: "code", Unique: true},
		{Name: "badge_no", Unique: true},
		{Name: "email", Unique: false},
	},
	EntityProducts: {
		{Name: "erp_id", Unique: true},
		{Name: "sku", Unique: true},
		{Name: "barcode", Unique: true},
	},
	EntityInventory: {
		{Name: "erp_id", Unique: true},
		{Name: "sku", Unique: true},
		{Name: "barcode", Unique: true},
	},
	EntityPrices: {
		{Name: "erp_id", Unique: true},
		{Name: "sku", Unique: true},
		{Name: "barcode", Unique: true},
	},
}

// Identifiers returns the fixed identifier precedence for an entity type.
func Identifiers(t EntityType) IdentifierSet {
	return identifierSets[t]
}
