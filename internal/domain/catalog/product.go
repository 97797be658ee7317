package catalog

import (
	"strings"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
)

// ProductStatus represents the lifecycle state of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is a catalog item reconciled against ERP pushes. SKU and barcode
// are the natural keys the branches and the ERP share.
type Product struct {
	shared.BaseAggregateRoot
	ErpID       *string       `gorm:"type:varchar(64);uniqueIndex" json:"erp_id,omitempty"`
	SKU         *string       `gorm:"type:varchar(64);uniqueIndex" json:"sku,omitempty"`
	Barcode     *string       `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Unit        string        `gorm:"type:varchar(20)" json:"unit,omitempty"`
	Category    string        `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Status      ProductStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active product
func NewProduct(name string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              "pcs",
		Status:            ProductStatusActive,
	}, nil
}

// SetErpID replaces the ERP row id when non-empty
func (p *Product) SetErpID(erpID string) {
	if erpID != "" {
		v := erpID
		p.ErpID = &v
		p.touch()
	}
}

// SetSKU replaces the SKU when non-empty, normalized to uppercase
func (p *Product) SetSKU(sku string) {
	if sku != "" {
		v := strings.ToUpper(sku)
		p.SKU = &v
		p.touch()
	}
}

// SetBarcode replaces the barcode when non-empty
func (p *Product) SetBarcode(barcode string) {
	if barcode != "" {
		v := barcode
		p.Barcode = &v
		p.touch()
	}
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.touch()
	return nil
}

// SetDescription sets or clears the description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.touch()
}

// SetUnit sets the measurement unit
func (p *Product) SetUnit(unit string) error {
	if len(unit) > 20 {
		return shared.NewValidationError("unit cannot exceed 20 characters")
	}
	if unit != "" {
		p.Unit = unit
		p.touch()
	}
	return nil
}

// SetCategory sets or clears the category
func (p *Product) SetCategory(category string) {
	p.Category = category
	p.touch()
}

// Activate marks the product as active
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.touch()
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.touch()
}

// IsActive reports whether the product is in the distributable state
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IdentifierValues echoes the stored alternate identifiers for the ledger
func (p *Product) IdentifierValues() map[string]string {
	ids := make(map[string]string)
	if p.ErpID != nil {
		ids["erp_id"] = *p.ErpID
	}
	if p.SKU != nil {
		ids["sku"] = *p.SKU
	}
	if p.Barcode != nil {
		ids["barcode"] = *p.Barcode
	}
	return ids
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name cannot exceed 200 characters")
	}
	return nil
}
