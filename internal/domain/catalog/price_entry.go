package catalog

import (
	"strings"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceStatus represents the lifecycle state of a price entry
type PriceStatus string

const (
	PriceStatusActive   PriceStatus = "active"
	PriceStatusInactive PriceStatus = "inactive"
)

// PriceEntry is the sell price pushed by the ERP for one product. It carries
// the product identifiers denormalized so a price batch can be reconciled
// without first resolving the product row.
type PriceEntry struct {
	shared.BaseAggregateRoot
	ErpID    *string         `gorm:"type:varchar(64);uniqueIndex" json:"erp_id,omitempty"`
	SKU      *string         `gorm:"type:varchar(64);uniqueIndex" json:"sku,omitempty"`
	Barcode  *string         `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	Currency string          `gorm:"type:varchar(8);not null;default:'CNY'" json:"currency"`
	Status   PriceStatus     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

// TableName returns the table name for GORM
func (PriceEntry) TableName() string {
	return "price_entries"
}

// NewPriceEntry creates an active price entry
func NewPriceEntry(price decimal.Decimal) (*PriceEntry, error) {
	if price.IsNegative() {
		return nil, shared.NewValidationError("price cannot be negative")
	}
	return &PriceEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Price:             price,
		Currency:          "CNY",
		Status:            PriceStatusActive,
	}, nil
}

// SetErpID replaces the ERP row id when non-empty
func (p *PriceEntry) SetErpID(erpID string) {
	if erpID != "" {
		v := erpID
		p.ErpID = &v
		p.touch()
	}
}

// SetSKU replaces the SKU when non-empty, normalized to uppercase
func (p *PriceEntry) SetSKU(sku string) {
	if sku != "" {
		v := strings.ToUpper(sku)
		p.SKU = &v
		p.touch()
	}
}

// SetBarcode replaces the barcode when non-empty
func (p *PriceEntry) SetBarcode(barcode string) {
	if barcode != "" {
		v := barcode
		p.Barcode = &v
		p.touch()
	}
}

// SetPrice replaces the price
func (p *PriceEntry) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("price cannot be negative")
	}
	p.Price = price
	p.touch()
	return nil
}

// SetCurrency replaces the currency code when non-empty
func (p *PriceEntry) SetCurrency(currency string) error {
	if currency == "" {
		return nil
	}
	if len(currency) != 3 {
		return shared.NewValidationError("currency must be a 3-letter code")
	}
	p.Currency = strings.ToUpper(currency)
	p.touch()
	return nil
}

// Activate marks the price entry as active
func (p *PriceEntry) Activate() {
	p.Status = PriceStatusActive
	p.touch()
}

// Deactivate marks the price entry as inactive
func (p *PriceEntry) Deactivate() {
	p.Status = PriceStatusInactive
	p.touch()
}

// IsActive reports whether the price entry is in the distributable state
func (p *PriceEntry) IsActive() bool {
	return p.Status == PriceStatusActive
}

// IdentifierValues echoes the stored alternate identifiers for the ledger
func (p *PriceEntry) IdentifierValues() map[string]string {
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

func (p *PriceEntry) touch() {
	p.UpdatedAt = time.Now()
}
