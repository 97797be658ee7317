package inventory

import (
	"strings"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockStatus represents the lifecycle state of a stock level row
type StockStatus string

const (
	StockStatusActive   StockStatus = "active"
	StockStatusInactive StockStatus = "inactive"
)

// StockLevel is the chain-central on-hand quantity for one product, pushed
// by the ERP after stocktakes and goods movements. Product identifiers are
// denormalized onto the row so inventory batches resolve on their own.
type StockLevel struct {
	shared.BaseAggregateRoot
	ErpID         *string         `gorm:"type:varchar(64);uniqueIndex" json:"erp_id,omitempty"`
	SKU           *string         `gorm:"type:varchar(64);uniqueIndex" json:"sku,omitempty"`
	Barcode       *string         `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	WarehouseCode string          `gorm:"type:varchar(50);index" json:"warehouse_code,omitempty"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`
	ReorderPoint  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"reorder_point"`
	Status        StockStatus     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates an active stock row with the given on-hand quantity
func NewStockLevel(quantity decimal.Decimal) (*StockLevel, error) {
	if quantity.IsNegative() {
		return nil, shared.NewValidationError("quantity cannot be negative")
	}
	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Quantity:          quantity,
		ReorderPoint:      decimal.Zero,
		Status:            StockStatusActive,
	}, nil
}

// SetErpID replaces the ERP row id when non-empty
func (s *StockLevel) SetErpID(erpID string) {
	if erpID != "" {
		v := erpID
		s.ErpID = &v
		s.touch()
	}
}

// SetSKU replaces the SKU when non-empty, normalized to uppercase
func (s *StockLevel) SetSKU(sku string) {
	if sku != "" {
		v := strings.ToUpper(sku)
		s.SKU = &v
		s.touch()
	}
}

// SetBarcode replaces the barcode when non-empty
func (s *StockLevel) SetBarcode(barcode string) {
	if barcode != "" {
		v := barcode
		s.Barcode = &v
		s.touch()
	}
}

// SetWarehouseCode sets or clears the warehouse code
func (s *StockLevel) SetWarehouseCode(code string) {
	s.WarehouseCode = strings.ToUpper(code)
	s.touch()
}

// SetQuantity replaces the on-hand quantity
func (s *StockLevel) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewValidationError("quantity cannot be negative")
	}
	s.Quantity = quantity
	s.touch()
	return nil
}

// SetReorderPoint replaces the reorder threshold
func (s *StockLevel) SetReorderPoint(point decimal.Decimal) error {
	if point.IsNegative() {
		return shared.NewValidationError("reorder point cannot be negative")
	}
	s.ReorderPoint = point
	s.touch()
	return nil
}

// Activate marks the stock row as active
func (s *StockLevel) Activate() {
	s.Status = StockStatusActive
	s.touch()
}

// Deactivate marks the stock row as inactive
func (s *StockLevel) Deactivate() {
	s.Status = StockStatusInactive
	s.touch()
}

// IsActive reports whether the stock row is in the distributable state
func (s *StockLevel) IsActive() bool {
	return s.Status == StockStatusActive
}

// NeedsReorder reports whether on-hand quantity fell to the reorder point
func (s *StockLevel) NeedsReorder() bool {
	return s.ReorderPoint.IsPositive() && s.Quantity.LessThanOrEqual(s.ReorderPoint)
}

// IdentifierValues echoes the stored alternate identifiers for the ledger
func (s *StockLevel) IdentifierValues() map[string]string {
	ids := make(map[string]string)
	if s.ErpID != nil {
		ids["erp_id"] = *s.ErpID
	}
	if s.SKU != nil {
		ids["sku"] = *s.SKU
	}
	if s.Barcode != nil {
		ids["barcode"] = *s.Barcode
	}
	return ids
}

func (s *StockLevel) touch() {
	s.UpdatedAt = time.Now()
}
