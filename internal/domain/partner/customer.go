package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the lifecycle state of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is a chain customer reconciled against ERP pushes. The alternate
// identifiers (ERP id, business code, loyalty card number) are nullable so
// the unique indexes only bind rows that actually carry them.
type Customer struct {
	shared.BaseAggregateRoot
	ErpID       *string         `gorm:"type:varchar(64);uniqueIndex" json:"erp_id,omitempty"`
	Code        *string         `gorm:"type:varchar(50);uniqueIndex" json:"code,omitempty"`
	CardNo      *string         `gorm:"type:varchar(50);uniqueIndex" json:"card_no,omitempty"`
	Phone       string          `gorm:"type:varchar(50);index" json:"phone,omitempty"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Email       string          `gorm:"type:varchar(200)" json:"email,omitempty"`
	Address     string          `gorm:"type:text" json:"address,omitempty"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"credit_limit"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"balance"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	Status      CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates an active customer with zero starting balance
func NewCustomer(name string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CreditLimit:       decimal.Zero,
		Balance:           decimal.Zero,
		Status:            CustomerStatusActive,
	}, nil
}

// SetErpID replaces the ERP row id; empty incoming values never blank a
// stored identifier.
func (c *Customer) SetErpID(erpID string) {
	if erpID != "" {
		v := erpID
		c.ErpID = &v
		c.touch()
	}
}

// SetCode replaces the business code, normalized to uppercase
func (c *Customer) SetCode(code string) {
	if code != "" {
		v := strings.ToUpper(code)
		c.Code = &v
		c.touch()
	}
}

// SetCardNo replaces the loyalty card number
func (c *Customer) SetCardNo(cardNo string) {
	if cardNo != "" {
		v := cardNo
		c.CardNo = &v
		c.touch()
	}
}

// Rename changes the customer name
func (c *Customer) Rename(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	c.Name = name
	c.touch()
	return nil
}

// SetPhone sets or clears the phone number
func (c *Customer) SetPhone(phone string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	c.Phone = phone
	c.touch()
	return nil
}

// SetEmail sets or clears the email address
func (c *Customer) SetEmail(email string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	c.Email = email
	c.touch()
	return nil
}

// SetAddress sets or clears the address
func (c *Customer) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewValidationError("address cannot exceed 500 characters")
	}
	c.Address = address
	c.touch()
	return nil
}

// SetCreditLimit replaces the credit limit
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewValidationError("credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.touch()
	return nil
}

// SetNotes sets or clears the free-form notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.touch()
}

// Activate marks the customer as active
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.touch()
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.touch()
}

// IsActive reports whether the customer is in the distributable state
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// IdentifierValues echoes the stored alternate identifiers for the ledger
func (c *Customer) IdentifierValues() map[string]string {
	ids := make(map[string]string)
	if c.ErpID != nil {
		ids["erp_id"] = *c.ErpID
	}
	if c.Code != nil {
		ids["code"] = *c.Code
	}
	if c.CardNo != nil {
		ids["card_no"] = *c.CardNo
	}
	if c.Phone != "" {
		ids["phone"] = c.Phone
	}
	return ids
}

func (c *Customer) touch() {
	c.UpdatedAt = time.Now()
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name cannot exceed 200 characters")
	}
	return nil
}

var phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("phone cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewValidationError("invalid phone number format")
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewValidationError("invalid email format")
	}
	return nil
}
