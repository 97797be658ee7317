package workforce

import (
	"regexp"
	"strings"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
)

// EmployeeStatus represents the lifecycle state of an employee
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee is a chain staff member reconciled against ERP pushes.
type Employee struct {
	shared.BaseAggregateRoot
	ErpID      *string        `gorm:"type:varchar(64);uniqueIndex" json:"erp_id,omitempty"`
	Code       *string        `gorm:"type:varchar(50);uniqueIndex" json:"code,omitempty"`
	BadgeNo    *string        `gorm:"type:varchar(50);uniqueIndex" json:"badge_no,omitempty"`
	Email      string         `gorm:"type:varchar(200);index" json:"email,omitempty"`
	Phone      string         `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Name       string         `gorm:"type:varchar(200);not null" json:"name"`
	Department string         `gorm:"type:varchar(100)" json:"department,omitempty"`
	Position   string         `gorm:"type:varchar(100)" json:"position,omitempty"`
	Status     EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates an active employee
func NewEmployee(name string) (*Employee, error) {
	if err := validateEmployeeName(name); err != nil {
		return nil, err
	}
	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            EmployeeStatusActive,
	}, nil
}

// SetErpID replaces the ERP row id when non-empty
func (e *Employee) SetErpID(erpID string) {
	if erpID != "" {
		v := erpID
		e.ErpID = &v
		e.touch()
	}
}

// SetCode replaces the business code when non-empty
func (e *Employee) SetCode(code string) {
	if code != "" {
		v := strings.ToUpper(code)
		e.Code = &v
		e.touch()
	}
}

// SetBadgeNo replaces the badge number when non-empty
func (e *Employee) SetBadgeNo(badgeNo string) {
	if badgeNo != "" {
		v := badgeNo
		e.BadgeNo = &v
		e.touch()
	}
}

// Rename changes the employee name
func (e *Employee) Rename(name string) error {
	if err := validateEmployeeName(name); err != nil {
		return err
	}
	e.Name = name
	e.touch()
	return nil
}

// SetEmail sets or clears the email address
func (e *Employee) SetEmail(email string) error {
	if email != "" && !employeeEmailPattern.MatchString(email) {
		return shared.NewValidationError("invalid email format")
	}
	e.Email = email
	e.touch()
	return nil
}

// SetPhone sets or clears the phone number
func (e *Employee) SetPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("phone cannot exceed 50 characters")
	}
	e.Phone = phone
	e.touch()
	return nil
}

// SetDepartment sets or clears the department
func (e *Employee) SetDepartment(department string) {
	e.Department = department
	e.touch()
}

// SetPosition sets or clears the position title
func (e *Employee) SetPosition(position string) {
	e.Position = position
	e.touch()
}

// Activate marks the employee as active
func (e *Employee) Activate() {
	e.Status = EmployeeStatusActive
	e.touch()
}

// Deactivate marks the employee as inactive
func (e *Employee) Deactivate() {
	e.Status = EmployeeStatusInactive
	e.touch()
}

// IsActive reports whether the employee is in the distributable state
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// IdentifierValues echoes the stored alternate identifiers for the ledger
func (e *Employee) IdentifierValues() map[string]string {
	ids := make(map[string]string)
	if e.ErpID != nil {
		ids["erp_id"] = *e.ErpID
	}
	if e.Code != nil {
		ids["code"] = *e.Code
	}
	if e.BadgeNo != nil {
		ids["badge_no"] = *e.BadgeNo
	}
	if e.Email != "" {
		ids["email"] = e.Email
	}
	return ids
}

func (e *Employee) touch() {
	e.UpdatedAt = time.Now()
}

var employeeEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmployeeName(name string) error {
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name cannot exceed 200 characters")
	}
	return nil
}
