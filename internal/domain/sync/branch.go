package sync

import (
	"net/url"
	"strings"
	"time"

	"github.com/chainsync/backend/internal/domain/shared"
)

// BranchEndpoint is an independently operated branch server that receives
// confirmed entity state. Distribution against it is fire-and-observe.
type BranchEndpoint struct {
	shared.BaseAggregateRoot
	Code    string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name    string `gorm:"type:varchar(200);not null" json:"name"`
	BaseURL string `gorm:"type:varchar(500);not null" json:"base_url"`
	Token   string `gorm:"type:varchar(500);not null" json:"-"`
	Enabled bool   `gorm:"not null;default:true" json:"enabled"`
}

// TableName returns the table name for GORM
func (BranchEndpoint) TableName() string {
	return "branch_endpoints"
}

// NewBranchEndpoint creates a branch endpoint with validated address
func NewBranchEndpoint(code, name, baseURL, token string) (*BranchEndpoint, error) {
	if code == "" {
		return nil, shared.NewValidationError("branch code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("branch name cannot be empty")
	}
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, shared.NewValidationError("branch token cannot be empty")
	}

	return &BranchEndpoint{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		BaseURL:           strings.TrimRight(baseURL, "/"),
		Token:             token,
		Enabled:           true,
	}, nil
}

// Update replaces the mutable fields, keeping empty incoming values out
func (b *BranchEndpoint) Update(name, baseURL, token string) error {
	if name != "" {
		b.Name = name
	}
	if baseURL != "" {
		if err := validateBaseURL(baseURL); err != nil {
			return err
		}
		b.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if token != "" {
		b.Token = token
	}
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Enable marks the endpoint as a distribution target
func (b *BranchEndpoint) Enable() {
	b.Enabled = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Disable removes the endpoint from distribution without deleting it
func (b *BranchEndpoint) Disable() {
	b.Enabled = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return shared.NewValidationError("branch base URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewValidationError("branch base URL must be a valid http(s) address")
	}
	return nil
}
