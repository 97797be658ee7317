package sync

import "github.com/google/uuid"

// RecordAction describes what the upsert executor did with a record.
type RecordAction string

const (
	ActionCreated RecordAction = "created"
	ActionUpdated RecordAction = "updated"
)

// DistributionOutcome captures one push attempt against one branch endpoint.
// It is secondary to the record's own success flag: a failed push never
// reverses a committed upsert.
type DistributionOutcome struct {
	Branch    string `json:"branch"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// RecordResult is one ledger entry. Entries are appended during the batch
// loop and never mutated afterwards, except for the distribution outcomes
// attached after commit.
type RecordResult struct {
	Index        int                   `json:"index"`
	Identifiers  map[string]string     `json:"identifiers,omitempty"`
	Success      bool                  `json:"success"`
	Action       RecordAction          `json:"action,omitempty"`
	EntityID     *uuid.UUID            `json:"entity_id,omitempty"`
	ErrorCode    string                `json:"error_code,omitempty"`
	Error        string                `json:"error,omitempty"`
	Distribution []DistributionOutcome `json:"distribution,omitempty"`
}

// BatchResult is the ledger returned to the caller of a batch operation.
type BatchResult struct {
	Results  []RecordResult `json:"results"`
	Imported int            `json:"imported"`
	Failed   int            `json:"failed"`
}

// NewBatchResult creates an empty ledger sized for n records
func NewBatchResult(n int) *BatchResult {
	return &BatchResult{Results: make([]RecordResult, 0, n)}
}

// AppendSuccess records a successful upsert for the record at index
func (b *BatchResult) AppendSuccess(index int, ids map[string]string, action RecordAction, entityID uuid.UUID) {
	b.Results = append(b.Results, RecordResult{
		Index:       index,
		Identifiers: ids,
		Success:     true,
		Action:      action,
		EntityID:    &entityID,
	})
	b.Imported++
}

// AppendFailure records a per-record failure without aborting the batch
func (b *BatchResult) AppendFailure(index int, ids map[string]string, code, message string) {
	b.Results = append(b.Results, RecordResult{
		Index:       index,
		Identifiers: ids,
		Success:     false,
		ErrorCode:   code,
		Error:       message,
	})
	b.Failed++
}

// AllFailed reports whether every record in a non-empty batch failed.
// The orchestrator uses this to report the batch as a validation failure.
func (b *BatchResult) AllFailed() bool {
	return len(b.Results) > 0 && b.Imported == 0
}
