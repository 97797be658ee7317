package sync

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBatchResultCounters(t *testing.T) {
	result := NewBatchResult(3)
	id := uuid.New()

	result.AppendSuccess(0, map[string]string{"erp_id": "E-1"}, ActionCreated, id)
	result.AppendFailure(1, map[string]string{"erp_id": "E-2"}, "VALIDATION_ERROR", "name is required")
	result.AppendSuccess(2, nil, ActionUpdated, id)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Results, 3)

	assert.True(t, result.Results[0].Success)
	assert.Equal(t, ActionCreated, result.Results[0].Action)
	assert.Equal(t, &id, result.Results[0].EntityID)

	assert.False(t, result.Results[1].Success)
	assert.Equal(t, "VALIDATION_ERROR", result.Results[1].ErrorCode)
	assert.Nil(t, result.Results[1].EntityID)
}

func TestBatchResultAllFailed(t *testing.T) {
	t.Run("empty ledger is not all-failed", func(t *testing.T) {
		assert.False(t, NewBatchResult(0).AllFailed())
	})

	t.Run("only failures", func(t *testing.T) {
		result := NewBatchResult(2)
		result.AppendFailure(0, nil, "VALIDATION_ERROR", "bad")
		result.AppendFailure(1, nil, "RESOLUTION_CONFLICT", "dup")
		assert.True(t, result.AllFailed())
	})

	t.Run("one success clears the flag", func(t *testing.T) {
		result := NewBatchResult(2)
		result.AppendFailure(0, nil, "VALIDATION_ERROR", "bad")
		result.AppendSuccess(1, nil, ActionCreated, uuid.New())
		assert.False(t, result.AllFailed())
	})
}
