package dto

import (
	"net/http"

	"github.com/chainsync/backend/internal/domain/shared"
)

// Transport-only error codes. Engine codes come from the shared package so
// the ledger and the HTTP envelope never disagree.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeDuplicate   = "DUPLICATE_BATCH"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:          http.StatusBadRequest,
	shared.CodeResolutionConflict:  http.StatusConflict,
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodePersistenceConflict: http.StatusConflict,
	shared.CodeDistributionFailed:  http.StatusBadGateway,
	shared.CodeInvalidState:        http.StatusUnprocessableEntity,
	shared.CodeUnauthorized:        http.StatusUnauthorized,
	shared.CodeInternal:            http.StatusInternalServerError,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeDuplicate:   http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code, defaulting
// to 500 for codes it does not know.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
