package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeStaleProposal is used when a netting proposal no longer
	// matches the open position
	ErrCodeStaleProposal = "ERR_STALE_PROPOSAL"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Upstream error codes
const (
	// ErrCodeUpstreamUnavailable is used when a collaborating system
	// cannot be reached in time
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeStaleProposal:       http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized
// API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"DUPLICATE_ACCOUNT":    ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"STALE_PROPOSAL":       ErrCodeStaleProposal,
	"UPSTREAM_UNAVAILABLE": ErrCodeUpstreamUnavailable,

	"INVALID_STATE":             ErrCodeInvalidState,
	"INVALID_STATUS_TRANSITION": ErrCodeInvalidState,
	"AGREEMENT_NOT_ACTIVE":      ErrCodeInvalidState,
	"RATE_UNAVAILABLE":          ErrCodeBusinessRule,

	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_TENANT":          ErrCodeInvalidInput,
	"INVALID_ACCOUNT_NUMBER":  ErrCodeInvalidInput,
	"INVALID_ACCOUNT_NAME":    ErrCodeInvalidInput,
	"INVALID_CURRENCY":        ErrCodeInvalidInput,
	"INVALID_REFERENCE":       ErrCodeInvalidInput,
	"INVALID_DIRECTION":       ErrCodeInvalidInput,
	"INVALID_SOURCE":          ErrCodeInvalidInput,
	"INVALID_AMOUNT":          ErrCodeInvalidInput,
	"INVALID_COUNTERPARTY":    ErrCodeInvalidInput,
	"INVALID_DESCRIPTION":     ErrCodeInvalidInput,
	"INVALID_CATEGORY":        ErrCodeInvalidInput,
	"INVALID_HORIZON":         ErrCodeInvalidInput,
	"INVALID_SCENARIO":        ErrCodeInvalidInput,
	"INVALID_PARTY":           ErrCodeInvalidInput,
	"INVALID_FREQUENCY":       ErrCodeInvalidInput,
	"INVALID_AGREEMENT":       ErrCodeInvalidInput,
	"INVALID_SETTLEMENT":      ErrCodeInvalidInput,
	"INVALID_FLOW_COUNT":      ErrCodeInvalidInput,
	"INVALID_RATE":            ErrCodeInvalidInput,
	"INVALID_CONTROL_ACCOUNT": ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized
// API format. Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
