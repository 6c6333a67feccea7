package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for binding failures
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationFormat is used when a path or query value cannot be parsed
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeDuplicateRequest is used when an idempotency key was already consumed
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
)

// Engine rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeIncompatibleUnits = "ERR_INCOMPATIBLE_UNITS"
	ErrCodeInvalidQuantity   = "ERR_INVALID_QUANTITY"
	ErrCodeUnknownItem       = "ERR_UNKNOWN_INVENTORY_ITEM"
	ErrCodeStockDeficit      = "ERR_STOCK_DEFICIT"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Dependency error codes
const (
	// ErrCodeArchiveUnavailable is used when plan archiving is not configured
	ErrCodeArchiveUnavailable = "ERR_ARCHIVE_UNAVAILABLE"
	ErrCodeTimeout            = "ERR_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationFormat: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,

	// Engine rules -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeIncompatibleUnits: http.StatusUnprocessableEntity,
	ErrCodeInvalidQuantity:   http.StatusUnprocessableEntity,
	ErrCodeUnknownItem:       http.StatusUnprocessableEntity,
	ErrCodeStockDeficit:      http.StatusUnprocessableEntity,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeArchiveUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_STATE":          ErrCodeInvalidState,
	"OPTIMISTIC_LOCK_FAILED": ErrCodeConcurrencyConflict,
	"DUPLICATE_REQUEST":      ErrCodeDuplicateRequest,
	"INCOMPATIBLE_UNITS":     ErrCodeIncompatibleUnits,
	"INVALID_QUANTITY":       ErrCodeInvalidQuantity,
	"UNKNOWN_INVENTORY_ITEM": ErrCodeUnknownItem,
	"STOCK_DEFICIT":          ErrCodeStockDeficit,
	"LINE_NOT_FOUND":         ErrCodeNotFound,
	"ARCHIVE_UNAVAILABLE":    ErrCodeArchiveUnavailable,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, and unknown codes, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}

// DomainErrorStatus resolves the API code and HTTP status for a domain error
// code. Domain codes without an explicit mapping, such as INVALID_SERVINGS,
// are rule violations: they keep their name under the ERR_ prefix and map to 422.
func DomainErrorStatus(domainCode string) (string, int) {
	code := NormalizeErrorCode(domainCode)
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return code, status
	}
	if !strings.HasPrefix(code, "ERR_") {
		code = "ERR_" + code
	}
	return code, http.StatusUnprocessableEntity
}
