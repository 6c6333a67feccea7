package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrIncompatibleUnits) matches errors built with a detailed message.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes raised by the costing and planning engine
const (
	CodeIncompatibleUnits    = "INCOMPATIBLE_UNITS"
	CodeInvalidQuantity      = "INVALID_QUANTITY"
	CodeUnknownInventoryItem = "UNKNOWN_INVENTORY_ITEM"
	CodeStockDeficit         = "STOCK_DEFICIT"
	CodeOptimisticLock       = "OPTIMISTIC_LOCK_FAILED"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeOptimisticLock, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrDuplicateRequest    = NewDomainError("DUPLICATE_REQUEST", "Request with this idempotency key was already processed")

	ErrIncompatibleUnits    = NewDomainError(CodeIncompatibleUnits, "Units cannot be converted")
	ErrInvalidQuantity      = NewDomainError(CodeInvalidQuantity, "Quantity must be greater than zero")
	ErrUnknownInventoryItem = NewDomainError(CodeUnknownInventoryItem, "Inventory item is not known")
	ErrStockDeficit         = NewDomainError(CodeStockDeficit, "Stock went below zero")
)

// IsWarning reports whether the error is a non-blocking condition that
// accompanies a completed operation rather than aborting it.
func IsWarning(err error) bool {
	return errors.Is(err, ErrStockDeficit)
}
