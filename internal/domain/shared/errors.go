package shared

import "fmt"

// DomainError represents a recoverable business-rule error.
// Callers are expected to handle these and surface them to users.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// IntegrityError represents a violated core invariant: negative stock, a status
// that disagrees with its history, a ledger write that bypassed the accounting
// path. These indicate a bug in the core itself, not bad input. They must never
// be mapped to a business error or silently ignored; the operation halts.
type IntegrityError struct {
	Invariant string
	Detail    string
}

// Error implements the error interface
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation [%s]: %s", e.Invariant, e.Detail)
}

// NewIntegrityError creates a new integrity error
func NewIntegrityError(invariant, format string, args ...any) *IntegrityError {
	return &IntegrityError{
		Invariant: invariant,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// IsIntegrityError reports whether err is an IntegrityError
func IsIntegrityError(err error) bool {
	_, ok := err.(*IntegrityError)
	return ok
}
