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

// Is matches domain errors by code so that errors.Is(err, ErrNotFound)
// holds for any not-found error regardless of its message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidState      = "INVALID_STATE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeConcurrentUpdate  = "CONCURRENT_MODIFICATION"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "not found")
	ErrAlreadyExists     = NewDomainError(CodeAlreadyExists, "resource already exists")
	ErrInvalidInput      = NewDomainError(CodeInvalidInput, "invalid input")
	ErrUnauthorized      = NewDomainError(CodeUnauthorized, "unauthorized")
	ErrForbidden         = NewDomainError(CodeForbidden, "forbidden")
	ErrInvalidState      = NewDomainError(CodeInvalidState, "operation not allowed in current state")
	ErrInvalidTransition = NewDomainError(CodeInvalidTransition, "invalid status transition")
	ErrConcurrentUpdate  = NewDomainError(CodeConcurrentUpdate, "the record was modified by another request")
)

// NewValidationError returns an INVALID_INPUT error carrying a caller-facing message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

// NewRequiredError reports a missing required field
func NewRequiredError(field string) *DomainError {
	return NewValidationError(field + " is required")
}

// IsDomainError reports whether err wraps a DomainError and returns it
func IsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
