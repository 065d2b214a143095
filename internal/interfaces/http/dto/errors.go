package dto

import (
	"net/http"

	"github.com/iletigo/mutabakat/internal/domain/shared"
)

// Error codes used on the transport layer.
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal          = "ERR_INTERNAL"
	ErrCodeValidation        = "ERR_VALIDATION"
	ErrCodeInvalidInput      = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON       = "ERR_INVALID_JSON"
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	ErrCodeUnauthorized      = "ERR_UNAUTHORIZED"
	ErrCodeForbidden         = "ERR_FORBIDDEN"
	ErrCodeTokenExpired      = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid      = "ERR_TOKEN_INVALID"
	ErrCodeNotFound          = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists     = "ERR_ALREADY_EXISTS"
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeConflict          = "ERR_CONFLICT"
	ErrCodePayloadTooLarge   = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited       = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation and invalid transitions are both caller mistakes
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidJSON:       http.StatusBadRequest,
	ErrCodeInvalidTransition: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,

	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Domain codes are normalized first; unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[NormalizeErrorCode(code)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to transport codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeNotFound:          ErrCodeNotFound,
	shared.CodeAlreadyExists:     ErrCodeAlreadyExists,
	shared.CodeInvalidInput:      ErrCodeInvalidInput,
	shared.CodeUnauthorized:      ErrCodeUnauthorized,
	shared.CodeForbidden:         ErrCodeForbidden,
	shared.CodeInvalidState:      ErrCodeInvalidState,
	shared.CodeInvalidTransition: ErrCodeInvalidTransition,
	shared.CodeConcurrentUpdate:  ErrCodeConflict,
}

// NormalizeErrorCode converts a domain error code to the transport format.
// Codes already in transport format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}

// NewErrorResponse creates an error body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// InternalErrorMessage is the only detail a 500 response carries
const InternalErrorMessage = "internal server error"
