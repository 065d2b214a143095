package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidTransition, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// domain codes are normalized
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{shared.CodeInvalidTransition, http.StatusBadRequest},
		{shared.CodeUnauthorized, http.StatusUnauthorized},
		{shared.CodeConcurrentUpdate, http.StatusConflict},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(shared.CodeNotFound))
	assert.Equal(t, ErrCodeInvalidTransition, NormalizeErrorCode(shared.CodeInvalidTransition))
	assert.Equal(t, ErrCodeRateLimited, NormalizeErrorCode(ErrCodeRateLimited))
	assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
}

func TestErrorResponseShape(t *testing.T) {
	b, err := json.Marshal(NewErrorResponse("invalid credentials"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, string(b))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 21)
	assert.Equal(t, Pagination{CurrentPage: 2, PerPage: 10, Total: 21, TotalPages: 3}, p)
	assert.Equal(t, 0, NewPagination(1, 10, 0).TotalPages)
}
