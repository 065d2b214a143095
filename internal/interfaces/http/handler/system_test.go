package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/iletigo/mutabakat/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping() error {
	return m.Called().Error(0)
}

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		status   int
		expected dto.HealthResponse
	}{
		{"healthy", nil, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "ok"}},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable,
			dto.HealthResponse{Status: "unhealthy", Database: "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mockPinger)
			db.On("Ping").Return(tt.pingErr).Once()
			h := NewSystemHandler(db)
			c, w := newTestContext(http.MethodGet, "/health")

			h.Health(c)

			assert.Equal(t, tt.status, w.Code)
			var resp dto.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expected, resp)
			assert.NotContains(t, w.Body.String(), "refused")
			db.AssertExpectations(t)
		})
	}
}
