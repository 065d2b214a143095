package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iletigo/mutabakat/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger reports database reachability
type Pinger interface {
	Ping() error
}

// SystemHandler serves operational endpoints
type SystemHandler struct {
	BaseHandler
	db Pinger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health godoc
// @Summary      Health check
// @Description  Liveness probe including a database ping
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.requestLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unhealthy", Database: "error"})
		return
	}
	h.Success(c, dto.HealthResponse{Status: "ok", Database: "ok"})
}
