package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iletigo/mutabakat/internal/application/report"
)

// DashboardHandler serves the aggregated dashboard
type DashboardHandler struct {
	BaseHandler
	service *report.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary      Dashboard statistics
// @Description  Per-status and per-priority totals, recent reconciliations, overdue count and monthly trend
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} report.DashboardStats
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
