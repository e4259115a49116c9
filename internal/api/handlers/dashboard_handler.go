package handlers

import (
	"net/http"

	"github.com/davidmesa/ventrack/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard handles GET /api/v1/dashboard with an optional from/to
// window applied to both ledgers.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	snapshot, err := h.dashboard.Snapshot(c.Request.Context(), rng)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
