package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetDashboard = "failed to load dashboard"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard summary
// @Description  Per-day record and alert counts plus the conformity rate.
// @Tags         dashboard
// @Produce      json
// @Param        date  query  string  false  "Day (YYYY-MM-DD), defaults to today"  example(2026-08-29)
// @Success      200   {object}  service.DaySummary
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	day, ok := parseDateQuery(c)
	if !ok {
		return
	}

	summary, err := h.services.Dashboard.Summary(c.Request.Context(), day)
	if err != nil {
		h.mapServiceError(c, err, errGetDashboard, "dashboard_failed")
		return
	}

	c.JSON(http.StatusOK, summary)
}
