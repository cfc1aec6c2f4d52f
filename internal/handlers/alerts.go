package handlers

import (
	"net/http"
	"strconv"
	"time"

	"foodsafety/internal/models"
	"foodsafety/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListAlerts   = "failed to load alerts"
	errGetAlert     = "failed to load alert"
	errResolveAlert = "failed to resolve alert"

	errResolvedInvalid = "invalid 'resolved'; use true or false"
	errFromInvalid     = "invalid 'from' date; use YYYY-MM-DD"
	errToInvalid       = "invalid 'to' date; use YYYY-MM-DD"
)

type resolveAlertRequest struct {
	CorrectiveAction     string   `json:"corrective_action" binding:"required"`
	CorrectedTemperature *float64 `json:"corrected_temperature" binding:"required"`
}

// parseAlertFilter reads the recognized alert query parameters. Date
// parameters stay civil days; the service anchors them in its display
// location (to is end-of-day inclusive there).
// Returns false after writing a 400 when a parameter is malformed.
func parseAlertFilter(c *gin.Context) (service.AlertFilter, bool) {
	var f service.AlertFilter

	if qs := c.Query("resolved"); qs != "" {
		v, err := strconv.ParseBool(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errResolvedInvalid})
			return f, false
		}
		f.Resolved = &v
	}

	f.Danger = models.AlertDanger(c.Query("danger"))
	f.Type = models.AlertType(c.Query("type"))
	f.SectorID = c.Query("sector_id")
	f.FoodID = c.Query("food_id")

	if qs := c.Query("date"); qs != "" {
		t, err := time.Parse(layoutDate, qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errDateInvalid})
			return f, false
		}
		f.Date = t
	}
	if qs := c.Query("from"); qs != "" {
		t, err := time.Parse(layoutDate, qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return f, false
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := time.Parse(layoutDate, qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return f, false
		}
		f.To = t
	}

	return f, true
}

// @Summary      List alerts
// @Description  Filter by resolved, danger, type, sector_id, food_id, and either date or from/to (YYYY-MM-DD).
// @Tags         alerts
// @Produce      json
// @Param        resolved  query  bool    false  "Resolution state"
// @Param        danger    query  string  false  "Danger level"  Enums(ALERT,CRITICAL)
// @Param        type      query  string  false  "Alert type"  Enums(BELOW_MIN,ABOVE_MAX,NEXT_MIN,NEXT_MAX)
// @Param        sector_id query  string  false  "Sector id"
// @Param        food_id   query  string  false  "Food id"
// @Param        date      query  string  false  "Single day (YYYY-MM-DD); exclusive with from/to"
// @Param        from      query  string  false  "Range start (YYYY-MM-DD)"
// @Param        to        query  string  false  "Range end (YYYY-MM-DD), end-of-day inclusive"
// @Success      200   {object}  map[string]interface{}  "count, alerts"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/alerts [get]
// @Security     BearerAuth
func (h *Handler) listAlerts(c *gin.Context) {
	f, ok := parseAlertFilter(c)
	if !ok {
		return
	}

	alerts, err := h.services.Alerts.List(c.Request.Context(), f)
	if err != nil {
		h.mapServiceError(c, err, errListAlerts, "list_alerts_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// @Summary      Get an alert
// @Tags         alerts
// @Produce      json
// @Param        id   path  string  true  "Alert id"
// @Success      200  {object}  models.Alert
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alerts/{id} [get]
// @Security     BearerAuth
func (h *Handler) getAlert(c *gin.Context) {
	alert, err := h.services.Alerts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapServiceError(c, err, errGetAlert, "get_alert_failed", "alert_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, alert)
}

// @Summary      Resolve an alert
// @Description  Closes an open alert with a corrective action and corrected temperature. Resolution is terminal.
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Alert id"
// @Param        body  body  resolveAlertRequest  true  "Resolution payload"
// @Success      200   {object}  models.Alert
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/alerts/{id}/resolve [post]
// @Security     BearerAuth
func (h *Handler) resolveAlert(c *gin.Context) {
	var req resolveAlertRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	alert, err := h.services.Alerts.Resolve(c.Request.Context(), service.ResolveInput{
		AlertID:              c.Param("id"),
		CorrectiveAction:     req.CorrectiveAction,
		CorrectedTemperature: *req.CorrectedTemperature,
		UserID:               userID,
	})
	if err != nil {
		h.mapServiceError(c, err, errResolveAlert, "resolve_alert_failed", "alert_id", c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, alert)
}
