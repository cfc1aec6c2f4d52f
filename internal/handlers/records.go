package handlers

import (
	"errors"
	"net/http"
	"time"

	"foodsafety/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errSubmitReading = "failed to submit reading"
	errListRecords   = "failed to load records"
	errDateInvalid   = "invalid 'date'; use YYYY-MM-DD"

	layoutDate = "2006-01-02"
)

type createRecordRequest struct {
	FoodID      string   `json:"food_id" binding:"required"`
	Temperature *float64 `json:"temperature" binding:"required"`
}

// mapServiceError translates domain errors into status codes; anything
// unexpected is logged and becomes a 500 with a generic message.
func (h *Handler) mapServiceError(c *gin.Context, err error, userMsg, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrFoodNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlertAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyCorrectiveAction),
		errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Errorw(logKey, fields...)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": userMsg})
	}
}

// parseDateQuery reads an optional ?date=YYYY-MM-DD query parameter as a
// civil day; the service anchors it in its display location. A missing
// parameter yields the zero time, which services treat as today.
func parseDateQuery(c *gin.Context) (time.Time, bool) {
	qs := c.Query("date")
	if qs == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(layoutDate, qs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errDateInvalid})
		return time.Time{}, false
	}
	return t, true
}

// @Summary      Submit a temperature reading
// @Description  Records a reading; readings outside (or near) the food's safe range raise an alert atomically with the record.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body  createRecordRequest  true  "Reading payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/records [post]
// @Security     BearerAuth
func (h *Handler) createRecord(c *gin.Context) {
	var req createRecordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	rec, err := h.services.Records.SubmitReading(c.Request.Context(), service.ReadingInput{
		FoodID:      req.FoodID,
		Temperature: *req.Temperature,
		UserID:      userID,
	})
	if err != nil {
		h.mapServiceError(c, err, errSubmitReading, "submit_reading_failed", "food_id", req.FoodID)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// @Summary      List the caller's readings for a day
// @Tags         records
// @Produce      json
// @Param        date  query  string  false  "Day (YYYY-MM-DD), defaults to today"  example(2026-08-29)
// @Success      200   {object}  map[string]interface{}  "count, records"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/records [get]
// @Security     BearerAuth
func (h *Handler) listRecords(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	day, ok := parseDateQuery(c)
	if !ok {
		return
	}

	records, err := h.services.Records.ListForDay(c.Request.Context(), userID, day)
	if err != nil {
		h.mapServiceError(c, err, errListRecords, "list_records_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"records": records,
	})
}
