package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/apperrors"
	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/dto"
	"github.com/SscSPs/hydration_tracker_app/internal/middleware"
	"github.com/SscSPs/hydration_tracker_app/internal/utils/hydration"
	"github.com/gin-gonic/gin"
)

// waterHandler handles the signed-in user's water records and totals.
type waterHandler struct {
	waterService portssvc.WaterSvcFacade
}

func newWaterHandler(ws portssvc.WaterSvcFacade) *waterHandler {
	return &waterHandler{waterService: ws}
}

// parseDate reads an RFC 3339 instant, or a naive value in timezone.
func parseDate(value, timezone string) (time.Time, error) {
	var loc *time.Location
	if timezone != "" {
		l, err := hydration.LoadLocation(timezone)
		if err != nil {
			return time.Time{}, apperrors.NewBadRequestError("Invalid timezone")
		}
		loc = l
	}
	ts, err := hydration.ParseTimestamp(value, loc)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequestError("Invalid date: " + err.Error())
	}
	return ts, nil
}

// viewerTimezone prefers the explicit query value and falls back to the profile zone.
func viewerTimezone(c *gin.Context, requested string) string {
	if requested != "" {
		return requested
	}
	if user, ok := middleware.GetUserFromContext(c); ok && user.Timezone != "" {
		return user.Timezone
	}
	return domain.DefaultTimezone
}

// CreateWaterRecord godoc
// @Summary Log water intake
// @Tags water
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateWaterRecordRequest true "Record"
// @Success 201 {object} dto.WaterRecordResponse
// @Failure 400 {object} ErrorResponse
// @Router /water [post]
func (h *waterHandler) createRecord(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateWaterRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Volume.IsNegative() {
		respondError(c, apperrors.NewBadRequestError("Volume must not be negative"))
		return
	}
	ts, err := parseDate(req.Date, req.Timezone)
	if err != nil {
		respondError(c, err)
		return
	}
	record, err := h.waterService.CreateRecord(c.Request.Context(), userID, *req.Volume, ts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWaterRecordResponse(record))
}

// ListWaterRecords godoc
// @Summary List water records
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags water
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1-100)" default(20)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListWaterRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Router /water [get]
func (h *waterHandler) listRecords(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListWaterRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	records, next, err := h.waterService.ListRecords(c.Request.Context(), userID, params.Limit, token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListWaterRecordsResponse(records, next))
}

// UpdateWaterRecord godoc
// @Summary Update a water record
// @Tags water
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param body body dto.UpdateWaterRecordRequest true "Changes"
// @Success 200 {object} dto.WaterRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /water/{id} [put]
func (h *waterHandler) updateRecord(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateWaterRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Volume == nil && req.Date == nil {
		respondError(c, apperrors.NewBadRequestError("Nothing to update, provide volume or date"))
		return
	}
	patch := domain.WaterRecordPatch{Volume: req.Volume}
	if req.Date != nil {
		ts, err := parseDate(*req.Date, req.Timezone)
		if err != nil {
			respondError(c, err)
			return
		}
		patch.Timestamp = &ts
	}
	record, err := h.waterService.UpdateRecord(c.Request.Context(), c.Param("id"), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWaterRecordResponse(record))
}

// DeleteWaterRecord godoc
// @Summary Delete a water record
// @Tags water
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} dto.WaterRecordResponse
// @Failure 404 {object} ErrorResponse
// @Router /water/{id} [delete]
func (h *waterHandler) deleteRecord(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	record, err := h.waterService.DeleteRecord(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWaterRecordResponse(record))
}

// DailyTotal godoc
// @Summary Daily intake
// @Description Totals the records of one calendar day in the given zone, defaulting to the profile timezone.
// @Tags water
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Param timezone query string false "IANA timezone"
// @Success 200 {object} dto.IntakeSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /water/daily/{date} [get]
func (h *waterHandler) dailyTotal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q dto.AggregationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	summary, err := h.waterService.DailyTotal(c.Request.Context(), userID, c.Param("date"), viewerTimezone(c, q.Timezone))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIntakeSummaryResponse(summary, userID))
}

// MonthlyTotal godoc
// @Summary Monthly intake
// @Tags water
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param timezone query string false "IANA timezone"
// @Success 200 {object} dto.IntakeSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /water/monthly/{year}/{month} [get]
func (h *waterHandler) monthlyTotal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var path dto.MonthPath
	if err := c.ShouldBindUri(&path); err != nil {
		respondBindError(c, err)
		return
	}
	var q dto.AggregationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	summary, err := h.waterService.MonthlyTotal(c.Request.Context(), userID, path.Year, path.Month, viewerTimezone(c, q.Timezone))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIntakeSummaryResponse(summary, userID))
}
