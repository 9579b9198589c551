package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "resource-booking/internal/handler/dto/request"
	resdto "resource-booking/internal/handler/dto/response"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityCommands commands.AvailabilityCommands
	availabilityQueries  queries.AvailabilityQueries
}

func NewAvailabilityHandler(
	availabilityCommands commands.AvailabilityCommands,
	availabilityQueries queries.AvailabilityQueries,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityCommands: availabilityCommands,
		availabilityQueries:  availabilityQueries,
	}
}

// @Summary Add availability window
// @Description Declare a bookable or blackout window for a resource
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddWindowRequest true "Window definition"
// @Success 201 {object} resdto.WindowResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /availability [post]
func (h *AvailabilityHandler) AddWindow(c *gin.Context) {
	var req reqdto.AddWindowRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	window, err := h.availabilityCommands.AddWindow(c.Request.Context(), commands.AddWindowParams{
		ResourceID:  req.ResourceID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.GetIsAvailable(),
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		case errors.Is(err, errs.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid time range",
			})
		case errors.Is(err, errs.ErrWindowOverlap):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Window overlaps an existing window",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromWindowSnapshot(window))
}

// @Summary Remove availability window
// @Description Delete a previously declared window
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Window ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/{id} [delete]
func (h *AvailabilityHandler) RemoveWindow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid window ID format",
		})
		return
	}

	if err := h.availabilityCommands.RemoveWindow(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrWindowNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Window not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Check availability
// @Description Check whether a resource is free for a time range, with conflicts and a quote
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param resource_id query string true "Resource ID"
// @Param start_time query string true "Range start (RFC3339)"
// @Param end_time query string true "Range end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityCheckResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/check [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	var q reqdto.CheckAvailabilityQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	check, err := h.availabilityQueries.CheckAvailability(c.Request.Context(), q.ResourceID, q.StartTime, q.EndTime)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityCheck(check))
}

// @Summary Get free slots
// @Description Enumerate bookable slots of a fixed duration on a given day
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param duration query int true "Slot duration in minutes"
// @Success 200 {array} resdto.FreeSlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/{resourceId}/slots [get]
func (h *AvailabilityHandler) GetFreeSlots(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	var q reqdto.FreeSlotsQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	slots, err := h.availabilityQueries.GetFreeSlots(
		c.Request.Context(),
		resourceID,
		date,
		time.Duration(q.DurationMinutes)*time.Minute,
	)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromFreeSlots(slots))
}

// @Summary List availability windows
// @Description List declared windows touching a given day
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {array} resdto.WindowResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/{resourceId}/windows [get]
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	var q reqdto.ListWindowsQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	windows, err := h.availabilityQueries.ListWindows(c.Request.Context(), resourceID, date)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWindowViews(windows))
}

func (h *AvailabilityHandler) respondQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, errs.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time range",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
