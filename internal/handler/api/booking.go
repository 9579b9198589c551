package api

import (
	"errors"
	"net/http"

	"resource-booking/internal/domain/booking"
	reqdto "resource-booking/internal/handler/dto/request"
	resdto "resource-booking/internal/handler/dto/response"
	"resource-booking/internal/handler/middleware"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	paymentCommands commands.PaymentCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	paymentCommands commands.PaymentCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		paymentCommands: paymentCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book a resource slot; charges the payment method before the booking exists
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 202 {object} resdto.PaymentRequiredResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), commands.CreateBookingParams{
		UserID:           userID,
		ResourceID:       req.ResourceID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		PaymentMethodRef: req.GetPaymentMethodRef(),
	})
	if err != nil {
		h.respondCreateError(c, err)
		return
	}

	switch {
	case result.Booking != nil:
		c.JSON(http.StatusCreated, resdto.FromConfirmedBooking(result.Booking))
	case result.RequiresPaymentMethod != nil:
		c.JSON(http.StatusAccepted, resdto.FromPaymentRequired(result.RequiresPaymentMethod))
	case result.RequiresAction != nil:
		c.JSON(http.StatusAccepted, resdto.FromActionRequired(result.RequiresAction))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *BookingHandler) respondCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, errs.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time range",
		})
	case errors.Is(err, errs.ErrUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource is not available for the requested time slot",
		})
	case errors.Is(err, errs.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment was declined",
		})
	case errors.Is(err, errs.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payment gateway unavailable; please retry",
		})
	case errors.Is(err, errs.ErrPaymentIndeterminate):
		// Unknown charge outcome: the client must not retry blindly.
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment outcome unknown; contact support before retrying",
		})
	case errors.Is(err, errs.ErrOrphanedPayment):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Booking could not be completed; your payment will be reconciled",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingViewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get user bookings
// @Description Get all bookings for the current user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingViewResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.bookingQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingViewResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromBookingView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List bookings for a resource
// @Description List every booking on a resource, regardless of requester
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource ID"
// @Success 200 {array} resdto.BookingViewResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookings/resource/{resourceId} [get]
func (h *BookingHandler) GetResourceBookings(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID",
		})
		return
	}

	views, err := h.bookingQueries.ListByResource(c.Request.Context(), resourceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingViewResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromBookingView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update booking status
// @Description Transition a booking to a new status
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Status change"
// @Success 200 {object} resdto.BookingStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	status := booking.Status(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown booking status",
		})
		return
	}

	snap, err := h.bookingCommands.UpdateBookingStatus(c.Request.Context(), id, status, req.GetReason())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Invalid booking status transition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingSnapshot(snap))
}

// @Summary Refund booking
// @Description Refund the payment behind a booking, fully or partially
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RefundBookingRequest false "Optional partial amount"
// @Success 200 {object} resdto.RefundResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/refund [post]
func (h *BookingHandler) RefundBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.RefundBookingRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	result, err := h.paymentCommands.RefundBooking(c.Request.Context(), id, req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No payment found for booking",
			})
		case errors.Is(err, errs.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Refund amount must be positive and not exceed the paid amount",
			})
		case errors.Is(err, errs.ErrGatewayUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Payment gateway unavailable; please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRefundResult(result))
}
