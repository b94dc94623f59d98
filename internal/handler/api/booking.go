package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcore/internal/domain/payment"
	reqdto "bookcore/internal/handler/dto/request"
	resdto "bookcore/internal/handler/dto/response"
	"bookcore/internal/handler/httperr"
	"bookcore/internal/handler/middleware"
	"bookcore/internal/pkg/errs"
	"bookcore/internal/usecase/commands"
	"bookcore/internal/usecase/queries"
)

type BookingHandler struct {
	bookings commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(bookings commands.BookingCommands, bq queries.BookingQueries) *BookingHandler {
	return &BookingHandler{bookings: bookings, queries: bq}
}

// @Summary Create booking
// @Description Admit visitors into a slot, optionally redeeming a hold and package coverage
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("tenant missing from context"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.bookings.Admit(c.Request.Context(), commands.AdmitRequest{
		TenantID:         tenantID,
		ServiceID:        req.ServiceID,
		SlotID:           req.SlotID,
		CustomerID:       req.CustomerID,
		GuestName:        req.GuestName,
		GuestPhone:       req.GuestPhone,
		AdultCount:       req.AdultCount,
		ChildCount:       req.ChildCount,
		VisitorCount:     req.VisitorCount,
		RequestedCovered: req.RequestedCovered,
		SubscriptionID:   req.SubscriptionID,
		HoldID:           req.HoldID,
		SessionID:        middleware.GetSessionID(c),
	})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Create bookings in bulk
// @Description Admit one visitor per slot across multiple slots, all or nothing
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkCreateBookingRequest true "Bulk booking request"
// @Success 201 {object} resdto.BulkBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/bulk [post]
func (h *BookingHandler) CreateBookingsBulk(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("tenant missing from context"), "Unauthorized", nil)
		return
	}

	var req reqdto.BulkCreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	ids, err := h.bookings.AdmitBulk(c.Request.Context(), commands.BulkAdmitRequest{
		TenantID:         tenantID,
		ServiceID:        req.ServiceID,
		SlotIDs:          req.SlotIDs,
		CustomerID:       req.CustomerID,
		GuestName:        req.GuestName,
		GuestPhone:       req.GuestPhone,
		AdultCount:       req.AdultCount,
		ChildCount:       req.ChildCount,
		RequestedCovered: req.RequestedCovered,
		SubscriptionID:   req.SubscriptionID,
	})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.BulkBookingResponse{BookingIDs: ids})
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings for slot
// @Description List all bookings attached to a slot
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /slots/{id}/bookings [get]
func (h *BookingHandler) ListSlotBookings(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	items, err := h.queries.ListBySlot(c.Request.Context(), slotID)
	if err != nil {
		slog.Error("list bookings by slot failed", "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Reschedule booking
// @Description Move a booking to a different slot atomically
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "Reschedule request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.RescheduleBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.bookings.Reschedule(c.Request.Context(), id, req.NewSlotID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.bookings.Confirm)
}

// @Summary Check in booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckInBooking(c *gin.Context) {
	h.transition(c, h.bookings.CheckIn)
}

// @Summary Complete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.bookings.Complete)
}

// @Summary Update payment status
// @Description Advance the booking's payment status along the allowed transitions
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdatePaymentStatusRequest true "Payment status request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/payment-status [patch]
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdatePaymentStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	status, err := payment.ParseStatus(req.PaymentStatus)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown payment status", nil)
		return
	}

	if err := h.bookings.UpdatePaymentStatus(c.Request.Context(), id, status); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel a booking, releasing capacity and refunding package coverage
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookings.Cancel)
}

// @Summary Delete booking
// @Description Hard-delete a booking; paid bookings require force=true
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param force query bool false "Allow deleting a paid booking"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	allowDeletePaid := c.Query("force") == "true"
	if err := h.bookings.Delete(c.Request.Context(), id, allowDeletePaid); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, commands.ErrSlotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrSubscriptionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Package subscription not found", nil)
	case errors.Is(err, commands.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot is not available", nil)
	case errors.Is(err, commands.ErrInsufficientCapacity):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient capacity", nil)
	case errors.Is(err, commands.ErrLockInvalid):
		httperr.AbortWithError(c, http.StatusConflict, err, "Hold is invalid or expired", nil)
	case errors.Is(err, commands.ErrTenantMismatch):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Resource belongs to another tenant", nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Operation not permitted", nil)
	case errors.Is(err, commands.ErrInsufficientBalance):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Insufficient package balance", nil)
	case errors.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid state transition", nil)
	default:
		slog.Error("booking command failed", "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
