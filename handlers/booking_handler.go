package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/services"
	"github.com/parkpal/parkpal-backend/types"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking godoc
// @Summary Create a booking
// @Description Creates a pending booking with its commerce order and payment intent. The returned client secret is used by the frontend to take the payment.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body types.CreateBookingRequest true "Booking details"
// @Success 201 {object} types.BookingResponse
// @Failure 400 {object} types.ErrorResponse "Invalid request"
// @Failure 404 {object} types.ErrorResponse "Space or user not found"
// @Failure 409 {object} types.ErrorResponse "Space fully booked"
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req types.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	resp, err := h.bookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmBooking godoc
// @Summary Confirm a booking
// @Description Marks the booking confirmed after payment, consuming space capacity.
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} types.Booking
// @Failure 404 {object} types.ErrorResponse "Booking not found"
// @Failure 409 {object} types.ErrorResponse "Invalid state or space fully booked"
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Cancels a pending or confirmed booking, releasing capacity if it was confirmed.
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} types.Booking
// @Failure 404 {object} types.ErrorResponse "Booking not found"
// @Failure 409 {object} types.ErrorResponse "Booking already cancelled"
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListUserBookings godoc
// @Summary List a user's bookings
// @Tags bookings
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} types.Booking
// @Failure 404 {object} types.ErrorResponse "User not found"
// @Router /users/{id}/bookings [get]
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListUserBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if bookings == nil {
		bookings = []types.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}
