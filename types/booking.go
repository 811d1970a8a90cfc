package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValidTransition reports whether a booking may move from its current
// status to the requested one. Cancelled is terminal; confirmation is only
// reachable from pending.
func (s BookingStatus) IsValidTransition(to BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCancelled
	default:
		return false
	}
}

// Booking ties a user, vehicle and space to a commerce order and payment
// intent. Capacity on the space is only consumed once the booking is
// confirmed.
type Booking struct {
	ID              string          `json:"id"`
	SpaceID         string          `json:"space_id"`
	UserID          string          `json:"user_id"`
	VehicleID       string          `json:"vehicle_id,omitempty"`
	StartDate       string          `json:"start_date"` // ISO YYYY-MM-DD
	EndDate         string          `json:"end_date"`   // ISO YYYY-MM-DD
	Status          BookingStatus   `json:"status"`
	OrderID         string          `json:"order_id,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateBookingRequest is the booking endpoint payload.
type CreateBookingRequest struct {
	SpaceID   string `json:"space_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	VehicleID string `json:"vehicle_id"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// BookingResponse is returned from booking creation; ClientSecret lets the
// frontend confirm the card payment with the payment processor directly.
type BookingResponse struct {
	Booking      Booking `json:"booking"`
	ClientSecret string  `json:"client_secret,omitempty"`
}
