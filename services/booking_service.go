package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/pkg/commerce"
	"github.com/parkpal/parkpal-backend/types"
)

const bookingDateLayout = "2006-01-02"

// EmailSender sends booking lifecycle emails; delivery failures never fail
// the booking operation.
type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, user *types.User, booking *types.Booking, space *types.ParkingSpace) error
}

// BookingService drives the booking lifecycle. A booking is mirrored as a
// commerce order and paid through a payment intent: create leaves it
// pending, confirm consumes space capacity, cancel releases it.
type BookingService struct {
	bookings store.BookingStore
	spaces   store.SpaceStore
	users    store.UserStore
	vehicles store.VehicleStore
	commerce commerce.ClientInterface
	payments PaymentServiceInterface
	email    EmailSender
}

func NewBookingService(
	bookings store.BookingStore,
	spaces store.SpaceStore,
	users store.UserStore,
	vehicles store.VehicleStore,
	commerceClient commerce.ClientInterface,
	payments PaymentServiceInterface,
	email EmailSender,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		spaces:   spaces,
		users:    users,
		vehicles: vehicles,
		commerce: commerceClient,
		payments: payments,
		email:    email,
	}
}

// CreateBooking validates the request, mirrors it as a commerce order,
// creates the payment intent and persists the booking as pending. Capacity
// is not consumed until the booking is confirmed.
func (s *BookingService) CreateBooking(ctx context.Context, req types.CreateBookingRequest) (*types.BookingResponse, error) {
	log := logger.GetLogger()

	days, err := bookingDays(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	space, err := s.spaces.GetSpaceByID(ctx, req.SpaceID)
	if err != nil {
		return nil, err
	}
	if !space.IsAvailable() {
		return nil, apperrors.SpaceUnavailable(space.ID)
	}

	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.VehicleID != "" {
		vehicle, err := s.vehicles.GetVehicleByID(ctx, req.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.UserID != user.ID {
			return nil, apperrors.ValidationFailed("Vehicle does not belong to user", "")
		}
	}

	totalPrice := space.PricePerDay.Mul(decimal.NewFromInt(int64(days)))

	booking := &types.Booking{
		SpaceID:    space.ID,
		UserID:     user.ID,
		VehicleID:  req.VehicleID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     types.BookingStatusPending,
		TotalPrice: totalPrice,
	}
	bookingID, err := s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	booking.ID = bookingID

	customerID, err := s.ensureCommerceCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	order, err := s.commerce.CreateOrder(ctx, customerID)
	if err != nil {
		return nil, apperrors.NewCommerceError(err, "create order")
	}
	if _, err := s.commerce.AddLineItem(ctx, order.ID, commerce.LineItem{
		ProductID:   space.ID,
		Description: space.Title,
		Quantity:    days,
		Price:       space.PricePerDay,
	}); err != nil {
		return nil, apperrors.NewCommerceError(err, "add line item")
	}

	intent, err := s.payments.CreateIntent(totalPrice, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.SetBookingOrder(ctx, bookingID, order.ID, intent.ID); err != nil {
		return nil, err
	}
	booking.OrderID = order.ID
	booking.PaymentIntentID = intent.ID

	log.Infow("Created booking",
		"bookingID", bookingID,
		"spaceID", space.ID,
		"userID", user.ID,
		"days", days,
		"totalPrice", totalPrice.StringFixed(2))
	return &types.BookingResponse{
		Booking:      *booking,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmBooking completes the commerce order, consumes capacity and marks
// the booking confirmed. Called once the payment intent has succeeded.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) (*types.Booking, error) {
	log := logger.GetLogger()

	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsValidTransition(types.BookingStatusConfirmed) {
		return nil, apperrors.InvalidBookingState(string(booking.Status), string(types.BookingStatusConfirmed))
	}

	if err := s.spaces.IncrementBooked(ctx, booking.SpaceID); err != nil {
		return nil, err
	}

	if booking.OrderID != "" {
		if _, err := s.commerce.ConfirmOrder(ctx, booking.OrderID); err != nil {
			// Roll the capacity back so a retry starts clean.
			if rollbackErr := s.spaces.DecrementBooked(ctx, booking.SpaceID); rollbackErr != nil {
				log.Errorw("Failed to release capacity after order confirmation failure",
					"bookingID", bookingID, "error", rollbackErr)
			}
			return nil, apperrors.NewCommerceError(err, "confirm order")
		}
	}

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, types.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	booking.Status = types.BookingStatusConfirmed

	s.sendConfirmationEmail(ctx, booking)

	log.Infow("Confirmed booking", "bookingID", bookingID, "spaceID", booking.SpaceID)
	return booking, nil
}

// CancelBooking marks the booking cancelled, releasing capacity if it had
// been confirmed. The commerce order and payment intent are cancelled best
// effort.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*types.Booking, error) {
	log := logger.GetLogger()

	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsValidTransition(types.BookingStatusCancelled) {
		return nil, apperrors.InvalidBookingState(string(booking.Status), string(types.BookingStatusCancelled))
	}

	wasConfirmed := booking.Status == types.BookingStatusConfirmed

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, types.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = types.BookingStatusCancelled

	if wasConfirmed {
		if err := s.spaces.DecrementBooked(ctx, booking.SpaceID); err != nil {
			log.Errorw("Failed to release capacity on cancellation",
				"bookingID", bookingID, "spaceID", booking.SpaceID, "error", err)
		}
	}
	if booking.OrderID != "" {
		if _, err := s.commerce.CancelOrder(ctx, booking.OrderID); err != nil {
			log.Warnw("Failed to cancel commerce order", "orderID", booking.OrderID, "error", err)
		}
	}
	if !wasConfirmed && booking.PaymentIntentID != "" {
		if err := s.payments.CancelIntent(booking.PaymentIntentID); err != nil {
			log.Warnw("Failed to cancel payment intent", "intentID", booking.PaymentIntentID, "error", err)
		}
	}

	log.Infow("Cancelled booking", "bookingID", bookingID)
	return booking, nil
}

// GetBooking returns a booking by id.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*types.Booking, error) {
	return s.bookings.GetBookingByID(ctx, bookingID)
}

// ListUserBookings returns a user's bookings, newest first.
func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]types.Booking, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.ListBookingsByUser(ctx, userID)
}

func (s *BookingService) ensureCommerceCustomer(ctx context.Context, user *types.User) (string, error) {
	if user.CommerceCustomerID != "" {
		return user.CommerceCustomerID, nil
	}
	customer, err := s.commerce.CreateCustomer(ctx, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return "", apperrors.NewCommerceError(err, "create customer")
	}
	if err := s.users.SetCommerceCustomerID(ctx, user.ID, customer.ID); err != nil {
		return "", err
	}
	user.CommerceCustomerID = customer.ID
	return customer.ID, nil
}

func (s *BookingService) sendConfirmationEmail(ctx context.Context, booking *types.Booking) {
	if s.email == nil {
		return
	}
	log := logger.GetLogger()
	user, err := s.users.GetUserByID(ctx, booking.UserID)
	if err != nil {
		log.Warnw("Skipping confirmation email, user lookup failed", "userID", booking.UserID, "error", err)
		return
	}
	space, err := s.spaces.GetSpaceByID(ctx, booking.SpaceID)
	if err != nil {
		log.Warnw("Skipping confirmation email, space lookup failed", "spaceID", booking.SpaceID, "error", err)
		return
	}
	if err := s.email.SendBookingConfirmation(ctx, user, booking, space); err != nil {
		log.Warnw("Failed to send confirmation email", "bookingID", booking.ID, "error", err)
	}
}

// bookingDays validates the date range and returns the number of chargeable
// days. Both endpoints are chargeable, a same-day booking is one day.
func bookingDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(bookingDateLayout, startDate)
	if err != nil {
		return 0, apperrors.ValidationFailed("Invalid start date", "expected YYYY-MM-DD")
	}
	end, err := time.Parse(bookingDateLayout, endDate)
	if err != nil {
		return 0, apperrors.ValidationFailed("Invalid end date", "expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return 0, apperrors.ValidationFailed("End date before start date", "")
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}
