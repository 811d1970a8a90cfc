// Package store defines the persistence interfaces used by services.
// Implementations live in subpackages (postgres, fixture); services depend
// only on these interfaces so tests can swap in mocks or fixture data.
package store

import (
	"context"

	"github.com/parkpal/parkpal-backend/types"
)

// InventoryProvider supplies the parking-space inventory the search pipeline
// runs over. The production implementation reads Postgres; the fixture
// implementation serves a static snapshot for development and tests.
type InventoryProvider interface {
	// GetAllSpaces returns every inventory record, including fully booked
	// ones. Callers that need availability filtering apply it themselves.
	GetAllSpaces(ctx context.Context) ([]types.ParkingSpace, error)
}

// SpaceStore provides read access and capacity bookkeeping for parking
// spaces.
type SpaceStore interface {
	InventoryProvider

	GetSpaceByID(ctx context.Context, id string) (*types.ParkingSpace, error)
	// IncrementBooked consumes one unit of capacity. It fails with a
	// conflict error when the space has no remaining capacity.
	IncrementBooked(ctx context.Context, id string) error
	// DecrementBooked releases one unit of capacity, flooring at zero.
	DecrementBooked(ctx context.Context, id string) error
}

// BookingStore persists bookings and their status transitions.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *types.Booking) (string, error)
	GetBookingByID(ctx context.Context, id string) (*types.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status types.BookingStatus) error
	SetBookingOrder(ctx context.Context, id, orderID, paymentIntentID string) error
	ListBookingsByUser(ctx context.Context, userID string) ([]types.Booking, error)
}

// UserStore persists Parkpal accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *types.User) (string, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	SetCommerceCustomerID(ctx context.Context, id, customerID string) error
}

// VehicleStore persists vehicles registered against users.
type VehicleStore interface {
	CreateVehicle(ctx context.Context, vehicle *types.Vehicle) (string, error)
	GetVehicleByID(ctx context.Context, id string) (*types.Vehicle, error)
	ListVehiclesByUser(ctx context.Context, userID string) ([]types.Vehicle, error)
}
