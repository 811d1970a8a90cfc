package types

import "time"

// Vehicle is registered against a user and attached to bookings so space
// owners know which car to expect.
type Vehicle struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Registration string    `json:"registration"`
	Make         string    `json:"make,omitempty"`
	Model        string    `json:"model,omitempty"`
	Colour       string    `json:"colour,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateVehicleRequest registers a vehicle for a user.
type CreateVehicleRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	Registration string `json:"registration" binding:"required"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Colour       string `json:"colour"`
}
