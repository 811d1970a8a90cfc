// Package store re-exports the persistence interfaces so callers outside
// internal can depend on them without importing internal packages directly.
package store

import (
	internalstore "github.com/parkpal/parkpal-backend/internal/store"
)

type (
	InventoryProvider = internalstore.InventoryProvider
	SpaceStore        = internalstore.SpaceStore
	BookingStore      = internalstore.BookingStore
	UserStore         = internalstore.UserStore
	VehicleStore      = internalstore.VehicleStore
)
