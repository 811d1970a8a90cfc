package services

import (
	"context"

	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/types"
)

// InventoryService exposes the parking-space inventory to handlers and the
// chat pipeline. The provider is injected so production wires the Postgres
// store and development wires the fixture snapshot; nothing caches the
// result, every call sees current availability.
type InventoryService struct {
	provider store.InventoryProvider
}

func NewInventoryService(provider store.InventoryProvider) *InventoryService {
	return &InventoryService{provider: provider}
}

// GetAllSpaces returns the full inventory, booked-out spaces included.
func (s *InventoryService) GetAllSpaces(ctx context.Context) ([]types.ParkingSpace, error) {
	return s.provider.GetAllSpaces(ctx)
}

// GetAvailableSpaces returns only spaces with remaining capacity.
func (s *InventoryService) GetAvailableSpaces(ctx context.Context) ([]types.ParkingSpace, error) {
	spaces, err := s.provider.GetAllSpaces(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]types.ParkingSpace, 0, len(spaces))
	for _, space := range spaces {
		if space.IsAvailable() {
			available = append(available, space)
		}
	}
	return available, nil
}
