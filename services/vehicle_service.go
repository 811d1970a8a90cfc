package services

import (
	"context"

	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/types"
)

// VehicleService registers vehicles against existing users.
type VehicleService struct {
	vehicles store.VehicleStore
	users    store.UserStore
}

func NewVehicleService(vehicles store.VehicleStore, users store.UserStore) *VehicleService {
	return &VehicleService{vehicles: vehicles, users: users}
}

func (s *VehicleService) CreateVehicle(ctx context.Context, req types.CreateVehicleRequest) (*types.Vehicle, error) {
	if _, err := s.users.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	vehicle := &types.Vehicle{
		UserID:       req.UserID,
		Registration: req.Registration,
		Make:         req.Make,
		Model:        req.Model,
		Colour:       req.Colour,
	}
	vehicleID, err := s.vehicles.CreateVehicle(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	vehicle.ID = vehicleID
	return vehicle, nil
}

func (s *VehicleService) ListUserVehicles(ctx context.Context, userID string) ([]types.Vehicle, error) {
	return s.vehicles.ListVehiclesByUser(ctx, userID)
}
