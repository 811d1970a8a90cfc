package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/types"
)

var _ store.VehicleStore = (*VehicleStore)(nil)

// VehicleStore persists registered vehicles in Postgres.
type VehicleStore struct {
	pool PgxPool
}

func NewVehicleStore(pool PgxPool) *VehicleStore {
	return &VehicleStore{pool: pool}
}

const vehicleColumns = `
	id, user_id, registration, make, model, colour,
	created_at, updated_at`

const createVehicleQuery = `
	INSERT INTO vehicles (id, user_id, registration, make, model, colour, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING id`

const getVehicleQuery = `SELECT` + vehicleColumns + `
	FROM vehicles
	WHERE id = $1`

const listVehiclesByUserQuery = `SELECT` + vehicleColumns + `
	FROM vehicles
	WHERE user_id = $1
	ORDER BY created_at`

func (s *VehicleStore) CreateVehicle(ctx context.Context, vehicle *types.Vehicle) (string, error) {
	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}
	// Registrations are compared case-insensitively and without spaces.
	vehicle.Registration = strings.ToUpper(strings.ReplaceAll(vehicle.Registration, " ", ""))
	var id string
	err := s.pool.QueryRow(ctx, createVehicleQuery,
		vehicle.ID, vehicle.UserID, vehicle.Registration,
		vehicle.Make, vehicle.Model, vehicle.Colour,
	).Scan(&id)
	if err != nil {
		return "", apperrors.NewDatabaseError(err)
	}
	return id, nil
}

func (s *VehicleStore) GetVehicleByID(ctx context.Context, id string) (*types.Vehicle, error) {
	vehicle, err := scanVehicle(s.pool.QueryRow(ctx, getVehicleQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Vehicle", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return vehicle, nil
}

func (s *VehicleStore) ListVehiclesByUser(ctx context.Context, userID string) ([]types.Vehicle, error) {
	rows, err := s.pool.Query(ctx, listVehiclesByUserQuery, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	var vehicles []types.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		vehicles = append(vehicles, *vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return vehicles, nil
}

func scanVehicle(row pgx.Row) (*types.Vehicle, error) {
	var vehicle types.Vehicle
	err := row.Scan(
		&vehicle.ID, &vehicle.UserID, &vehicle.Registration,
		&vehicle.Make, &vehicle.Model, &vehicle.Colour,
		&vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}
