package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/types"
)

var _ store.SpaceStore = (*SpaceStore)(nil)

// SpaceStore reads parking-space inventory from Postgres and maintains the
// booked-space counters consumed by confirmed bookings.
type SpaceStore struct {
	pool PgxPool
}

func NewSpaceStore(pool PgxPool) *SpaceStore {
	return &SpaceStore{pool: pool}
}

const spaceColumns = `
	id, title, location, address, postcode,
	latitude, longitude, what3words, features,
	price_per_day, price_per_month,
	total_spaces, booked_spaces, image_url,
	created_at, updated_at`

const listSpacesQuery = `SELECT` + spaceColumns + `
	FROM parking_spaces
	ORDER BY created_at`

const getSpaceQuery = `SELECT` + spaceColumns + `
	FROM parking_spaces
	WHERE id = $1`

const incrementBookedQuery = `
	UPDATE parking_spaces
	SET booked_spaces = COALESCE(booked_spaces, 0) + 1,
	    updated_at = NOW()
	WHERE id = $1
	  AND COALESCE(booked_spaces, 0) < COALESCE(total_spaces, 1)`

const decrementBookedQuery = `
	UPDATE parking_spaces
	SET booked_spaces = GREATEST(COALESCE(booked_spaces, 0) - 1, 0),
	    updated_at = NOW()
	WHERE id = $1`

func (s *SpaceStore) GetAllSpaces(ctx context.Context) ([]types.ParkingSpace, error) {
	rows, err := s.pool.Query(ctx, listSpacesQuery)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	var spaces []types.ParkingSpace
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		spaces = append(spaces, *space)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return spaces, nil
}

func (s *SpaceStore) GetSpaceByID(ctx context.Context, id string) (*types.ParkingSpace, error) {
	space, err := scanSpace(s.pool.QueryRow(ctx, getSpaceQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.SpaceNotFound(id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return space, nil
}

func (s *SpaceStore) IncrementBooked(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, incrementBookedQuery, id)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		// Either the space does not exist or it is at capacity. Distinguish
		// so the caller can surface the right error.
		if _, err := s.GetSpaceByID(ctx, id); err != nil {
			return err
		}
		return apperrors.SpaceUnavailable(id)
	}
	return nil
}

func (s *SpaceStore) DecrementBooked(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, decrementBookedQuery, id)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.SpaceNotFound(id)
	}
	return nil
}

// scanSpace maps a row onto a ParkingSpace. Coordinates and capacity columns
// are nullable; a NULL coordinate yields an invalid FlexFloat and NULL
// capacity stays nil so availability defaulting applies downstream.
func scanSpace(row pgx.Row) (*types.ParkingSpace, error) {
	var (
		space      types.ParkingSpace
		lat, lng   *float64
		what3words *string
		imageURL   *string
		features   []string
	)
	err := row.Scan(
		&space.ID, &space.Title, &space.Location, &space.Address, &space.Postcode,
		&lat, &lng, &what3words, &features,
		&space.PricePerDay, &space.PricePerMonth,
		&space.TotalSpaces, &space.BookedSpaces, &imageURL,
		&space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil {
		space.Latitude = types.NewFlexFloat(*lat)
	}
	if lng != nil {
		space.Longitude = types.NewFlexFloat(*lng)
	}
	if what3words != nil {
		space.What3Words = *what3words
	}
	if imageURL != nil {
		space.ImageURL = *imageURL
	}
	space.Features = features
	if _, ok := space.Coordinates(); !ok && (lat != nil || lng != nil) {
		logger.GetLogger().Debugw("Space has partial coordinates", "spaceID", space.ID)
	}
	return &space, nil
}
