package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/types"
)

var _ store.BookingStore = (*BookingStore)(nil)

// BookingStore persists bookings in Postgres.
type BookingStore struct {
	pool PgxPool
}

func NewBookingStore(pool PgxPool) *BookingStore {
	return &BookingStore{pool: pool}
}

const bookingColumns = `
	id, space_id, user_id, vehicle_id, start_date, end_date,
	status, order_id, payment_intent_id, total_price,
	created_at, updated_at`

const createBookingQuery = `
	INSERT INTO bookings (
		id, space_id, user_id, vehicle_id, start_date, end_date,
		status, total_price, created_at, updated_at
	) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, NOW(), NOW())
	RETURNING id`

const getBookingQuery = `SELECT` + bookingColumns + `
	FROM bookings
	WHERE id = $1`

const updateBookingStatusQuery = `
	UPDATE bookings
	SET status = $2, updated_at = NOW()
	WHERE id = $1`

const setBookingOrderQuery = `
	UPDATE bookings
	SET order_id = $2, payment_intent_id = $3, updated_at = NOW()
	WHERE id = $1`

const listBookingsByUserQuery = `SELECT` + bookingColumns + `
	FROM bookings
	WHERE user_id = $1
	ORDER BY created_at DESC`

func (s *BookingStore) CreateBooking(ctx context.Context, booking *types.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = types.BookingStatusPending
	}
	var id string
	err := s.pool.QueryRow(ctx, createBookingQuery,
		booking.ID, booking.SpaceID, booking.UserID, booking.VehicleID,
		booking.StartDate, booking.EndDate, booking.Status, booking.TotalPrice,
	).Scan(&id)
	if err != nil {
		return "", apperrors.NewDatabaseError(err)
	}
	return id, nil
}

func (s *BookingStore) GetBookingByID(ctx context.Context, id string) (*types.Booking, error) {
	booking, err := scanBooking(s.pool.QueryRow(ctx, getBookingQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Booking", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return booking, nil
}

func (s *BookingStore) UpdateBookingStatus(ctx context.Context, id string, status types.BookingStatus) error {
	tag, err := s.pool.Exec(ctx, updateBookingStatusQuery, id, status)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Booking", id)
	}
	return nil
}

func (s *BookingStore) SetBookingOrder(ctx context.Context, id, orderID, paymentIntentID string) error {
	tag, err := s.pool.Exec(ctx, setBookingOrderQuery, id, orderID, paymentIntentID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Booking", id)
	}
	return nil
}

func (s *BookingStore) ListBookingsByUser(ctx context.Context, userID string) ([]types.Booking, error) {
	rows, err := s.pool.Query(ctx, listBookingsByUserQuery, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	var bookings []types.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*types.Booking, error) {
	var (
		booking         types.Booking
		vehicleID       *string
		orderID         *string
		paymentIntentID *string
	)
	err := row.Scan(
		&booking.ID, &booking.SpaceID, &booking.UserID, &vehicleID,
		&booking.StartDate, &booking.EndDate,
		&booking.Status, &orderID, &paymentIntentID, &booking.TotalPrice,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if vehicleID != nil {
		booking.VehicleID = *vehicleID
	}
	if orderID != nil {
		booking.OrderID = *orderID
	}
	if paymentIntentID != nil {
		booking.PaymentIntentID = *paymentIntentID
	}
	return &booking, nil
}
