package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/types"
)

var _ store.UserStore = (*UserStore)(nil)

// UserStore persists Parkpal accounts in Postgres.
type UserStore struct {
	pool PgxPool
}

func NewUserStore(pool PgxPool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `
	id, email, first_name, last_name, commerce_customer_id,
	created_at, updated_at`

const createUserQuery = `
	INSERT INTO users (id, email, first_name, last_name, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	RETURNING id`

const getUserQuery = `SELECT` + userColumns + `
	FROM users
	WHERE id = $1`

const getUserByEmailQuery = `SELECT` + userColumns + `
	FROM users
	WHERE email = $1`

const setCommerceCustomerQuery = `
	UPDATE users
	SET commerce_customer_id = $2, updated_at = NOW()
	WHERE id = $1`

func (s *UserStore) CreateUser(ctx context.Context, user *types.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	var id string
	err := s.pool.QueryRow(ctx, createUserQuery,
		user.ID, user.Email, user.FirstName, user.LastName,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", apperrors.New(apperrors.ConflictError, "User already exists",
				"an account with this email is already registered")
		}
		return "", apperrors.NewDatabaseError(err)
	}
	return id, nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	return s.getUser(ctx, getUserQuery, id)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	return s.getUser(ctx, getUserByEmailQuery, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserStore) getUser(ctx context.Context, query, arg string) (*types.User, error) {
	var (
		user       types.User
		commerceID *string
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &commerceID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User", arg)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if commerceID != nil {
		user.CommerceCustomerID = *commerceID
	}
	return &user, nil
}

func (s *UserStore) SetCommerceCustomerID(ctx context.Context, id, customerID string) error {
	tag, err := s.pool.Exec(ctx, setCommerceCustomerQuery, id, customerID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("User", id)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
