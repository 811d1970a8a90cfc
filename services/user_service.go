package services

import (
	"context"

	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/pkg/commerce"
	"github.com/parkpal/parkpal-backend/types"
)

// UserService registers accounts and links them to commerce customers. The
// commerce record is created eagerly so the first booking does not pay the
// extra round trip; a failure there is tolerated and retried at booking
// time.
type UserService struct {
	users    store.UserStore
	commerce commerce.ClientInterface
}

func NewUserService(users store.UserStore, commerceClient commerce.ClientInterface) *UserService {
	return &UserService{users: users, commerce: commerceClient}
}

func (s *UserService) CreateUser(ctx context.Context, req types.CreateUserRequest) (*types.User, error) {
	log := logger.GetLogger()

	user := &types.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	userID, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if s.commerce != nil {
		customer, err := s.commerce.CreateCustomer(ctx, user.Email, user.FirstName, user.LastName)
		if err != nil {
			log.Warnw("Commerce customer creation failed, will retry at booking time",
				"userID", userID, "error", err)
		} else if err := s.users.SetCommerceCustomerID(ctx, userID, customer.ID); err != nil {
			log.Warnw("Failed to persist commerce customer id", "userID", userID, "error", err)
		} else {
			user.CommerceCustomerID = customer.ID
		}
	}

	log.Infow("Registered user",
		"userID", userID,
		"email", logger.MaskSensitiveString(user.Email, 2, 4))
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*types.User, error) {
	return s.users.GetUserByID(ctx, id)
}
