package services

import (
	"context"
	"errors"

	"github.com/isdelr/exercise-tracker-be/internal/metrics"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, username string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	store store.Store
}

// NewUserService creates a new UserService.
func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

// GetAllUsers retrieves every user in store order.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// CreateUser registers username unless another user already holds it.
// The lookup and the insert are separate store calls; the store's unique
// index catches a concurrent insert that slips between them.
func (s *UserService) CreateUser(ctx context.Context, username string) (models.User, error) {
	_, err := s.store.FindUserByUsername(ctx, username)
	if err == nil {
		return models.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	user := models.User{Username: username}
	if err := s.store.InsertUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, err
	}

	metrics.RecordUserCreated()
	return user, nil
}
