package service

import (
	"context"
	"log/slog"

	"tabshare/internal/models"
	"tabshare/internal/storage"
)

// UserService handles user creation and listing.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser creates a new user. Name is required; email is optional.
func (s *UserService) CreateUser(ctx context.Context, name string, email *string) (*models.User, error) {
	if name == "" {
		return nil, missingField("name")
	}

	user := &models.User{
		Name:  name,
		Email: email,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("CreateUser failed", "error", err)
		return nil, err
	}

	slog.Info("User created", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// ListUsers returns all users ordered by name.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		slog.Error("ListUsers failed", "error", err)
		return nil, err
	}
	return users, nil
}
