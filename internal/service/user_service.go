package service

import (
	"context"
	"fmt"
	"strings"
	"trackme/internal/domain"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

type userServiceImpl struct {
	users domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(users domain.UserRepository) UserService {
	return &userServiceImpl{users: users}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id from repository: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	return user, nil
}

// UpdateProfile changes only name and profilePicture. An empty update
// returns the current profile unchanged.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if update.Empty() {
		return s.GetProfile(ctx, userID)
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.NewInvalidInputError("name cannot be empty")
		}
		update.Name = &name
	}
	if update.ProfilePicture != nil {
		picture := strings.TrimSpace(*update.ProfilePicture)
		update.ProfilePicture = &picture
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	return user, nil
}
