package domain

import (
	"context"
	"time"
)

// User represents a domain user object
type User struct {
	ID             string
	GoogleID       string
	Name           string
	Email          string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GoogleProfile is the identity returned by Google after a successful login.
type GoogleProfile struct {
	GoogleID       string
	Name           string
	Email          string
	ProfilePicture string
}

// Validate validates the profile
func (p *GoogleProfile) Validate() error {
	if p.GoogleID == "" {
		return NewInvalidInputError("google id is required")
	}
	if p.Email == "" {
		return NewInvalidInputError("email is required")
	}
	return nil
}

// ProfileUpdate lists the user-editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name           *string
	ProfilePicture *string
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.ProfilePicture == nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	// UpsertGoogleUser creates the user on first login. On later logins it
	// refreshes the profile picture when it changed.
	UpsertGoogleUser(ctx context.Context, profile GoogleProfile) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
}
