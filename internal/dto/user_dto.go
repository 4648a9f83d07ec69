package dto

import (
	"time"
	"trackme/internal/domain"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// UserResponse is the public view of a user.
// @Description Authenticated user profile
type UserResponse struct {
	ID             string     `json:"_id"`
	GoogleID       string     `json:"googleId"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:             u.ID,
		GoogleID:       u.GoogleID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
	if !u.CreatedAt.IsZero() {
		createdAt := u.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !u.UpdatedAt.IsZero() {
		updatedAt := u.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// UpdateProfileRequest lists the editable profile fields. Omitted fields stay unchanged.
// @Description Request body for updating the profile
type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	ProfilePicture *string `json:"profilePicture"`
}

// AuthCheckResponse reports whether the request carries a valid identity.
// @Description Authentication status
type AuthCheckResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user"`
	Method        string        `json:"method,omitempty"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
