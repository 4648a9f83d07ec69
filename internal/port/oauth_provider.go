package port

import (
	"context"
	"trackme/internal/domain"
)

// OAuthProvider defines the interface for the external login provider
type OAuthProvider interface {
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for the provider's user profile.
	Exchange(ctx context.Context, code string) (*domain.GoogleProfile, error)
}
