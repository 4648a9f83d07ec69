package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"trackme/internal/config"
	"trackme/internal/domain"
	"trackme/internal/dto"
	"trackme/internal/port"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
)

// GoogleOAuthAdapter implements port.OAuthProvider with golang.org/x/oauth2.
type GoogleOAuthAdapter struct {
	oauth2Config *oauth2.Config
	userInfoURL  string
}

func NewGoogleOAuthAdapter(cfg config.GoogleOAuthConfig) port.OAuthProvider {
	return newGoogleOAuthAdapter(cfg, google.Endpoint, googleUserInfoURL)
}

func newGoogleOAuthAdapter(cfg config.GoogleOAuthConfig, endpoint oauth2.Endpoint, userInfoURL string) *GoogleOAuthAdapter {
	return &GoogleOAuthAdapter{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: endpoint,
		},
		userInfoURL: userInfoURL,
	}
}

func (g *GoogleOAuthAdapter) AuthCodeURL(state string) string {
	return g.oauth2Config.AuthCodeURL(state)
}

func (g *GoogleOAuthAdapter) Exchange(ctx context.Context, code string) (*domain.GoogleProfile, error) {
	token, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	resp, err := g.oauth2Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFailedToGetUserInfo, resp.StatusCode)
	}

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	profile := &domain.GoogleProfile{
		GoogleID:       userInfo.ID,
		Name:           userInfo.Name,
		Email:          userInfo.Email,
		ProfilePicture: userInfo.Picture,
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("google user info is incomplete: %w", err)
	}
	return profile, nil
}
