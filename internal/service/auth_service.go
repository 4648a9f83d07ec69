package service

import (
	"context"
	"fmt"
	"trackme/internal/domain"
	"trackme/internal/logger"
	"trackme/internal/port"

	"go.uber.org/zap"
)

// LoginResult is what a successful OAuth callback hands back to the handler.
type LoginResult struct {
	User      *domain.User
	SessionID string
	Token     string
}

// AuthService defines the interface for authentication operations.
type AuthService interface {
	LoginURL() (string, error)
	HandleCallback(ctx context.Context, state, code string) (*LoginResult, error)
	// Logout destroys the session and revokes every presented token.
	Logout(ctx context.Context, sessionID string, tokens ...string) error
	ResolveToken(token string) (*domain.User, bool)
}

type authServiceImpl struct {
	provider port.OAuthProvider
	users    domain.UserRepository
	sessions SessionStore
	tokens   TokenStore
	state    *StateSigner
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	provider port.OAuthProvider,
	users domain.UserRepository,
	sessions SessionStore,
	tokens TokenStore,
	state *StateSigner,
) AuthService {
	return &authServiceImpl{
		provider: provider,
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		state:    state,
	}
}

func (s *authServiceImpl) LoginURL() (string, error) {
	state, err := s.state.Issue()
	if err != nil {
		return "", err
	}
	return s.provider.AuthCodeURL(state), nil
}

func (s *authServiceImpl) HandleCallback(ctx context.Context, state, code string) (*LoginResult, error) {
	appLogger := logger.Get()
	if err := s.state.Verify(state); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, domain.NewInvalidInputError("authorization code is missing")
	}

	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpsertGoogleUser(ctx, *profile)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert google user: %w", err)
	}

	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		_ = s.sessions.Destroy(ctx, sessionID)
		return nil, err
	}

	appLogger.Info("User logged in via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
	return &LoginResult{User: user, SessionID: sessionID, Token: token}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, sessionID string, tokens ...string) error {
	for _, token := range tokens {
		if token != "" {
			s.tokens.Revoke(token)
		}
	}
	return s.sessions.Destroy(ctx, sessionID)
}

func (s *authServiceImpl) ResolveToken(token string) (*domain.User, bool) {
	return s.tokens.Lookup(token)
}
