package service

import (
	"context"
	"fmt"
	"trackme/internal/domain"
	"trackme/internal/logger"

	"go.uber.org/zap"
)

type identityStrategy struct {
	name    string
	method  domain.AuthMethod
	resolve func(ctx context.Context, creds domain.Credentials) (*domain.User, error)
}

type identityResolverImpl struct {
	strategies []identityStrategy
}

// NewIdentityResolver builds the resolver with its strategies in precedence
// order: session cookie, Authorization bearer token, query-string token.
func NewIdentityResolver(sessions SessionStore, tokens TokenStore, users domain.UserRepository) domain.IdentityResolver {
	lookupToken := func(token string) (*domain.User, error) {
		if token == "" {
			return nil, nil
		}
		user, ok := tokens.Lookup(token)
		if !ok {
			return nil, nil
		}
		return user, nil
	}

	return &identityResolverImpl{strategies: []identityStrategy{
		{
			name:   "session",
			method: domain.AuthMethodSession,
			resolve: func(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
				if creds.SessionID == "" {
					return nil, nil
				}
				userID, err := sessions.UserID(ctx, creds.SessionID)
				if err != nil || userID == "" {
					return nil, err
				}
				user, err := users.FindByID(ctx, userID)
				if err != nil {
					return nil, fmt.Errorf("failed to load session user: %w", err)
				}
				return user, nil
			},
		},
		{
			name:   "bearer",
			method: domain.AuthMethodToken,
			resolve: func(_ context.Context, creds domain.Credentials) (*domain.User, error) {
				return lookupToken(creds.BearerToken)
			},
		},
		{
			name:   "query",
			method: domain.AuthMethodToken,
			resolve: func(_ context.Context, creds domain.Credentials) (*domain.User, error) {
				return lookupToken(creds.QueryToken)
			},
		},
	}}
}

// Resolve tries each strategy in order; the first user found wins. A failing
// strategy is logged and the next one is tried.
func (r *identityResolverImpl) Resolve(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	appLogger := logger.Get()
	for _, strategy := range r.strategies {
		user, err := strategy.resolve(ctx, creds)
		if err != nil {
			appLogger.Warn("Identity strategy failed", zap.String("strategy", strategy.name), zap.Error(err))
			continue
		}
		if user == nil {
			continue
		}
		appLogger.Debug("Request authenticated",
			zap.String("strategy", strategy.name),
			zap.String("method", string(strategy.method)),
			zap.String("userID", user.ID))
		return &domain.Identity{User: user, Method: strategy.method}, nil
	}
	return nil, domain.NewUnauthorizedError("Not authenticated")
}
