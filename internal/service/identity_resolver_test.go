package service

import (
	"context"
	"errors"
	"testing"
	"time"
	"trackme/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIdentityResolver_Precedence(t *testing.T) {
	ctx := context.Background()
	sessionUser := &domain.User{ID: "session-user"}
	tokenUser := &domain.User{ID: "token-user"}
	queryUser := &domain.User{ID: "query-user"}

	tokens := NewMemoryTokenStore(time.Hour)
	defer tokens.Close()
	bearer, err := tokens.Issue(tokenUser)
	require.NoError(t, err)
	query, err := tokens.Issue(queryUser)
	require.NoError(t, err)

	t.Run("SessionWinsOverTokens", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserRepository)
		sessions.On("UserID", mock.Anything, "sid").Return("session-user", nil)
		users.On("FindByID", mock.Anything, "session-user").Return(sessionUser, nil)

		resolver := NewIdentityResolver(sessions, tokens, users)
		identity, err := resolver.Resolve(ctx, domain.Credentials{SessionID: "sid", BearerToken: bearer, QueryToken: query})
		require.NoError(t, err)
		assert.Equal(t, "session-user", identity.User.ID)
		assert.Equal(t, domain.AuthMethodSession, identity.Method)
	})

	t.Run("ExpiredSessionFallsBackToBearer", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserRepository)
		sessions.On("UserID", mock.Anything, "sid").Return("", nil)

		resolver := NewIdentityResolver(sessions, tokens, users)
		identity, err := resolver.Resolve(ctx, domain.Credentials{SessionID: "sid", BearerToken: bearer, QueryToken: query})
		require.NoError(t, err)
		assert.Equal(t, "token-user", identity.User.ID)
		assert.Equal(t, domain.AuthMethodToken, identity.Method)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("UnknownBearerFallsBackToQuery", func(t *testing.T) {
		resolver := NewIdentityResolver(new(MockSessionStore), tokens, new(MockUserRepository))
		identity, err := resolver.Resolve(ctx, domain.Credentials{BearerToken: "stale", QueryToken: query})
		require.NoError(t, err)
		assert.Equal(t, "query-user", identity.User.ID)
		assert.Equal(t, domain.AuthMethodToken, identity.Method)
	})

	t.Run("SessionBackendErrorFallsThrough", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("UserID", mock.Anything, "sid").Return("", errors.New("redis down"))

		resolver := NewIdentityResolver(sessions, tokens, new(MockUserRepository))
		identity, err := resolver.Resolve(ctx, domain.Credentials{SessionID: "sid", BearerToken: bearer})
		require.NoError(t, err)
		assert.Equal(t, "token-user", identity.User.ID)
	})

	t.Run("SessionForDeletedUser", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserRepository)
		sessions.On("UserID", mock.Anything, "sid").Return("gone", nil)
		users.On("FindByID", mock.Anything, "gone").Return(nil, nil)

		resolver := NewIdentityResolver(sessions, tokens, users)
		_, err := resolver.Resolve(ctx, domain.Credentials{SessionID: "sid"})
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	})

	t.Run("NoCredentials", func(t *testing.T) {
		resolver := NewIdentityResolver(new(MockSessionStore), tokens, new(MockUserRepository))
		identity, err := resolver.Resolve(ctx, domain.Credentials{})
		assert.Nil(t, identity)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	})
}
