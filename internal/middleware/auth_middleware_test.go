package middleware_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"trackme/internal/domain"
	"trackme/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const cookieName = "trackme.sid"

type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) Resolve(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func TestCredentialsFromRequest(t *testing.T) {
	app := fiber.New()
	var got domain.Credentials
	app.Get("/", func(c *fiber.Ctx) error {
		got = middleware.CredentialsFromRequest(c, cookieName)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/?token=%20qt%20", nil)
	req.Header.Set("Authorization", "Bearer bt")
	req.Header.Set("Cookie", cookieName+"=sid1")
	_, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, domain.Credentials{SessionID: "sid1", BearerToken: "bt", QueryToken: "qt"}, got)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	_, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{}, got)
}

func TestProtected(t *testing.T) {
	user := &domain.User{ID: "u1", Name: "Ada"}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *MockIdentityResolver)
		expectedStatus int
		expectedUserID interface{}
	}{
		{
			name:       "Valid bearer token",
			authHeader: "Bearer good",
			setupMock: func(m *MockIdentityResolver) {
				m.On("Resolve", mock.Anything, domain.Credentials{BearerToken: "good"}).
					Return(&domain.Identity{User: user, Method: domain.AuthMethodToken}, nil)
			},
			expectedStatus: fiber.StatusOK,
			expectedUserID: "u1",
		},
		{
			name:       "No credentials",
			authHeader: "",
			setupMock: func(m *MockIdentityResolver) {
				m.On("Resolve", mock.Anything, domain.Credentials{}).
					Return(nil, domain.NewUnauthorizedError("Not authenticated"))
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedUserID: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := new(MockIdentityResolver)
			tc.setupMock(resolver)

			var userIDLocal interface{}
			var method domain.AuthMethod
			app := newApp()
			app.Get("/protected", middleware.Protected(resolver, cookieName), func(c *fiber.Ctx) error {
				userIDLocal = c.Locals(middleware.UserIDKey)
				method = middleware.CurrentAuthMethod(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedUserID, userIDLocal)
			if tc.expectedUserID != nil {
				assert.Equal(t, domain.AuthMethodToken, method)
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	user := &domain.User{ID: "u1"}

	t.Run("Attaches identity", func(t *testing.T) {
		resolver := new(MockIdentityResolver)
		resolver.On("Resolve", mock.Anything, domain.Credentials{SessionID: "sid"}).
			Return(&domain.Identity{User: user, Method: domain.AuthMethodSession}, nil)

		var current *domain.User
		app := newApp()
		app.Get("/", middleware.OptionalAuth(resolver, cookieName), func(c *fiber.Ctx) error {
			current = middleware.CurrentUser(c)
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Cookie", cookieName+"=sid")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Same(t, user, current)
	})

	t.Run("Never rejects", func(t *testing.T) {
		resolver := new(MockIdentityResolver)
		resolver.On("Resolve", mock.Anything, mock.Anything).
			Return(nil, domain.NewUnauthorizedError("Not authenticated"))

		nextCalled := false
		var userID string
		app := newApp()
		app.Get("/", middleware.OptionalAuth(resolver, cookieName), func(c *fiber.Ctx) error {
			nextCalled = true
			userID = middleware.CurrentUserID(c)
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, nextCalled)
		assert.Empty(t, userID)
	})
}
