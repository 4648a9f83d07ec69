package middleware

import (
	"strings"
	"trackme/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	TokenQueryParam     = "token"

	UserIDKey     = "userID" // Key for storing UserID in fiber.Ctx locals
	UserKey       = "user"
	AuthMethodKey = "authMethod"
)

// CredentialsFromRequest collects every credential the request carries.
func CredentialsFromRequest(c *fiber.Ctx, cookieName string) domain.Credentials {
	creds := domain.Credentials{
		SessionID:  c.Cookies(cookieName),
		QueryToken: strings.TrimSpace(c.Query(TokenQueryParam)),
	}
	if authHeader := c.Get(AuthorizationHeader); strings.HasPrefix(authHeader, BearerSchema) {
		creds.BearerToken = strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
	}
	return creds
}

// Protected requires an identity from the session cookie, a bearer header or
// the token query parameter, in that order. Unauthenticated requests get 401
// through the central error handler.
func Protected(resolver domain.IdentityResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := resolver.Resolve(c.UserContext(), CredentialsFromRequest(c, cookieName))
		if err != nil {
			return err
		}
		setIdentity(c, identity)
		return c.Next()
	}
}

// OptionalAuth attaches the identity when one resolves and never rejects.
func OptionalAuth(resolver domain.IdentityResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity, err := resolver.Resolve(c.UserContext(), CredentialsFromRequest(c, cookieName)); err == nil {
			setIdentity(c, identity)
		}
		return c.Next()
	}
}

func setIdentity(c *fiber.Ctx, identity *domain.Identity) {
	c.Locals(UserIDKey, identity.User.ID)
	c.Locals(UserKey, identity.User)
	c.Locals(AuthMethodKey, identity.Method)
}

// CurrentUserID returns "" on unauthenticated requests.
func CurrentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}

func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(UserKey).(*domain.User)
	return user
}

func CurrentAuthMethod(c *fiber.Ctx) domain.AuthMethod {
	method, _ := c.Locals(AuthMethodKey).(domain.AuthMethod)
	return method
}
