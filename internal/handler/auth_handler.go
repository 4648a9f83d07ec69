package handler

import (
	"net/url"
	"strings"
	"time"
	"trackme/internal/config"
	"trackme/internal/domain"
	"trackme/internal/dto"
	"trackme/internal/logger"
	"trackme/internal/middleware"
	"trackme/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	authConfig  config.AuthConfig
	clientURL   string
}

func NewAuthHandler(authService service.AuthService, authConfig config.AuthConfig, clientURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		authConfig:  authConfig,
		clientURL:   strings.TrimRight(clientURL, "/"),
	}
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Redirects the user to Google's OAuth2 consent page.
// @Tags auth
// @Success 302 {string} string "Redirects to Google"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	loginURL, err := h.authService.LoginURL()
	if err != nil {
		return err
	}
	logger.Get().Debug("Google login process initiated")
	return c.Redirect(loginURL, fiber.StatusFound)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Establishes the session cookie, issues the fallback token and redirects to the client.
// @Tags auth
// @Param code query string true "Authorization code from Google"
// @Param state query string true "Signed state issued by /auth/google"
// @Success 302 {string} string "Redirects to {clientUrl}/dsa?token=..."
// @Failure 302 {string} string "Redirects to {clientUrl}/login?error=auth_failed"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	appLogger := logger.Get()

	if providerErr := c.Query("error"); providerErr != "" {
		appLogger.Warn("Google returned an OAuth error", zap.String("error", providerErr))
		return h.redirectLoginFailed(c)
	}

	result, err := h.authService.HandleCallback(c.UserContext(), c.Query("state"), c.Query("code"))
	if err != nil {
		appLogger.Warn("Google OAuth callback failed", zap.Error(err))
		return h.redirectLoginFailed(c)
	}

	c.Cookie(h.sessionCookie(result.SessionID, time.Now().Add(h.authConfig.SessionTTL)))
	return c.Redirect(h.clientURL+"/dsa?token="+url.QueryEscape(result.Token), fiber.StatusFound)
}

func (h *AuthHandler) redirectLoginFailed(c *fiber.Ctx) error {
	return c.Redirect(h.clientURL+"/login?error=auth_failed", fiber.StatusFound)
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.authConfig.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.authConfig.CookieSecure,
		SameSite: h.authConfig.CookieSameSite,
	}
}

// CheckAuth reports whether the request is authenticated.
// @Summary Check authentication
// @Description Resolves the session cookie, bearer token or token query parameter. Never returns 401.
// @Tags auth
// @Produce json
// @Param token query string false "Fallback token"
// @Success 200 {object} dto.AuthCheckResponse
// @Router /auth/check [get]
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(dto.AuthCheckResponse{Authenticated: false})
	}
	return c.JSON(dto.AuthCheckResponse{
		Authenticated: true,
		User:          dto.NewUserResponse(user),
		Method:        string(middleware.CurrentAuthMethod(c)),
	})
}

// VerifyToken looks up a fallback token.
// @Summary Verify token
// @Description Returns the user the token was issued to.
// @Tags auth
// @Produce json
// @Param token path string true "Fallback token"
// @Success 200 {object} dto.AuthCheckResponse
// @Failure 401 {object} middleware.ErrorResponse "Unknown or expired token"
// @Router /auth/token/{token} [get]
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	user, ok := h.authService.ResolveToken(c.Params("token"))
	if !ok {
		return domain.NewUnauthorizedError("Invalid or expired token")
	}
	return c.JSON(dto.AuthCheckResponse{Authenticated: true, User: dto.NewUserResponse(user)})
}

// Logout handles user logout.
// @Summary Logout user
// @Description Destroys the session, expires the cookie and revokes any presented token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} middleware.ErrorResponse "Logout failed"
// @Router /auth/logout [get]
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	creds := middleware.CredentialsFromRequest(c, h.authConfig.SessionCookieName)
	if err := h.authService.Logout(c.UserContext(), creds.SessionID, creds.BearerToken, creds.QueryToken); err != nil {
		return err
	}

	c.Cookie(h.sessionCookie("", time.Now().Add(-time.Hour)))
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
