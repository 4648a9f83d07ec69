package middleware

import (
	"errors"
	"net/http"
	"trackme/internal/domain"
	"trackme/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorHandler is a centralized error handler for the Fiber app
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "Request validation failed",
				Code:    string(domain.ErrValidation),
				Details: []domain.FieldError(validationErrs),
			})
		}

		var trackedErr *domain.AlreadyTrackedError
		if errors.As(err, &trackedErr) {
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Error: "Problem already tracked",
				Code:  string(domain.ErrAlreadyTracked),
			})
		}

		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) {
			statusCode := mapUpstreamErrorToHTTPStatus(upstreamErr)
			logger.Warn("Upstream error occurred",
				zap.String("platform", string(upstreamErr.Platform)),
				zap.String("reason", string(upstreamErr.Reason)),
				zap.Int("status", statusCode),
				zap.Error(upstreamErr.Err),
			)
			return c.Status(statusCode).JSON(ErrorResponse{
				Error: upstreamErr.Message,
				Code:  string(upstreamErr.Code()),
				Details: fiber.Map{
					"platform": upstreamErr.Platform,
					"reason":   upstreamErr.Reason,
				},
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)
			if statusCode >= http.StatusInternalServerError {
				logger.Error("Internal error occurred",
					zap.String("path", c.Path()),
					zap.String("message", domainErr.Message),
					zap.Error(domainErr.Err),
				)
				return c.Status(statusCode).JSON(ErrorResponse{
					Error: "Internal server error",
					Code:  string(domain.ErrInternal),
				})
			}

			logger.Info("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
			)
			response := ErrorResponse{
				Error: domainErr.Message,
				Code:  string(domainErr.Code),
			}
			if len(domainErr.Context) > 0 {
				response.Details = domainErr.Context
			}
			return c.Status(statusCode).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Error: fiberErr.Message,
				Code:  "HTTP_ERROR",
			})
		}

		logger.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
			Code:  string(domain.ErrInternal),
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrAlreadyTracked:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func mapUpstreamErrorToHTTPStatus(err *domain.UpstreamError) int {
	switch err.Reason {
	case domain.UpstreamNotFound:
		return http.StatusNotFound
	case domain.UpstreamRateLimited:
		return http.StatusTooManyRequests
	case domain.UpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
