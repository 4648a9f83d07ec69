package adapter

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
	"trackme/internal/config"
	"trackme/internal/domain"

	"golang.org/x/time/rate"
)

const maxUpstreamBody = 4 << 20

func newUpstreamClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// newUpstreamLimiter returns nil when the config sets no rate.
func newUpstreamLimiter(cfg config.FetcherConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}

// waitForSlot blocks until the limiter admits one call. A wait that cannot
// finish before ctx ends is reported as UpstreamRateLimited.
func waitForSlot(ctx context.Context, platform domain.Platform, limiter *rate.Limiter) *domain.UpstreamError {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return domain.NewUpstreamError(platform, domain.UpstreamRateLimited, "too many upstream requests, try again later", err)
	}
	return nil
}

// transportError classifies a failed round trip. Deadline errors from either
// the client timeout or the caller's context become UpstreamTimeout.
func transportError(platform domain.Platform, err error) *domain.UpstreamError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewUpstreamError(platform, domain.UpstreamTimeout, "request timed out", err)
	}
	return domain.NewUpstreamError(platform, domain.UpstreamServerError, "request failed", err)
}

// statusError maps a non-200 status. ok is false for 200.
func statusError(platform domain.Platform, status int) (*domain.UpstreamError, bool) {
	switch {
	case status == http.StatusOK:
		return nil, false
	case status == http.StatusNotFound:
		return domain.NewUpstreamError(platform, domain.UpstreamNotFound, "problem not found", nil), true
	case status == http.StatusTooManyRequests:
		return domain.NewUpstreamError(platform, domain.UpstreamRateLimited, "rate limited, try again later", nil), true
	case status >= 500:
		return domain.NewUpstreamError(platform, domain.UpstreamServerError, http.StatusText(status), nil), true
	default:
		return domain.NewUpstreamError(platform, domain.UpstreamBadResponse, "unexpected status "+http.StatusText(status), nil), true
	}
}
