package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"trackme/internal/cache"
	"trackme/internal/domain"
	"trackme/internal/logger"
	"trackme/internal/util"

	"go.uber.org/zap"
)

// SessionStore persists login sessions keyed by the cookie session id.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	// UserID returns "" when the session does not exist or has expired. A
	// hit slides the session expiry forward by the configured ttl.
	UserID(ctx context.Context, sessionID string) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

type sessionRecord struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionStoreImpl struct {
	cache domain.Cache
	ttl   time.Duration
	newID func() (string, error)
	now   func() time.Time
}

// NewSessionStore creates a new instance of SessionStore backed by cache.
func NewSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	return &sessionStoreImpl{
		cache: c,
		ttl:   ttl,
		newID: util.NewSessionID,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *sessionStoreImpl) Create(ctx context.Context, userID string) (string, error) {
	sessionID, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	payload, err := json.Marshal(sessionRecord{UserID: userID, CreatedAt: s.now()})
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.cache.Set(ctx, cache.SessionKey(sessionID), string(payload), s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionID, nil
}

func (s *sessionStoreImpl) UserID(ctx context.Context, sessionID string) (string, error) {
	if !util.IsULID(sessionID) {
		return "", nil
	}
	raw, err := s.cache.Get(ctx, cache.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return "", fmt.Errorf("failed to decode session: %w", err)
	}

	if err := s.cache.Expire(ctx, cache.SessionKey(sessionID), s.ttl); err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "", nil
		}
		logger.Get().Warn("Failed to refresh session expiry", zap.Error(err))
	}
	return record.UserID, nil
}

func (s *sessionStoreImpl) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, cache.SessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
