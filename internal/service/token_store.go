package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
	"trackme/internal/domain"
)

const tokenBytes = 32

// TokenStore holds the fallback bearer tokens handed out after login.
type TokenStore interface {
	Issue(user *domain.User) (string, error)
	Lookup(token string) (*domain.User, bool)
	Revoke(token string)
	Close()
}

type tokenEntry struct {
	user      domain.User
	expiresAt time.Time
	timer     *time.Timer
}

// MemoryTokenStore keeps tokens in process memory. Each token lives for a
// fixed ttl and is evicted by its own one-shot timer; tokens are never renewed.
type MemoryTokenStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*tokenEntry
	closed  bool
}

// NewMemoryTokenStore creates a new instance of MemoryTokenStore.
func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*tokenEntry),
	}
}

// Issue stores a snapshot of user under a fresh random token.
func (s *MemoryTokenStore) Issue(user *domain.User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("cannot issue token for nil user")
	}
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", fmt.Errorf("token store is closed")
	}
	entry := &tokenEntry{user: *user, expiresAt: s.now().Add(s.ttl)}
	entry.timer = time.AfterFunc(s.ttl, func() { s.evict(token, entry) })
	s.entries[token] = entry
	return token, nil
}

// Lookup returns a copy of the user stored under token.
func (s *MemoryTokenStore) Lookup(token string) (*domain.User, bool) {
	if token == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return nil, false
	}
	if !s.now().Before(entry.expiresAt) {
		entry.timer.Stop()
		delete(s.entries, token)
		return nil, false
	}
	user := entry.user
	return &user, true
}

// Revoke deletes token and stops its eviction timer. Unknown tokens are ignored.
func (s *MemoryTokenStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[token]; ok {
		entry.timer.Stop()
		delete(s.entries, token)
	}
}

// Len reports the number of live tokens.
func (s *MemoryTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops every pending timer and drops all tokens.
func (s *MemoryTokenStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.entries {
		entry.timer.Stop()
		delete(s.entries, token)
	}
	s.closed = true
}

// evict removes token only if it still maps to the entry the timer was armed for.
func (s *MemoryTokenStore) evict(token string, entry *tokenEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.entries[token]; ok && current == entry {
		delete(s.entries, token)
	}
}
