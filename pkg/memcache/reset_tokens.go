// pkg/mem/reset_tokens.go
package mem

import (
	"sync"
	"time"
)

type ResetTokenStore interface {
	Set(token string, accountEmail string, ttl time.Duration)

	// Consume returns the email bound to token if not expired and removes the
	// token (single-use). Returns "" if missing/expired.
	Consume(token string) string

	Peek(token string) (string, bool)
}

type entry struct {
	email     string
	expiresAt time.Time
}

type ResetTokens struct {
	mu    sync.RWMutex
	data  map[string]entry
	nowFn func() time.Time
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{
		data:  make(map[string]entry),
		nowFn: time.Now,
	}
}

// SetNowFunc overrides the clock; tests use it to expire tokens.
func (s *ResetTokens) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.nowFn = now
}

func (s *ResetTokens) Set(token string, accountEmail string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.data[token] = entry{
		email:     accountEmail,
		expiresAt: s.nowFn().Add(ttl),
	}
}

func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if s.nowFn().After(e.expiresAt) {
		return ""
	}
	return e.email
}

func (s *ResetTokens) Peek(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[token]
	if !ok || s.nowFn().After(e.expiresAt) {
		return "", false
	}
	return e.email, true
}

// purgeLocked drops expired entries so abandoned tokens do not accumulate.
func (s *ResetTokens) purgeLocked() {
	now := s.nowFn()
	for token, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, token)
		}
	}
}
