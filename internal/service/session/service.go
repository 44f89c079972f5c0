// Package session is the auth gate for cart-sensitive flows. The access
// credential itself is issued by the remote API at login and stored in a
// cookie; this service resolves a stored token to its user, with a short
// in-memory cache so repeated surfaces do not re-hit /user/me on every
// render.
package session

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

// CookieName is the persisted credential's cookie.
const CookieName = "accessToken"

// TTL is the credential cookie's lifetime, matching the login flow's 30-day
// expiry.
const TTL = 30 * 24 * time.Hour

type userSource interface {
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

type cachedUser struct {
	user      domain.User
	expiresAt time.Time
}

type Service struct {
	api      userSource
	cacheTTL time.Duration
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedUser
}

func New(api userSource) *Service {
	return &Service{
		api:      api,
		cacheTTL: 5 * time.Minute,
		now:      time.Now,
		cache:    make(map[string]cachedUser),
	}
}

// User resolves the token to its user. An empty token short-circuits with
// domain.ErrNoSession before any network call.
func (s *Service) User(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	s.mu.RLock()
	c, ok := s.cache[token]
	s.mu.RUnlock()
	if ok {
		if s.now().Before(c.expiresAt) {
			u := c.user
			return &u, nil
		}
		s.mu.Lock()
		delete(s.cache, token)
		s.mu.Unlock()
	}

	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[token] = cachedUser{user: *user, expiresAt: s.now().Add(s.cacheTTL)}
	s.mu.Unlock()
	return user, nil
}

// Forget drops the cached user for a token, used at logout.
func (s *Service) Forget(token string) {
	s.mu.Lock()
	delete(s.cache, token)
	s.mu.Unlock()
}

// TTLSeconds is the cookie Max-Age for the credential.
func (s *Service) TTLSeconds() int {
	return int(TTL.Seconds())
}
