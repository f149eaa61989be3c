package oauth2client

import (
	"sync"
	"time"
)

// DefaultExpiryLeeway is the safety margin subtracted from a token's
// lifetime. A token inside the margin counts as expired so it cannot lapse
// mid-flight between the validity check and the request that uses it.
const DefaultExpiryLeeway = 10 * time.Second

// Store holds the process-wide cached token. It starts empty, is set by the
// first successful fetch, and is replaced wholesale on every refresh.
// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current *Token
	leeway  time.Duration
}

// StoreOption is a functional option for configuring a Store.
type StoreOption func(*Store)

// WithExpiryLeeway overrides the expiry safety margin.
func WithExpiryLeeway(leeway time.Duration) StoreOption {
	return func(s *Store) {
		s.leeway = leeway
	}
}

// NewStore creates an empty token store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		leeway: DefaultExpiryLeeway,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Valid reports whether a token is cached and its expiry, less the leeway,
// is still in the future.
func (s *Store) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.valid()
}

// Cached returns the current token. It fails with ErrNoTokenCached when no
// valid token is held; callers are expected to check Valid first or to fall
// back to a fetch.
func (s *Store) Cached() (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.valid() {
		return Token{}, ErrNoTokenCached
	}

	return *s.current, nil
}

// Update unconditionally replaces the cached token.
func (s *Store) Update(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &token
}

// valid must be called with at least a read lock held.
func (s *Store) valid() bool {
	if s.current == nil {
		return false
	}

	return time.Until(s.current.expiresAt) > s.leeway
}
