// Package client is the Go counterpart of the admin console's browser
// client: it stores the session token, attaches it to outgoing requests,
// reacts to authentication failures and gates navigation using the same
// authorization predicates the server enforces. The client gate is advisory,
// for UX; the server remains authoritative.
package client

import (
	"sync"
	"time"
)

// TokenStore is where the client keeps the current session token, the
// analogue of browser session storage. Reads and writes are atomic single
// operations, so callers need no further coordination.
type TokenStore interface {
	Set(token string, expiresAt time.Time)
	Get() (token string, expiresAt time.Time, ok bool)
	Clear()
}

// MemoryStore is an in-process TokenStore.
type MemoryStore struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set replaces the stored token.
func (s *MemoryStore) Set(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
}

// Get returns the stored token, if any.
func (s *MemoryStore) Get() (string, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", time.Time{}, false
	}
	return s.token, s.expiresAt, true
}

// Clear discards the stored token. Logout is exactly this: a client-local
// discard with no server-side effect.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}
