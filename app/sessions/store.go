package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"miniblog/app/models"
)

// DefaultTTL is how long a session lives when no TTL is configured.
const DefaultTTL = 24 * time.Hour

type entry struct {
	session   models.Session
	flash     string
	expiresAt time.Time
}

// Store holds server-side sessions keyed by opaque random tokens. Expiry
// is checked lazily on read.
type Store struct {
	mutex   sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
}

// NewStore returns a new session store.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

// Create stores a snapshot of the authenticated user and returns the token
// identifying the new session.
func (s *Store) Create(session models.Session) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entries[token] = &entry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

// Get returns the session for token, or nil when the token is unknown or
// expired.
func (s *Store) Get(token string) *models.Session {
	s.mutex.RLock()
	e, ok := s.entries[token]
	s.mutex.RUnlock()

	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		s.Destroy(token)
		return nil
	}

	session := e.session
	return &session
}

// Destroy removes the session. Destroying an unknown token is a no-op, so
// logout is idempotent.
func (s *Store) Destroy(token string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.entries, token)
}

// SetFlash attaches a one-shot message to the session, to be shown once
// after the next redirect.
func (s *Store) SetFlash(token, message string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if e, ok := s.entries[token]; ok {
		e.flash = message
	}
}

// PopFlash returns the pending flash message and clears it. Reading the
// flash consumes it.
func (s *Store) PopFlash(token string) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return ""
	}
	message := e.flash
	e.flash = ""
	return message
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
