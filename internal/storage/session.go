package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/brainbuzz/internal/domain/entities"
)

// SessionStore is an in-memory map from session ID to username. All
// operations go through one mutex. Sessions are lost on restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entities.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a SessionStore. A ttl of zero keeps sessions for
// the lifetime of the process.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]entities.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create inserts a session or overwrites the username of an existing one.
func (s *SessionStore) Create(_ context.Context, id, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session := entities.Session{
		ID:        id,
		Username:  username,
		CreatedAt: now,
	}
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		session.ExpiresAt = &exp
	}

	s.sessions[id] = session
	return nil
}

// Remove deletes a session if present.
func (s *SessionStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// IsLoggedIn reports whether an unexpired session exists for id.
func (s *SessionStore) IsLoggedIn(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.lookup(id)
	return ok, nil
}

// GetUsername returns the username of an unexpired session.
func (s *SessionStore) GetUsername(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookup(id)
	if !ok {
		return "", entities.ErrSessionNotFound
	}
	return session.Username, nil
}

// PurgeExpired drops expired sessions and returns how many were removed.
func (s *SessionStore) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// lookup must be called with mu held.
func (s *SessionStore) lookup(id string) (entities.Session, bool) {
	session, ok := s.sessions[id]
	if !ok || session.Expired(s.now()) {
		return entities.Session{}, false
	}
	return session, true
}
