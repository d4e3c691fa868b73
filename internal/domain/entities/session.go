package entities

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session maps an opaque token to a logged-in username.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means the session never expires
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
