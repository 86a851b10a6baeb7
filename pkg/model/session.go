package model

import "time"

// Session is an authenticated operator session.
type Session struct {
	ID         string
	OperatorID string
	ExpiresAt  time.Time
	LastSeenAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the session is no longer valid at t.
func (s *Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && !t.Before(s.ExpiresAt)
}
