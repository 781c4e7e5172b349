package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one browser's authentication state. It replaces the token the
// web client used to keep in local storage.
type Session struct {
	ID          uuid.UUID
	AccessToken string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates an anonymous session.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasToken reports whether an access token is stored.
func (s *Session) HasToken() bool {
	return s.AccessToken != ""
}

// IsExpired reports whether the stored token's expiry has passed.
// A session without an expiry never expires.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// IsAuthenticated reports whether the session holds a live token.
func (s *Session) IsAuthenticated(now time.Time) bool {
	return s.HasToken() && !s.IsExpired(now)
}

// SignIn stores a token and its expiry.
func (s *Session) SignIn(token string, expiresAt time.Time) {
	s.AccessToken = token
	s.ExpiresAt = expiresAt
	s.UpdatedAt = time.Now().UTC()
}

// SignOut clears the stored token.
func (s *Session) SignOut() {
	s.AccessToken = ""
	s.ExpiresAt = time.Time{}
	s.UpdatedAt = time.Now().UTC()
}
