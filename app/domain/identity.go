package domain

import (
	"time"
)

// Identity is the user identity carried by a live authentication session.
// It exists only while the identity provider holds a valid session for the
// user; sign-out or expiry destroys it.
type Identity struct {
	ID     string         `json:"id"`
	Email  string         `json:"email,omitempty"`
	Traits map[string]any `json:"traits,omitempty"`
}

// Session is a live authentication credential associating a client with an
// identity.
type Session struct {
	ID              string    `json:"id"`
	Active          bool      `json:"active"`
	ExpiresAt       time.Time `json:"expires_at,omitempty"`
	AuthenticatedAt time.Time `json:"authenticated_at,omitempty"`
	Identity        *Identity `json:"identity,omitempty"`
}

// IsExpired checks if the session has passed its expiry time
func (s *Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// IsLive reports whether the session still authenticates a user. Inactive or
// expired sessions, and sessions without an identity, resolve to "no user".
func (s *Session) IsLive() bool {
	if s == nil {
		return false
	}
	return s.Active && !s.IsExpired() && s.Identity != nil && s.Identity.ID != ""
}

// UserID returns the identity id of a live session, or "" when there is none.
func (s *Session) UserID() string {
	if !s.IsLive() {
		return ""
	}
	return s.Identity.ID
}
