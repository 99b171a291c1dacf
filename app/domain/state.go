package domain

import "time"

// RouterState is the per-shell routing state. Onboarded is tri-state:
// nil means "not yet determined", which is distinct from a determined false.
// Navigation decisions are only acted on once Initialized is true.
type RouterState struct {
	User        *Identity
	Profile     *UserProfile
	Onboarded   *bool
	Initialized bool
}

// HasUser reports whether an identity is currently bound.
func (s *RouterState) HasUser() bool {
	return s.User != nil && s.User.ID != ""
}

// OnboardedValue resolves the tri-state flag for decision making; an
// undetermined flag counts as not onboarded.
func (s *RouterState) OnboardedValue() bool {
	return s.Onboarded != nil && *s.Onboarded
}

// SetOnboarded records a determined flag value.
func (s *RouterState) SetOnboarded(v bool) {
	s.Onboarded = &v
}

// Clear drops identity and profile and determines onboarded as false, the
// state a signed-out shell ends in.
func (s *RouterState) Clear() {
	s.User = nil
	s.Profile = nil
	s.SetOnboarded(false)
}

// OpenShellRequest carries what a client hands over when it opens a shell.
// SessionToken may be empty for a signed-out client.
type OpenShellRequest struct {
	ClientID     string
	SessionToken string
	Location     LocationGroup
}

// ShellSnapshot is the externally visible view of one shell.
type ShellSnapshot struct {
	ShellID      string         `json:"shell_id"`
	ClientID     string         `json:"client_id"`
	UserID       string         `json:"user_id,omitempty"`
	Onboarded    *bool          `json:"onboarded"`
	Initialized  bool           `json:"initialized"`
	Location     LocationGroup  `json:"location"`
	LastDecision *RouteDecision `json:"last_decision,omitempty"`
	OpenedAt     time.Time      `json:"opened_at"`
	LastSeenAt   time.Time      `json:"last_seen_at"`
}
