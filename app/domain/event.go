package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind classifies identity lifecycle events emitted by the auth stack.
type EventKind string

const (
	EventSignedIn         EventKind = "signed_in"
	EventSignedOut        EventKind = "signed_out"
	EventUserUpdated      EventKind = "user_updated"
	EventTokenRefreshed   EventKind = "token_refreshed"
	EventPasswordRecovery EventKind = "password_recovery"
	EventOther            EventKind = "other"
)

// Wire event types carry an "identity." prefix on the stream.
const eventTypePrefix = "identity."

// ParseEventKind maps a wire event type onto a kind. Unknown types map to
// EventOther; the caller keeps the raw value for logging.
func ParseEventKind(eventType string) EventKind {
	if len(eventType) > len(eventTypePrefix) && eventType[:len(eventTypePrefix)] == eventTypePrefix {
		eventType = eventType[len(eventTypePrefix):]
	}
	switch EventKind(eventType) {
	case EventSignedIn, EventSignedOut, EventUserUpdated, EventTokenRefreshed, EventPasswordRecovery:
		return EventKind(eventType)
	default:
		return EventOther
	}
}

// IdentityEvent is one identity lifecycle notification consumed from the
// platform event stream. ClientID targets the shell of the client that
// triggered the event; UserID targets every shell bound to the user. Events
// carrying neither are provider-wide notices.
type IdentityEvent struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"kind"`
	RawKind    string    `json:"raw_kind,omitempty"`
	ClientID   string    `json:"client_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Session    *Session  `json:"session,omitempty"`
	Source     string    `json:"source,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewIdentityEvent creates an event with a fresh id and timestamp.
func NewIdentityEvent(kind EventKind, clientID, userID string, session *Session) *IdentityEvent {
	return &IdentityEvent{
		ID:         uuid.New().String(),
		Kind:       kind,
		RawKind:    string(kind),
		ClientID:   clientID,
		UserID:     userID,
		Session:    session,
		OccurredAt: time.Now(),
	}
}

// Validate checks the fields a consumable event must carry.
func (e *IdentityEvent) Validate() error {
	if e == nil || e.ID == "" || e.Kind == "" {
		return ErrInvalidEvent
	}
	return nil
}

// HasSession reports whether the event carries a live session.
func (e *IdentityEvent) HasSession() bool {
	return e.Session.IsLive()
}
