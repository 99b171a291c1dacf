package domain

import "errors"

// Routing and session errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionInactive = errors.New("session inactive")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyPatch      = errors.New("profile patch is empty")

	// Shell errors
	ErrShellNotFound = errors.New("shell not found")
	ErrShellClosed   = errors.New("shell closed")

	// Event errors
	ErrInvalidEvent    = errors.New("invalid event")
	ErrInvalidLocation = errors.New("invalid location group")

	// General errors
	ErrInternal = errors.New("internal error")
)

// NavError represents routing-related errors with additional context
type NavError struct {
	Code    string
	Message string
	Cause   error
}

func (e *NavError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *NavError) Unwrap() error {
	return e.Cause
}

// NewNavError creates a new routing error
func NewNavError(code, message string, cause error) *NavError {
	return &NavError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error codes for the async boundaries the router touches
const (
	ErrCodeSessionFetch     = "SESSION_FETCH_FAILED"
	ErrCodeProfileFetch     = "PROFILE_FETCH_FAILED"
	ErrCodeProfileUpdate    = "PROFILE_UPDATE_FAILED"
	ErrCodeListenerCallback = "LISTENER_CALLBACK_FAILED"
	ErrCodeShellNotFound    = "SHELL_NOT_FOUND"
	ErrCodeProfileNotFound  = "PROFILE_NOT_FOUND"
	ErrCodeInvalidEvent     = "INVALID_EVENT"
	ErrCodeInvalidLocation  = "INVALID_LOCATION"
	ErrCodeInternal         = "INTERNAL_ERROR"
)
