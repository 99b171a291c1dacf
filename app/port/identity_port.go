package port

//go:generate mockgen -source=identity_port.go -destination=../mocks/mock_identity_port.go

import (
	"context"

	"nav-hub/app/domain"
)

// SessionClientPort defines the identity provider session interface
type SessionClientPort interface {
	GetSession(ctx context.Context, sessionToken string) (*domain.Session, error)
	HealthCheck(ctx context.Context) error
}

// IdentityGateway resolves sessions for the router. A nil session with a nil
// error means the provider holds no live session for the token; errors are
// reserved for fetch failures (SESSION_FETCH_FAILED).
type IdentityGateway interface {
	ResolveSession(ctx context.Context, sessionToken string) (*domain.Session, error)
	HealthCheck(ctx context.Context) error
}
