package gateway

import (
	"context"
	"errors"
	"log/slog"

	"nav-hub/app/domain"
	"nav-hub/app/port"
)

// IdentityGateway implements port.IdentityGateway
// It acts as an anti-corruption layer between the router and the identity
// provider client, folding every "no live session" outcome into a nil session
type IdentityGateway struct {
	sessionClient port.SessionClientPort
	logger        *slog.Logger
}

// NewIdentityGateway creates a new IdentityGateway instance
func NewIdentityGateway(sessionClient port.SessionClientPort, logger *slog.Logger) *IdentityGateway {
	return &IdentityGateway{
		sessionClient: sessionClient,
		logger:        logger.With("component", "identity_gateway"),
	}
}

// ResolveSession asks the identity provider for the session behind a token.
// Missing, inactive and expired sessions all resolve to (nil, nil): the
// router treats them as "no user". Errors are reserved for fetch failures.
func (g *IdentityGateway) ResolveSession(ctx context.Context, sessionToken string) (*domain.Session, error) {
	session, err := g.sessionClient.GetSession(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) ||
			errors.Is(err, domain.ErrSessionInactive) ||
			errors.Is(err, domain.ErrSessionExpired) {
			g.logger.Debug("no live session for token", "reason", err.Error())
			return nil, nil
		}

		g.logger.Error("failed to resolve session", "error", err)

		var navErr *domain.NavError
		if errors.As(err, &navErr) {
			return nil, err
		}
		return nil, domain.NewNavError(domain.ErrCodeSessionFetch, "failed to resolve session", err)
	}

	if !session.IsLive() {
		g.logger.Debug("session resolved but no longer live", "session_id", session.ID)
		return nil, nil
	}

	return session, nil
}

// HealthCheck checks connectivity to the identity provider
func (g *IdentityGateway) HealthCheck(ctx context.Context) error {
	return g.sessionClient.HealthCheck(ctx)
}
