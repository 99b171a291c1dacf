package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"nav-hub/app/port"
)

// AuthMiddleware authenticates requests against the identity provider.
type AuthMiddleware struct {
	identity port.IdentityGateway
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(identity port.IdentityGateway, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
		logger:   logger,
	}
}

// RequireAuth resolves the request's session and rejects requests without a
// live one. The resolved user id lands in the echo context as "user_id".
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sessionToken := ExtractSessionToken(c)
			if sessionToken == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			session, err := m.identity.ResolveSession(ctx, sessionToken)
			if err != nil {
				m.logger.Error("session resolution failed", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			if session == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set("user_id", session.Identity.ID)
			c.Set("session_id", session.ID)

			return next(c)
		}
	}
}

// RequireSameUser rejects requests whose authenticated user differs from the
// :user_id path parameter. Must run after RequireAuth.
func (m *AuthMiddleware) RequireSameUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authenticated, _ := c.Get("user_id").(string)
			if authenticated == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if authenticated != c.Param("user_id") {
				m.logger.Warn("cross-user access rejected",
					"authenticated_user", authenticated,
					"requested_user", c.Param("user_id"))
				return echo.NewHTTPError(http.StatusForbidden, "cannot access another user's profile")
			}

			return next(c)
		}
	}
}

// ExtractSessionToken extracts the session credential from a request.
// Browser requests carry the Kratos session cookie; API clients use the
// Authorization or X-Session-Token header.
func ExtractSessionToken(c echo.Context) string {
	if cookieHeader := c.Request().Header.Get("Cookie"); cookieHeader != "" && strings.Contains(cookieHeader, "ory_kratos_session") {
		return cookieHeader
	}

	auth := c.Request().Header.Get("Authorization")
	if auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer ")
		}
		return auth
	}

	return c.Request().Header.Get("X-Session-Token")
}
