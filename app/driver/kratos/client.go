package kratos

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	kratosclient "github.com/ory/kratos-client-go"

	"nav-hub/app/domain"
)

// Client wraps the Kratos public API for session resolution
type Client struct {
	api       *kratosclient.APIClient
	publicURL string
	logger    *slog.Logger
}

// NewClient creates a new Kratos client against the public endpoint
func NewClient(publicURL string, logger *slog.Logger) (*Client, error) {
	if !isValidURL(publicURL) {
		return nil, fmt.Errorf("invalid Kratos public URL: %s", publicURL)
	}

	configuration := kratosclient.NewConfiguration()
	configuration.Servers = []kratosclient.ServerConfiguration{
		{
			URL: publicURL,
		},
	}
	configuration.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	logger.Info("Kratos client initialized", "public_url", publicURL)

	return &Client{
		api:       kratosclient.NewAPIClient(configuration),
		publicURL: publicURL,
		logger:    logger,
	}, nil
}

// GetSession resolves a session token via the whoami endpoint. Invalid or
// rejected tokens map to domain.ErrSessionNotFound, inactive and expired
// sessions to their respective sentinels; only transport level failures
// surface as fetch errors.
func (c *Client) GetSession(ctx context.Context, sessionToken string) (*domain.Session, error) {
	if sessionToken == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, resp, err := c.api.FrontendAPI.ToSession(ctx).XSessionToken(sessionToken).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.NewNavError(domain.ErrCodeSessionFetch, "failed to call kratos whoami", err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrSessionInactive
	}
	if session.Identity == nil {
		return nil, domain.ErrSessionNotFound
	}

	mapped := toDomainSession(session)
	if mapped.IsExpired() {
		return nil, domain.ErrSessionExpired
	}

	return mapped, nil
}

// HealthCheck checks if Kratos is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, response, err := c.api.MetadataAPI.GetVersion(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to connect to Kratos public API: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("Kratos public API returned status %d", response.StatusCode)
	}

	return nil
}

// PublicURL returns the configured public endpoint
func (c *Client) PublicURL() string {
	return c.publicURL
}

func toDomainSession(session *kratosclient.Session) *domain.Session {
	mapped := &domain.Session{
		ID:     session.Id,
		Active: session.Active == nil || *session.Active,
	}
	if session.ExpiresAt != nil {
		mapped.ExpiresAt = *session.ExpiresAt
	}
	if session.AuthenticatedAt != nil {
		mapped.AuthenticatedAt = *session.AuthenticatedAt
	}

	identity := &domain.Identity{ID: session.Identity.Id}
	if traits, ok := session.Identity.Traits.(map[string]interface{}); ok {
		identity.Traits = traits
		if emailVal, ok := traits["email"].(string); ok {
			identity.Email = emailVal
		}
	}
	mapped.Identity = identity

	return mapped
}

// isValidURL validates if a URL is properly formatted
func isValidURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	return parsedURL.Scheme != "" && parsedURL.Host != ""
}
