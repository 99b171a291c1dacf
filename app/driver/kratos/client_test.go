package kratos

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nav-hub/app/domain"
	"nav-hub/app/utils/logger"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		wantError bool
	}{
		{
			name:      "valid kratos configuration",
			publicURL: "http://kratos-public:4433",
			wantError: false,
		},
		{
			name:      "empty public URL",
			publicURL: "",
			wantError: true,
		},
		{
			name:      "invalid public URL",
			publicURL: "invalid-url",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := logger.NewWithWriter("info", &buf)
			require.NoError(t, err)

			client, err := NewClient(tt.publicURL, log)

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
				assert.Equal(t, tt.publicURL, client.PublicURL())
			}
		})
	}
}

func TestURLValidation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		isValid bool
	}{
		{"valid HTTP URL", "http://localhost:4433", true},
		{"valid HTTPS URL", "https://kratos.example.com", true},
		{"invalid URL", "invalid-url", false},
		{"empty URL", "", false},
		{"URL without protocol", "localhost:4433", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, isValidURL(tt.url))
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	log, err := logger.NewWithWriter("error", &buf)
	require.NoError(t, err)

	client, err := NewClient(server.URL, log)
	require.NoError(t, err)
	return client
}

func whoamiJSON(active bool, expiresAt time.Time) string {
	return fmt.Sprintf(`{
		"id": "sess-1",
		"active": %t,
		"expires_at": %q,
		"authenticated_at": %q,
		"identity": {
			"id": "user-1",
			"schema_id": "default",
			"schema_url": "http://kratos-public:4433/schemas/default",
			"traits": {"email": "momo@example.com"}
		}
	}`, active, expiresAt.Format(time.RFC3339), time.Now().Format(time.RFC3339))
}

func TestClient_GetSession(t *testing.T) {
	t.Run("live session is mapped", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "token-1", r.Header.Get("X-Session-Token"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, whoamiJSON(true, time.Now().Add(time.Hour)))
		})

		session, err := client.GetSession(context.Background(), "token-1")
		require.NoError(t, err)
		require.NotNil(t, session)

		assert.Equal(t, "sess-1", session.ID)
		assert.True(t, session.IsLive())
		assert.Equal(t, "user-1", session.UserID())
		assert.Equal(t, "momo@example.com", session.Identity.Email)
	})

	t.Run("unauthorized maps to session not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": {"code": 401, "message": "unauthorized"}}`)
		})

		session, err := client.GetSession(context.Background(), "token-1")
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("inactive session", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, whoamiJSON(false, time.Now().Add(time.Hour)))
		})

		session, err := client.GetSession(context.Background(), "token-1")
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrSessionInactive)
	})

	t.Run("expired session", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, whoamiJSON(true, time.Now().Add(-time.Hour)))
		})

		session, err := client.GetSession(context.Background(), "token-1")
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("empty token never hits the provider", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		session, err := client.GetSession(context.Background(), "")
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("transport failure is a fetch error", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := logger.NewWithWriter("error", &buf)
		require.NoError(t, err)

		// nothing listens on this port
		client, err := NewClient("http://127.0.0.1:1", log)
		require.NoError(t, err)

		session, err := client.GetSession(context.Background(), "token-1")
		assert.Nil(t, session)
		require.Error(t, err)

		var navErr *domain.NavError
		require.ErrorAs(t, err, &navErr)
		assert.Equal(t, domain.ErrCodeSessionFetch, navErr.Code)
	})
}
