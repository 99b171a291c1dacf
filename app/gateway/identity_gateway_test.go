package gateway

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nav-hub/app/domain"
	mock_port "nav-hub/app/mocks"
)

func TestIdentityGateway_ResolveSession(t *testing.T) {
	liveSession := &domain.Session{
		ID:        "sess-1",
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour),
		Identity:  &domain.Identity{ID: "user-1"},
	}

	tests := []struct {
		name        string
		setupMocks  func(*mock_port.MockSessionClientPort)
		wantSession bool
		wantErr     bool
	}{
		{
			name: "live session passes through",
			setupMocks: func(client *mock_port.MockSessionClientPort) {
				client.EXPECT().
					GetSession(gomock.Any(), "token-1").
					Return(liveSession, nil)
			},
			wantSession: true,
		},
		{
			name: "missing session resolves to nil",
			setupMocks: func(client *mock_port.MockSessionClientPort) {
				client.EXPECT().
					GetSession(gomock.Any(), "token-1").
					Return(nil, domain.ErrSessionNotFound)
			},
		},
		{
			name: "inactive session resolves to nil",
			setupMocks: func(client *mock_port.MockSessionClientPort) {
				client.EXPECT().
					GetSession(gomock.Any(), "token-1").
					Return(nil, domain.ErrSessionInactive)
			},
		},
		{
			name: "expired session resolves to nil",
			setupMocks: func(client *mock_port.MockSessionClientPort) {
				client.EXPECT().
					GetSession(gomock.Any(), "token-1").
					Return(nil, domain.ErrSessionExpired)
			},
		},
		{
			name: "session that is no longer live resolves to nil",
			setupMocks: func(client *mock_port.MockSessionClientPort) {
				client.EXPECT().
					GetSession(gomock.Any(), "token-1").
					Return(&domain.Session{ID: "sess-2", Active: false}, nil)
			},
		},
		{
			name: "fetch failure surfaces as an error",
			setupMocks: func(client *mock_port.MockSessionClientPort) {
				client.EXPECT().
					GetSession(gomock.Any(), "token-1").
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mock_port.NewMockSessionClientPort(ctrl)
			tt.setupMocks(mockClient)

			gateway := NewIdentityGateway(mockClient, testLogger())
			session, err := gateway.ResolveSession(context.Background(), "token-1")

			if tt.wantErr {
				require.Error(t, err)

				var navErr *domain.NavError
				require.ErrorAs(t, err, &navErr)
				assert.Equal(t, domain.ErrCodeSessionFetch, navErr.Code)
				return
			}

			require.NoError(t, err)
			if tt.wantSession {
				require.NotNil(t, session)
				assert.Equal(t, "user-1", session.UserID())
			} else {
				assert.Nil(t, session)
			}
		})
	}
}

func TestIdentityGateway_ResolveSession_KeepsExistingNavErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cause := errors.New("dial tcp: connection refused")
	fetchErr := domain.NewNavError(domain.ErrCodeSessionFetch, "failed to call kratos whoami", cause)

	mockClient := mock_port.NewMockSessionClientPort(ctrl)
	mockClient.EXPECT().
		GetSession(gomock.Any(), "token-1").
		Return(nil, fetchErr)

	gateway := NewIdentityGateway(mockClient, testLogger())
	session, err := gateway.ResolveSession(context.Background(), "token-1")

	assert.Nil(t, session)
	// Already classified upstream, not wrapped a second time
	assert.Same(t, fetchErr, err)
	assert.ErrorIs(t, err, cause)
}

func TestIdentityGateway_HealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock_port.NewMockSessionClientPort(ctrl)
	mockClient.EXPECT().HealthCheck(gomock.Any()).Return(nil)

	gateway := NewIdentityGateway(mockClient, testLogger())
	assert.NoError(t, gateway.HealthCheck(context.Background()))
}

// Helper function to create a test logger
func testLogger() *slog.Logger {
	return slog.Default()
}
