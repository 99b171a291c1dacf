package usecase

import (
	"context"
	"testing"
	"time"

	"nav-hub/app/cache"
	"nav-hub/app/config"
	"nav-hub/app/domain"
	mock_port "nav-hub/app/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type usecaseFixture struct {
	usecase  *RouterUsecase
	identity *mock_port.MockIdentityGateway
	profiles *mock_port.MockProfileGateway
}

func testConfig() *config.Config {
	return &config.Config{
		InitTimeout:        200 * time.Millisecond,
		ShellIdleTimeout:   time.Minute,
		ShellSweepInterval: time.Hour,
	}
}

func newUsecaseFixture(t *testing.T, ctrl *gomock.Controller, cfg *config.Config) *usecaseFixture {
	t.Helper()

	profileCache := cache.NewProfileCache(time.Minute)
	t.Cleanup(profileCache.Stop)

	f := &usecaseFixture{
		identity: mock_port.NewMockIdentityGateway(ctrl),
		profiles: mock_port.NewMockProfileGateway(ctrl),
	}
	f.usecase = NewRouterUsecase(f.identity, f.profiles, profileCache, cfg, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	t.Cleanup(f.usecase.Shutdown)
	f.usecase.Start(ctx)
	return f
}

// expectSignedOut satisfies init for shells opened without a session.
func (f *usecaseFixture) expectSignedOut(token string) {
	f.identity.EXPECT().ResolveSession(gomock.Any(), token).Return(nil, nil).AnyTimes()
}

// expectSignedIn satisfies init and refetches for a user with a profile.
func (f *usecaseFixture) expectSignedIn(token, userID string, onboarded bool) {
	f.identity.EXPECT().ResolveSession(gomock.Any(), token).Return(liveSession(userID), nil).AnyTimes()
	f.profiles.EXPECT().GetProfile(gomock.Any(), userID).Return(onboardedProfile(userID, onboarded), nil).AnyTimes()
}

func openInitializedShell(t *testing.T, f *usecaseFixture, clientID, token string, location domain.LocationGroup) domain.ShellSnapshot {
	t.Helper()

	snap, err := f.usecase.OpenShell(domain.OpenShellRequest{
		ClientID:     clientID,
		SessionToken: token,
		Location:     location,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := f.usecase.GetShell(snap.ShellID)
		return err == nil && current.Initialized
	}, time.Second, 5*time.Millisecond)
	return snap
}

func TestRouterUsecase_OpenShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedIn("token-1", "user-1", true)

	snap := openInitializedShell(t, f, "client-1", "token-1", domain.GroupAuth)
	assert.NotEmpty(t, snap.ShellID)
	assert.Equal(t, "client-1", snap.ClientID)
	assert.Equal(t, 1, f.usecase.ShellCount())

	require.Eventually(t, func() bool {
		current, err := f.usecase.GetShell(snap.ShellID)
		return err == nil && current.Location == domain.GroupApp
	}, time.Second, 5*time.Millisecond)

	decision, err := f.usecase.CurrentRoute(snap.ShellID)
	require.NoError(t, err)
	assert.False(t, decision.Redirect)
	assert.Equal(t, domain.ReasonAlreadyThere, decision.Reason)
}

func TestRouterUsecase_OpenShell_DefaultsLocationToAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedOut("")

	snap, err := f.usecase.OpenShell(domain.OpenShellRequest{ClientID: "client-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.GroupAuth, snap.Location)
}

func TestRouterUsecase_OpenShell_RequiresClientID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())

	_, err := f.usecase.OpenShell(domain.OpenShellRequest{})
	require.Error(t, err)
	assert.Equal(t, 0, f.usecase.ShellCount())
}

func TestRouterUsecase_OpenShell_ReplacesExistingClientShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedOut("")

	first, err := f.usecase.OpenShell(domain.OpenShellRequest{ClientID: "client-1", Location: domain.GroupAuth})
	require.NoError(t, err)

	second, err := f.usecase.OpenShell(domain.OpenShellRequest{ClientID: "client-1", Location: domain.GroupAuth})
	require.NoError(t, err)

	assert.NotEqual(t, first.ShellID, second.ShellID)
	assert.Equal(t, 1, f.usecase.ShellCount())

	_, err = f.usecase.GetShell(first.ShellID)
	assert.ErrorIs(t, err, domain.ErrShellNotFound)

	_, err = f.usecase.GetShell(second.ShellID)
	assert.NoError(t, err)
}

func TestRouterUsecase_GetShell_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())

	_, err := f.usecase.GetShell("missing")
	assert.ErrorIs(t, err, domain.ErrShellNotFound)

	_, err = f.usecase.CurrentRoute("missing")
	assert.ErrorIs(t, err, domain.ErrShellNotFound)

	_, err = f.usecase.ReportLocation("missing", domain.GroupApp)
	assert.ErrorIs(t, err, domain.ErrShellNotFound)

	err = f.usecase.CloseShell("missing")
	assert.ErrorIs(t, err, domain.ErrShellNotFound)
}

func TestRouterUsecase_ReportLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedIn("token-1", "user-1", true)

	snap := openInitializedShell(t, f, "client-1", "token-1", domain.GroupApp)

	// The client reports it moved to auth; the decision pushes it back
	after, err := f.usecase.ReportLocation(snap.ShellID, domain.GroupAuth)
	require.NoError(t, err)
	require.NotNil(t, after.LastDecision)
	assert.Equal(t, domain.GroupApp, after.Location)
}

func TestRouterUsecase_CloseShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedOut("")

	snap, err := f.usecase.OpenShell(domain.OpenShellRequest{ClientID: "client-1", Location: domain.GroupAuth})
	require.NoError(t, err)

	require.NoError(t, f.usecase.CloseShell(snap.ShellID))
	assert.Equal(t, 0, f.usecase.ShellCount())

	// Reopening the client works after an explicit close
	_, err = f.usecase.OpenShell(domain.OpenShellRequest{ClientID: "client-1", Location: domain.GroupAuth})
	require.NoError(t, err)
}

func TestRouterUsecase_HandleIdentityEvent_TargetsClientShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedOut("")
	f.profiles.EXPECT().GetProfile(gomock.Any(), "user-x").Return(onboardedProfile("user-x", true), nil).AnyTimes()

	a := openInitializedShell(t, f, "client-a", "", domain.GroupAuth)
	b := openInitializedShell(t, f, "client-b", "", domain.GroupAuth)

	event := domain.NewIdentityEvent(domain.EventSignedIn, "client-a", "user-x", liveSession("user-x"))
	require.NoError(t, f.usecase.HandleIdentityEvent(context.Background(), *event))

	require.Eventually(t, func() bool {
		snap, err := f.usecase.GetShell(a.ShellID)
		return err == nil && snap.UserID == "user-x"
	}, time.Second, 5*time.Millisecond)

	other, err := f.usecase.GetShell(b.ShellID)
	require.NoError(t, err)
	assert.Empty(t, other.UserID, "event targeted at one client must not leak to another")
}

func TestRouterUsecase_HandleIdentityEvent_TargetsUserShells(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedIn("token-x", "user-x", true)
	f.expectSignedOut("")

	a := openInitializedShell(t, f, "client-a", "token-x", domain.GroupApp)
	b := openInitializedShell(t, f, "client-b", "token-x", domain.GroupApp)
	c := openInitializedShell(t, f, "client-c", "", domain.GroupAuth)

	// A sign-out addressed to the user clears every shell bound to them
	event := domain.NewIdentityEvent(domain.EventSignedOut, "", "user-x", nil)
	require.NoError(t, f.usecase.HandleIdentityEvent(context.Background(), *event))

	for _, shellID := range []string{a.ShellID, b.ShellID} {
		require.Eventually(t, func() bool {
			snap, err := f.usecase.GetShell(shellID)
			return err == nil && snap.UserID == "" && snap.Location == domain.GroupAuth
		}, time.Second, 5*time.Millisecond)
	}

	// The signed-out shell was never bound to user-x and stays untouched
	snap, err := f.usecase.GetShell(c.ShellID)
	require.NoError(t, err)
	assert.Empty(t, snap.UserID)
}

func TestRouterUsecase_HandleIdentityEvent_BroadcastsWithoutAudience(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedIn("token-x", "user-x", true)
	f.expectSignedIn("token-y", "user-y", true)

	a := openInitializedShell(t, f, "client-a", "token-x", domain.GroupApp)
	b := openInitializedShell(t, f, "client-b", "token-y", domain.GroupApp)

	// Provider-wide sign-out reaches every shell
	event := domain.NewIdentityEvent(domain.EventSignedOut, "", "", nil)
	require.NoError(t, f.usecase.HandleIdentityEvent(context.Background(), *event))

	for _, shellID := range []string{a.ShellID, b.ShellID} {
		require.Eventually(t, func() bool {
			snap, err := f.usecase.GetShell(shellID)
			return err == nil && snap.UserID == "" && snap.Location == domain.GroupAuth
		}, time.Second, 5*time.Millisecond)
	}
}

func TestRouterUsecase_HandleIdentityEvent_NoMatchingShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedOut("")

	snap := openInitializedShell(t, f, "client-a", "", domain.GroupAuth)

	event := domain.NewIdentityEvent(domain.EventSignedIn, "client-unknown", "user-x", liveSession("user-x"))
	require.NoError(t, f.usecase.HandleIdentityEvent(context.Background(), *event))

	current, err := f.usecase.GetShell(snap.ShellID)
	require.NoError(t, err)
	assert.Empty(t, current.UserID)
}

func TestRouterUsecase_HandleIdentityEvent_InvalidEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())

	err := f.usecase.HandleIdentityEvent(context.Background(), domain.IdentityEvent{})
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)
}

func TestRouterUsecase_UpdateProfile_PushesIntoUserShells(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedIn("token-1", "user-1", false)

	snap := openInitializedShell(t, f, "client-1", "token-1", domain.GroupOnboarding)

	done := true
	patch := domain.ProfilePatch{Onboarded: &done}
	f.profiles.EXPECT().UpdateProfile(gomock.Any(), "user-1", patch).Return(onboardedProfile("user-1", true), nil)

	profile, err := f.usecase.UpdateProfile(context.Background(), "user-1", patch)
	require.NoError(t, err)
	assert.True(t, profile.Onboarded)

	// The write lands in the open shell and routes it into the app
	require.Eventually(t, func() bool {
		current, err := f.usecase.GetShell(snap.ShellID)
		return err == nil && current.Location == domain.GroupApp
	}, time.Second, 5*time.Millisecond)
}

func TestRouterUsecase_UpdateProfile_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())

	done := true
	patch := domain.ProfilePatch{Onboarded: &done}
	f.profiles.EXPECT().UpdateProfile(gomock.Any(), "user-1", patch).Return(nil, assert.AnError)

	_, err := f.usecase.UpdateProfile(context.Background(), "user-1", patch)
	assert.Error(t, err)
}

func TestRouterUsecase_Subscribe_StreamsDecisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedIn("token-1", "user-1", false)

	snap := openInitializedShell(t, f, "client-1", "token-1", domain.GroupOnboarding)

	subID, ch, err := f.usecase.Subscribe(snap.ShellID)
	require.NoError(t, err)
	defer f.usecase.Unsubscribe(snap.ShellID, subID)

	// Completing onboarding pushes a redirect through the stream
	done := true
	patch := domain.ProfilePatch{Onboarded: &done}
	f.profiles.EXPECT().UpdateProfile(gomock.Any(), "user-1", patch).Return(onboardedProfile("user-1", true), nil)

	_, err = f.usecase.UpdateProfile(context.Background(), "user-1", patch)
	require.NoError(t, err)

	select {
	case decision := <-ch:
		assert.True(t, decision.Redirect)
		assert.Equal(t, domain.GroupApp, decision.Target)
		assert.Equal(t, domain.RouteAppRoot, decision.Route)
	case <-time.After(time.Second):
		t.Fatal("expected a decision on the subscription")
	}
}

func TestRouterUsecase_SweepClosesIdleShells(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.ShellIdleTimeout = 30 * time.Millisecond
	cfg.ShellSweepInterval = 20 * time.Millisecond

	f := newUsecaseFixture(t, ctrl, cfg)
	f.expectSignedOut("")

	_, err := f.usecase.OpenShell(domain.OpenShellRequest{ClientID: "client-1", Location: domain.GroupAuth})
	require.NoError(t, err)
	require.Equal(t, 1, f.usecase.ShellCount())

	require.Eventually(t, func() bool {
		return f.usecase.ShellCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRouterUsecase_Shutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUsecaseFixture(t, ctrl, testConfig())
	f.expectSignedOut("")

	snap, err := f.usecase.OpenShell(domain.OpenShellRequest{ClientID: "client-1", Location: domain.GroupAuth})
	require.NoError(t, err)

	_, ch, err := f.usecase.Subscribe(snap.ShellID)
	require.NoError(t, err)

	f.usecase.Shutdown()
	assert.Equal(t, 0, f.usecase.ShellCount())

	// Subscribers observe the close instead of hanging
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("expected the subscription to close on shutdown")
	}

	// Shutdown is idempotent
	f.usecase.Shutdown()
}
