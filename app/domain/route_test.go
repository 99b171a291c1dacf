package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nav-hub/app/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		hasUser      bool
		onboarded    bool
		current      domain.LocationGroup
		wantRedirect bool
		wantTarget   domain.LocationGroup
		wantRoute    string
	}{
		{
			name:         "no user outside auth redirects to login",
			hasUser:      false,
			current:      domain.GroupApp,
			wantRedirect: true,
			wantTarget:   domain.GroupAuth,
			wantRoute:    domain.RouteLogin,
		},
		{
			name:         "no user already in auth stays",
			hasUser:      false,
			current:      domain.GroupAuth,
			wantRedirect: false,
			wantTarget:   domain.GroupAuth,
		},
		{
			name:         "user not onboarded redirects to onboarding",
			hasUser:      true,
			onboarded:    false,
			current:      domain.GroupAuth,
			wantRedirect: true,
			wantTarget:   domain.GroupOnboarding,
			wantRoute:    domain.RouteOnboarding,
		},
		{
			name:         "user not onboarded already onboarding stays",
			hasUser:      true,
			onboarded:    false,
			current:      domain.GroupOnboarding,
			wantRedirect: false,
			wantTarget:   domain.GroupOnboarding,
		},
		{
			name:         "onboarded user in auth redirects to app",
			hasUser:      true,
			onboarded:    true,
			current:      domain.GroupAuth,
			wantRedirect: true,
			wantTarget:   domain.GroupApp,
			wantRoute:    domain.RouteAppRoot,
		},
		{
			name:         "onboarded user in onboarding redirects to app",
			hasUser:      true,
			onboarded:    true,
			current:      domain.GroupOnboarding,
			wantRedirect: true,
			wantTarget:   domain.GroupApp,
			wantRoute:    domain.RouteAppRoot,
		},
		{
			name:         "onboarded user in app is a no-op",
			hasUser:      true,
			onboarded:    true,
			current:      domain.GroupApp,
			wantRedirect: false,
			wantTarget:   domain.GroupApp,
		},
		{
			name:         "user not onboarded sitting in app is pulled back",
			hasUser:      true,
			onboarded:    false,
			current:      domain.GroupApp,
			wantRedirect: true,
			wantTarget:   domain.GroupOnboarding,
			wantRoute:    domain.RouteOnboarding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := domain.Decide(tt.hasUser, tt.onboarded, tt.current)

			assert.Equal(t, tt.wantRedirect, decision.Redirect)
			assert.Equal(t, tt.wantTarget, decision.Target)
			assert.Equal(t, tt.wantRoute, decision.Route)
		})
	}
}

func TestDecide_Idempotent(t *testing.T) {
	// A fired redirect moves the shell to its target group; evaluating again
	// from there must not fire a second one.
	first := domain.Decide(false, false, domain.GroupApp)
	require.True(t, first.Redirect)

	second := domain.Decide(false, false, first.Target)
	assert.False(t, second.Redirect)
	assert.Equal(t, domain.ReasonAlreadyThere, second.Reason)
}

func TestParseLocationGroup(t *testing.T) {
	for _, valid := range []string{"auth", "onboarding", "app"} {
		group, err := domain.ParseLocationGroup(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.LocationGroup(valid), group)
	}

	_, err := domain.ParseLocationGroup("settings")
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestRouterState_OnboardedTriState(t *testing.T) {
	state := &domain.RouterState{}

	// undetermined counts as not onboarded but stays distinguishable
	assert.Nil(t, state.Onboarded)
	assert.False(t, state.OnboardedValue())

	state.SetOnboarded(false)
	require.NotNil(t, state.Onboarded)
	assert.False(t, state.OnboardedValue())

	state.SetOnboarded(true)
	assert.True(t, state.OnboardedValue())
}

func TestRouterState_Clear(t *testing.T) {
	onboarded := true
	state := &domain.RouterState{
		User:      &domain.Identity{ID: "user-1"},
		Profile:   &domain.UserProfile{UserID: "user-1", Onboarded: true},
		Onboarded: &onboarded,
	}

	state.Clear()

	assert.False(t, state.HasUser())
	assert.Nil(t, state.Profile)
	require.NotNil(t, state.Onboarded)
	assert.False(t, *state.Onboarded)
}
