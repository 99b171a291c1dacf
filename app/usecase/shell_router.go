package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"nav-hub/app/domain"
	"nav-hub/app/metrics"
	"nav-hub/app/port"
	"nav-hub/app/utils/logger"
)

// ShellRouter drives the onboarding/auth routing state machine for a single
// client shell. All state transitions happen through the documented entry
// points: Init, HandleEvent, OnLocationChanged, ApplyProfile and the internal
// timeout handler; nothing else mutates the state.
//
// Asynchronous fetches are tagged with the identity epoch they were issued
// under. The epoch advances whenever the bound identity changes, so a fetch
// that resolves after a sign-out or a different sign-in discards its result
// instead of overwriting newer state.
type ShellRouter struct {
	mu sync.Mutex

	shellID      string
	clientID     string
	sessionToken string

	state        domain.RouterState
	epoch        uint64
	timedOut     bool
	closed       bool
	lastDecision *domain.RouteDecision

	initTimer   *time.Timer
	initStarted time.Time
	initTimeout time.Duration
	lifeCtx     context.Context

	openedAt time.Time
	lastSeen time.Time

	identity  port.IdentityGateway
	profiles  port.ProfileGateway
	cache     port.ProfileCachePort
	navigator port.Navigator
	logger    *slog.Logger
}

// NewShellRouter creates a router for one shell. Init must be called to
// start resolution.
func NewShellRouter(
	shellID, clientID, sessionToken string,
	identity port.IdentityGateway,
	profiles port.ProfileGateway,
	cache port.ProfileCachePort,
	navigator port.Navigator,
	initTimeout time.Duration,
	baseLogger *slog.Logger,
) *ShellRouter {
	now := time.Now()
	return &ShellRouter{
		shellID:      shellID,
		clientID:     clientID,
		sessionToken: sessionToken,
		initTimeout:  initTimeout,
		openedAt:     now,
		lastSeen:     now,
		identity:     identity,
		profiles:     profiles,
		cache:        cache,
		navigator:    navigator,
		logger:       logger.WithShell(baseLogger, shellID, clientID),
	}
}

// ShellID returns the shell identifier.
func (r *ShellRouter) ShellID() string { return r.shellID }

// ClientID returns the owning client identifier.
func (r *ShellRouter) ClientID() string { return r.clientID }

// UserID returns the bound identity id, or "" when none is bound.
func (r *ShellRouter) UserID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.User == nil {
		return ""
	}
	return r.state.User.ID
}

// Init starts resolving the shell's session and profile and arms the init
// timeout. It returns immediately; the shell stays uninitialized until the
// normal path, an identity event or the timeout handler completes it,
// whichever comes first. The timeout is a hard upper bound on the time to
// the first navigation decision.
func (r *ShellRouter) Init(ctx context.Context) {
	r.mu.Lock()
	if r.closed || r.state.Initialized || r.initTimer != nil {
		r.mu.Unlock()
		return
	}

	r.lifeCtx = ctx
	r.initStarted = time.Now()
	epoch := r.epoch
	r.initTimer = time.AfterFunc(r.initTimeout, func() {
		r.onInitTimeout(ctx)
	})
	r.mu.Unlock()

	go r.resolveInitial(ctx, epoch)
}

// resolveInitial is the normal init path: session first, then the profile.
func (r *ShellRouter) resolveInitial(ctx context.Context, epoch uint64) {
	session, err := r.identity.ResolveSession(ctx, r.sessionToken)
	if err != nil {
		// Fail toward the sign-in screen
		r.logger.Error("session fetch failed during init",
			"operation", "init_session_fetch",
			"error", err)
		r.completeInit(epoch, nil, nil)
		return
	}

	if session == nil {
		r.completeInit(epoch, nil, nil)
		return
	}

	user := session.Identity

	// Publish the identity before the profile fetch so a timeout recovery
	// can see it
	r.mu.Lock()
	if r.epoch == epoch && !r.state.Initialized && !r.closed {
		r.state.User = user
	}
	r.mu.Unlock()

	profile, err := r.profiles.GetProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		r.logger.Error("profile fetch failed during init",
			"user_id", user.ID,
			"operation", "init_profile_fetch",
			"error", err)
		profile = nil
	}

	r.completeInit(epoch, user, profile)
}

// completeInit applies the normal init result unless the timeout handler or
// an identity event resolved the shell first.
func (r *ShellRouter) completeInit(epoch uint64, user *domain.Identity, profile *domain.UserProfile) {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return
	}
	if r.epoch != epoch {
		r.mu.Unlock()
		r.logger.Debug("discarding init result for a superseded identity")
		return
	}
	if r.state.Initialized || r.timedOut {
		elapsed := time.Since(r.initStarted).Seconds()
		r.mu.Unlock()
		r.logger.Debug("discarding init result, shell already resolved")
		metrics.RecordInit(metrics.InitOutcomeAbandoned, elapsed)
		return
	}

	r.stopInitTimerLocked()

	if user == nil {
		r.state.Clear()
	} else {
		r.state.User = user
		r.state.Profile = profile
		r.state.SetOnboarded(profile != nil && profile.Onboarded)
	}
	r.state.Initialized = true

	elapsed := time.Since(r.initStarted).Seconds()
	r.evaluateLocked()
	r.mu.Unlock()

	metrics.RecordInit(metrics.InitOutcomeResolved, elapsed)
}

// onInitTimeout forces a first navigation decision when normal resolution
// has not finished inside the window. Recovery prefers data that already
// arrived: a fetched profile, then a cached one, then a defaulted
// onboarded=false backed by one more bounded fetch.
func (r *ShellRouter) onInitTimeout(ctx context.Context) {
	r.mu.Lock()
	if r.closed || r.state.Initialized {
		r.mu.Unlock()
		return
	}

	r.timedOut = true
	elapsed := time.Since(r.initStarted).Seconds()

	if r.state.Profile != nil {
		r.state.SetOnboarded(r.state.Profile.Onboarded)
		r.logger.Warn("init timed out, resolving from the already fetched profile")
	} else if r.state.User != nil {
		userID := r.state.User.ID
		if cached, ok := r.cache.Get(userID); ok {
			r.state.Profile = cached
			r.state.SetOnboarded(cached.Onboarded)
			r.logger.Warn("init timed out, resolving from the cached profile",
				"user_id", userID)
		} else {
			// Decide now with onboarded=false, then give the profile one
			// more fetch bounded by its own deadline. No second timer.
			r.state.SetOnboarded(false)
			epoch := r.epoch
			r.logger.Warn("init timed out with an identity but no profile, defaulting onboarded=false",
				"user_id", userID)
			go r.recoveryFetch(ctx, epoch, userID)
		}
	} else {
		r.state.Clear()
		r.logger.Warn("init timed out with no identity")
	}

	r.state.Initialized = true
	r.evaluateLocked()
	r.mu.Unlock()

	metrics.RecordInit(metrics.InitOutcomeTimeout, elapsed)
}

// recoveryFetch is the single post-timeout profile fetch. Its result passes
// the same staleness guards as any other fetch; failure or a missing row
// leaves the defaulted onboarded=false in place.
func (r *ShellRouter) recoveryFetch(ctx context.Context, epoch uint64, userID string) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.initTimeout)
	defer cancel()

	profile, err := r.profiles.GetProfile(fetchCtx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			r.logger.Error("recovery profile fetch failed",
				"user_id", userID,
				"operation", "init_recovery_fetch",
				"error", err)
		}
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.epoch != epoch || r.state.User == nil || r.state.User.ID != userID {
		r.logger.Debug("discarding stale recovery fetch", "user_id", userID)
		return
	}

	r.state.Profile = profile
	r.state.SetOnboarded(profile.Onboarded)
	r.evaluateLocked()
}

// HandleEvent applies one identity event. Errors on the listener path are
// absorbed into conservative state per the failure policy; the returned
// error only reports events that cannot be interpreted at all.
func (r *ShellRouter) HandleEvent(ctx context.Context, event domain.IdentityEvent) error {
	if err := event.Validate(); err != nil {
		return domain.NewNavError(domain.ErrCodeInvalidEvent, "cannot handle identity event", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.ErrShellClosed
	}

	r.logger.Debug("handling identity event",
		"event_id", event.ID,
		"event_kind", string(event.Kind))

	switch event.Kind {
	case domain.EventSignedIn:
		if !event.HasSession() {
			// A sign-in without a live session carries no identity; trust
			// the absence, not the label
			r.logger.Warn("signed_in event without a live session, clearing state",
				"event_id", event.ID)
			r.clearIdentityLocked()
			break
		}
		r.adoptAndRefetchLocked(ctx, event.Session.Identity, "signed_in_fetch")

	case domain.EventSignedOut:
		r.clearIdentityLocked()

	case domain.EventUserUpdated, domain.EventTokenRefreshed:
		if event.HasSession() {
			r.adoptAndRefetchLocked(ctx, event.Session.Identity, string(event.Kind)+"_refetch")
		} else if r.state.User != nil {
			r.refetchLocked(ctx, r.state.User.ID, string(event.Kind)+"_refetch")
		}

	default:
		// password_recovery and unrecognized kinds: a live session means
		// the identity still stands, so refetch; no session means clear
		if event.HasSession() {
			r.adoptAndRefetchLocked(ctx, event.Session.Identity, "session_refetch")
		} else {
			r.clearIdentityLocked()
		}
	}

	r.evaluateLocked()
	return nil
}

// clearIdentityLocked drops the bound identity. The epoch advances so every
// in-flight fetch for the old identity discards itself, and the shell counts
// as resolved: an absent user is a decided state.
func (r *ShellRouter) clearIdentityLocked() {
	r.epoch++
	r.state.Clear()
	r.markInitializedByEventLocked()
}

// adoptAndRefetchLocked binds an identity and schedules a profile fetch for
// it. Switching identities resets the profile to undetermined, which routes
// to onboarding until the fetch lands.
func (r *ShellRouter) adoptAndRefetchLocked(ctx context.Context, user *domain.Identity, operation string) {
	if user == nil || user.ID == "" {
		return
	}

	if r.state.User == nil || r.state.User.ID != user.ID {
		r.epoch++
		r.state.Profile = nil
		r.state.Onboarded = nil
	}
	r.state.User = user
	r.refetchLocked(ctx, user.ID, operation)
}

func (r *ShellRouter) refetchLocked(ctx context.Context, userID, operation string) {
	epoch := r.epoch
	go r.fetchAndApply(ctx, epoch, userID, operation)
}

// fetchAndApply fetches a profile and applies it if the shell still belongs
// to the identity the fetch was issued for. Fetch failures collapse to
// onboarded=false rather than keeping possibly wrong data.
func (r *ShellRouter) fetchAndApply(ctx context.Context, epoch uint64, userID, operation string) {
	profile, err := r.profiles.GetProfile(ctx, userID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.epoch != epoch || r.state.User == nil || r.state.User.ID != userID {
		r.logger.Debug("discarding stale profile fetch",
			"user_id", userID,
			"operation", operation)
		return
	}

	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		r.logger.Error("profile fetch failed",
			"user_id", userID,
			"operation", operation,
			"error", err)
		profile = nil
	}

	r.state.Profile = profile
	r.state.SetOnboarded(profile != nil && profile.Onboarded)
	r.markInitializedByEventLocked()
	r.evaluateLocked()
}

// markInitializedByEventLocked completes initialization when an identity
// event resolves the shell before the init fetch does. The superseded init
// fetch discards its own result when it returns.
func (r *ShellRouter) markInitializedByEventLocked() {
	if r.state.Initialized {
		return
	}

	r.stopInitTimerLocked()
	r.state.Initialized = true
	if !r.initStarted.IsZero() {
		metrics.RecordInit(metrics.InitOutcomeEventResolved, time.Since(r.initStarted).Seconds())
	}
}

// OnLocationChanged records that the shell moved between location groups and
// re-runs the decision. Called after the navigator's group was updated.
func (r *ShellRouter) OnLocationChanged(prev, current domain.LocationGroup) domain.RouteDecision {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.RouteDecision{Redirect: false, Reason: domain.ReasonUninitialized}
	}

	r.lastSeen = time.Now()
	r.afterTransitionLocked(prev, current)
	return r.evaluateLocked()
}

// ApplyProfile installs a freshly written profile for the shell's current
// user, used when a profile write lands while the shell is open.
func (r *ShellRouter) ApplyProfile(profile *domain.UserProfile) {
	if profile == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.state.User == nil || r.state.User.ID != profile.UserID {
		return
	}

	r.state.Profile = profile
	r.state.SetOnboarded(profile.Onboarded)
	r.markInitializedByEventLocked()
	r.evaluateLocked()
}

// CurrentDecision evaluates the decision table without delivering a
// redirect, for read-only route queries.
func (r *ShellRouter) CurrentDecision() domain.RouteDecision {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.state.Initialized {
		return domain.RouteDecision{Redirect: false, Reason: domain.ReasonUninitialized}
	}
	return domain.Decide(r.state.HasUser(), r.state.OnboardedValue(), r.navigator.CurrentGroup())
}

// evaluateLocked runs the decision table against the navigator's current
// group. Decisions are recorded on every evaluation; a redirect is only
// delivered once initialized and only when the target differs from the
// current group.
func (r *ShellRouter) evaluateLocked() domain.RouteDecision {
	if !r.state.Initialized {
		return domain.RouteDecision{Redirect: false, Reason: domain.ReasonUninitialized}
	}

	current := r.navigator.CurrentGroup()
	decision := domain.Decide(r.state.HasUser(), r.state.OnboardedValue(), current)
	metrics.RecordDecision(string(decision.Target), decision.Reason)

	if decision.Redirect {
		r.logger.Info("redirecting shell",
			"from", string(current),
			"to", string(decision.Target),
			"reason", decision.Reason)
		r.navigator.Replace(decision)
		metrics.RecordRedirect(string(decision.Target))
		r.afterTransitionLocked(current, decision.Target)
	}

	r.lastDecision = &decision
	return decision
}

// afterTransitionLocked runs location-transition hooks. Leaving onboarding
// for the app root refreshes the profile once, picking up onboarding-flow
// writes that may not be reflected locally yet.
func (r *ShellRouter) afterTransitionLocked(prev, current domain.LocationGroup) {
	if prev != domain.GroupOnboarding || current != domain.GroupApp || r.state.User == nil {
		return
	}

	ctx := r.lifeCtx
	if ctx == nil {
		ctx = context.Background()
	}
	epoch := r.epoch
	userID := r.state.User.ID
	go r.refreshAfterOnboarding(ctx, epoch, userID)
}

// refreshAfterOnboarding re-reads the profile after the shell lands in the
// app. Failures are logged and ignored; the optimistic profile state already
// reflects the transition and must not be rolled back by a transient error.
func (r *ShellRouter) refreshAfterOnboarding(ctx context.Context, epoch uint64, userID string) {
	profile, err := r.profiles.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			r.logger.Error("post-onboarding profile refresh failed",
				"user_id", userID,
				"operation", "post_onboarding_refresh",
				"error", err)
		}
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.epoch != epoch || r.state.User == nil || r.state.User.ID != userID {
		return
	}

	r.state.Profile = profile
	r.state.SetOnboarded(profile.Onboarded)
	r.evaluateLocked()
}

// Snapshot returns the externally visible view of the shell.
func (r *ShellRouter) Snapshot() domain.ShellSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := domain.ShellSnapshot{
		ShellID:     r.shellID,
		ClientID:    r.clientID,
		Initialized: r.state.Initialized,
		Location:    r.navigator.CurrentGroup(),
		OpenedAt:    r.openedAt,
		LastSeenAt:  r.lastSeen,
	}
	if r.state.User != nil {
		snap.UserID = r.state.User.ID
	}
	if r.state.Onboarded != nil {
		v := *r.state.Onboarded
		snap.Onboarded = &v
	}
	if r.lastDecision != nil {
		d := *r.lastDecision
		snap.LastDecision = &d
	}
	return snap
}

// Touch marks client activity for idle tracking.
func (r *ShellRouter) Touch() {
	r.mu.Lock()
	r.lastSeen = time.Now()
	r.mu.Unlock()
}

// LastSeen returns the time of the last client activity.
func (r *ShellRouter) LastSeen() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSeen
}

// Close stops the init timer and detaches the shell. In-flight fetches
// discard their results once closed.
func (r *ShellRouter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.stopInitTimerLocked()
}

func (r *ShellRouter) stopInitTimerLocked() {
	if r.initTimer != nil {
		r.initTimer.Stop()
	}
}
