package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"nav-hub/app/config"
	"nav-hub/app/domain"
	"nav-hub/app/metrics"
	"nav-hub/app/port"
	"nav-hub/app/utils/logger"
)

type shellEntry struct {
	router *ShellRouter
	nav    *ShellNavigator
}

// RouterUsecase owns every open shell: it creates routers, fans identity
// events out to the shells they target, and sweeps shells that went idle.
type RouterUsecase struct {
	mu       sync.RWMutex
	shells   map[string]*shellEntry
	byClient map[string]string

	identity port.IdentityGateway
	profiles port.ProfileGateway
	cache    port.ProfileCachePort
	cfg      *config.Config
	logger   *slog.Logger

	lifeCtx  context.Context
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewRouterUsecase creates the shell registry. Start must be called before
// shells are opened.
func NewRouterUsecase(
	identity port.IdentityGateway,
	profiles port.ProfileGateway,
	cache port.ProfileCachePort,
	cfg *config.Config,
	baseLogger *slog.Logger,
) *RouterUsecase {
	return &RouterUsecase{
		shells:   make(map[string]*shellEntry),
		byClient: make(map[string]string),
		identity: identity,
		profiles: profiles,
		cache:    cache,
		cfg:      cfg,
		logger:   logger.WithComponent(baseLogger, "router_usecase"),
		stopChan: make(chan struct{}),
	}
}

// Start begins background maintenance. ctx bounds the lifetime of all
// shells opened afterwards.
func (u *RouterUsecase) Start(ctx context.Context) {
	u.mu.Lock()
	u.lifeCtx = ctx
	u.mu.Unlock()

	go u.sweepLoop(ctx)
}

// OpenShell registers a shell for a client and starts its init protocol. A
// client holds at most one shell; reopening replaces the previous one.
func (u *RouterUsecase) OpenShell(params domain.OpenShellRequest) (domain.ShellSnapshot, error) {
	if params.ClientID == "" {
		return domain.ShellSnapshot{}, fmt.Errorf("client id is required")
	}
	if params.Location == "" {
		params.Location = domain.GroupAuth
	}

	shellID := uuid.New().String()
	nav := NewShellNavigator(params.Location)
	router := NewShellRouter(
		shellID,
		params.ClientID,
		params.SessionToken,
		u.identity,
		u.profiles,
		u.cache,
		nav,
		u.cfg.InitTimeout,
		u.logger,
	)

	u.mu.Lock()
	if oldID, ok := u.byClient[params.ClientID]; ok {
		if old, ok := u.shells[oldID]; ok {
			old.router.Close()
			old.nav.Close()
			delete(u.shells, oldID)
			u.logger.Info("replacing existing shell for client",
				"client_id", params.ClientID,
				"old_shell_id", oldID)
		}
	}
	u.shells[shellID] = &shellEntry{router: router, nav: nav}
	u.byClient[params.ClientID] = shellID
	count := len(u.shells)
	ctx := u.lifeCtx
	u.mu.Unlock()

	metrics.SetActiveShells(count)

	if ctx == nil {
		ctx = context.Background()
	}
	router.Init(ctx)

	u.logger.Info("shell opened",
		"shell_id", shellID,
		"client_id", params.ClientID,
		"location", string(params.Location))

	return router.Snapshot(), nil
}

func (u *RouterUsecase) entry(shellID string) (*shellEntry, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	e, ok := u.shells[shellID]
	if !ok {
		return nil, domain.ErrShellNotFound
	}
	return e, nil
}

// GetShell returns the current snapshot of a shell.
func (u *RouterUsecase) GetShell(shellID string) (domain.ShellSnapshot, error) {
	e, err := u.entry(shellID)
	if err != nil {
		return domain.ShellSnapshot{}, err
	}

	e.router.Touch()
	return e.router.Snapshot(), nil
}

// CurrentRoute evaluates the decision table for a shell without delivering
// a redirect.
func (u *RouterUsecase) CurrentRoute(shellID string) (domain.RouteDecision, error) {
	e, err := u.entry(shellID)
	if err != nil {
		return domain.RouteDecision{}, err
	}

	e.router.Touch()
	return e.router.CurrentDecision(), nil
}

// ReportLocation records where the client actually navigated to and re-runs
// the decision, catching shells that wandered off the decided route.
func (u *RouterUsecase) ReportLocation(shellID string, group domain.LocationGroup) (domain.ShellSnapshot, error) {
	e, err := u.entry(shellID)
	if err != nil {
		return domain.ShellSnapshot{}, err
	}

	prev := e.nav.SetGroup(group)
	e.router.OnLocationChanged(prev, group)
	return e.router.Snapshot(), nil
}

// Subscribe attaches a decision stream to a shell. The caller must
// Unsubscribe with the returned id.
func (u *RouterUsecase) Subscribe(shellID string) (int, <-chan domain.RouteDecision, error) {
	e, err := u.entry(shellID)
	if err != nil {
		return 0, nil, err
	}

	e.router.Touch()
	id, ch := e.nav.Subscribe()
	return id, ch, nil
}

// Unsubscribe detaches a decision stream.
func (u *RouterUsecase) Unsubscribe(shellID string, subID int) {
	e, err := u.entry(shellID)
	if err != nil {
		return
	}
	e.nav.Unsubscribe(subID)
}

// CloseShell removes a shell from the registry and releases its resources.
func (u *RouterUsecase) CloseShell(shellID string) error {
	u.mu.Lock()
	e, ok := u.shells[shellID]
	if !ok {
		u.mu.Unlock()
		return domain.ErrShellNotFound
	}
	delete(u.shells, shellID)
	if u.byClient[e.router.ClientID()] == shellID {
		delete(u.byClient, e.router.ClientID())
	}
	count := len(u.shells)
	u.mu.Unlock()

	e.router.Close()
	e.nav.Close()
	metrics.SetActiveShells(count)
	u.logger.Info("shell closed", "shell_id", shellID)
	return nil
}

// HandleIdentityEvent routes one identity event to the shells it targets.
// It implements the consumer's event handler; per-shell failures are
// absorbed so one broken shell never blocks the stream.
func (u *RouterUsecase) HandleIdentityEvent(ctx context.Context, event domain.IdentityEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	targets := u.matchShells(event)
	if len(targets) == 0 {
		u.logger.Debug("identity event matched no shells",
			"event_id", event.ID,
			"event_kind", string(event.Kind))
		return nil
	}

	for _, e := range targets {
		if err := e.router.HandleEvent(ctx, event); err != nil {
			// The shell raced a close; the event is still handled
			u.logger.Debug("shell rejected identity event",
				"shell_id", e.router.ShellID(),
				"event_id", event.ID,
				"error", err)
		}
	}
	return nil
}

// matchShells resolves an event's audience: the named client's shell, every
// shell bound to the named user, or all shells for provider-wide notices.
func (u *RouterUsecase) matchShells(event domain.IdentityEvent) []*shellEntry {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if event.ClientID != "" {
		if shellID, ok := u.byClient[event.ClientID]; ok {
			if e, ok := u.shells[shellID]; ok {
				return []*shellEntry{e}
			}
		}
		return nil
	}

	if event.UserID != "" {
		var targets []*shellEntry
		for _, e := range u.shells {
			if e.router.UserID() == event.UserID {
				targets = append(targets, e)
			}
		}
		return targets
	}

	targets := make([]*shellEntry, 0, len(u.shells))
	for _, e := range u.shells {
		targets = append(targets, e)
	}
	return targets
}

// GetProfile reads a profile through the gateway.
func (u *RouterUsecase) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return u.profiles.GetProfile(ctx, userID)
}

// UpdateProfile writes a profile and pushes the result into every open
// shell bound to the user, so onboarding completion routes without waiting
// for an identity event.
func (u *RouterUsecase) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	profile, err := u.profiles.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	for _, e := range u.shellsForUser(userID) {
		e.router.ApplyProfile(profile)
	}
	return profile, nil
}

func (u *RouterUsecase) shellsForUser(userID string) []*shellEntry {
	u.mu.RLock()
	defer u.mu.RUnlock()

	var targets []*shellEntry
	for _, e := range u.shells {
		if e.router.UserID() == userID {
			targets = append(targets, e)
		}
	}
	return targets
}

// ShellCount returns the number of open shells.
func (u *RouterUsecase) ShellCount() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.shells)
}

func (u *RouterUsecase) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(u.cfg.ShellSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-u.stopChan:
			return
		case <-ticker.C:
			u.sweepIdleShells()
		}
	}
}

// sweepIdleShells closes shells whose clients stopped talking to us. An SSE
// subscriber keeps its shell alive through the activity recorded on
// subscribe and report calls.
func (u *RouterUsecase) sweepIdleShells() {
	cutoff := time.Now().Add(-u.cfg.ShellIdleTimeout)

	u.mu.RLock()
	var idle []string
	for shellID, e := range u.shells {
		if e.router.LastSeen().Before(cutoff) {
			idle = append(idle, shellID)
		}
	}
	u.mu.RUnlock()

	for _, shellID := range idle {
		u.logger.Info("closing idle shell", "shell_id", shellID)
		if err := u.CloseShell(shellID); err != nil && !errors.Is(err, domain.ErrShellNotFound) {
			u.logger.Error("failed to close idle shell",
				"shell_id", shellID,
				"error", err)
		}
	}
}

// Shutdown closes every shell and stops background maintenance.
func (u *RouterUsecase) Shutdown() {
	u.stopOnce.Do(func() {
		close(u.stopChan)
	})

	u.mu.Lock()
	entries := make([]*shellEntry, 0, len(u.shells))
	for _, e := range u.shells {
		entries = append(entries, e)
	}
	u.shells = make(map[string]*shellEntry)
	u.byClient = make(map[string]string)
	u.mu.Unlock()

	for _, e := range entries {
		e.router.Close()
		e.nav.Close()
	}
	metrics.SetActiveShells(0)
	u.logger.Info("router usecase shut down")
}
