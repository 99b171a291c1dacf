package domain

// LocationGroup is the top-level navigational section a shell currently
// displays.
type LocationGroup string

const (
	GroupAuth       LocationGroup = "auth"
	GroupOnboarding LocationGroup = "onboarding"
	GroupApp        LocationGroup = "app"
)

// Concrete routes for each location group.
const (
	RouteLogin      = "/auth/login"
	RouteOnboarding = "/onboarding"
	RouteAppRoot    = "/app"
)

// Decision reasons, recorded on every evaluated decision for logs and metrics.
const (
	ReasonNoSession     = "no_session"
	ReasonNotOnboarded  = "not_onboarded"
	ReasonOnboarded     = "onboarded"
	ReasonAlreadyThere  = "already_there"
	ReasonUninitialized = "uninitialized"
)

// ParseLocationGroup validates a wire value for a location group.
func ParseLocationGroup(s string) (LocationGroup, error) {
	switch LocationGroup(s) {
	case GroupAuth, GroupOnboarding, GroupApp:
		return LocationGroup(s), nil
	default:
		return "", ErrInvalidLocation
	}
}

// RouteFor maps a location group to its entry route.
func RouteFor(group LocationGroup) string {
	switch group {
	case GroupAuth:
		return RouteLogin
	case GroupOnboarding:
		return RouteOnboarding
	default:
		return RouteAppRoot
	}
}

// RouteDecision is the outcome of one evaluation of the decision table.
// Redirect=false means the shell stays where it is.
type RouteDecision struct {
	Redirect bool          `json:"redirect"`
	Target   LocationGroup `json:"target,omitempty"`
	Route    string        `json:"route,omitempty"`
	Reason   string        `json:"reason"`
}

// Decide evaluates the routing table for the latest known (user, onboarded)
// pair against the current location group:
//
//	no user                          -> auth group
//	user, not onboarded              -> onboarding group
//	user, onboarded, in auth/onboard -> app root
//	user, onboarded, in app          -> no-op
//
// A redirect fires only when the target group differs from the current one,
// which makes repeated evaluation with unchanged inputs a no-op.
func Decide(hasUser, onboarded bool, current LocationGroup) RouteDecision {
	var target LocationGroup
	var reason string

	switch {
	case !hasUser:
		target = GroupAuth
		reason = ReasonNoSession
	case !onboarded:
		target = GroupOnboarding
		reason = ReasonNotOnboarded
	default:
		target = GroupApp
		reason = ReasonOnboarded
	}

	if current == target {
		return RouteDecision{Redirect: false, Target: target, Reason: ReasonAlreadyThere}
	}
	return RouteDecision{
		Redirect: true,
		Target:   target,
		Route:    RouteFor(target),
		Reason:   reason,
	}
}
