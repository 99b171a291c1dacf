package usecase

import (
	"sync"

	"nav-hub/app/domain"
)

const decisionBuffer = 16

// ShellNavigator implements port.Navigator for one connected shell. The
// tracked group is what the shell last reported; Replace moves it to the
// decision target right away so the next evaluation sees the redirect as
// done, and fans the decision out to stream subscribers. The shell's own
// location report later confirms or corrects the optimistic move.
type ShellNavigator struct {
	mu           sync.Mutex
	group        domain.LocationGroup
	lastDecision *domain.RouteDecision
	subscribers  map[int]chan domain.RouteDecision
	nextID       int
	closed       bool
}

// NewShellNavigator creates a navigator for a shell starting at group.
func NewShellNavigator(group domain.LocationGroup) *ShellNavigator {
	return &ShellNavigator{
		group:       group,
		subscribers: make(map[int]chan domain.RouteDecision),
	}
}

// CurrentGroup returns the location group the shell is currently on.
func (n *ShellNavigator) CurrentGroup() domain.LocationGroup {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.group
}

// Replace delivers a redirect to the shell.
func (n *ShellNavigator) Replace(decision domain.RouteDecision) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || !decision.Redirect {
		return
	}

	n.group = decision.Target
	n.lastDecision = &decision

	for _, ch := range n.subscribers {
		select {
		case ch <- decision:
		default:
			// Slow subscriber: the oldest queued decision gives way
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- decision:
			default:
			}
		}
	}
}

// SetGroup records a location report from the shell and returns the group it
// replaced.
func (n *ShellNavigator) SetGroup(group domain.LocationGroup) domain.LocationGroup {
	n.mu.Lock()
	defer n.mu.Unlock()

	prev := n.group
	n.group = group
	return prev
}

// LastDecision returns the most recent redirect, if any.
func (n *ShellNavigator) LastDecision() *domain.RouteDecision {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.lastDecision == nil {
		return nil
	}
	d := *n.lastDecision
	return &d
}

// Subscribe registers a decision stream subscriber. The channel receives
// every redirect until Unsubscribe or Close.
func (n *ShellNavigator) Subscribe() (int, <-chan domain.RouteDecision) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	ch := make(chan domain.RouteDecision, decisionBuffer)
	if n.closed {
		close(ch)
		return id, ch
	}

	n.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (n *ShellNavigator) Unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.subscribers[id]; ok {
		delete(n.subscribers, id)
		close(ch)
	}
}

// Close closes every subscriber channel. Redirects after Close are dropped.
func (n *ShellNavigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true

	for id, ch := range n.subscribers {
		delete(n.subscribers, id)
		close(ch)
	}
}
