package port

//go:generate mockgen -source=navigator_port.go -destination=../mocks/mock_navigator_port.go

import (
	"nav-hub/app/domain"
)

// Navigator performs screen transitions for one shell. CurrentGroup reports
// the location group the shell last reported; Replace delivers a redirect
// instruction to the shell. Replace is only called with Redirect=true
// decisions, at most once per state transition.
type Navigator interface {
	CurrentGroup() domain.LocationGroup
	Replace(decision domain.RouteDecision)
}
