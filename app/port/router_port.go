package port

import (
	"context"

	"nav-hub/app/domain"
)

//go:generate mockgen -source=router_port.go -destination=../mocks/mock_router_port.go

// RouterUsecasePort is the shell management surface the transport layer
// drives. One client holds at most one shell; opening again replaces it.
type RouterUsecasePort interface {
	OpenShell(params domain.OpenShellRequest) (domain.ShellSnapshot, error)
	GetShell(shellID string) (domain.ShellSnapshot, error)
	CurrentRoute(shellID string) (domain.RouteDecision, error)
	ReportLocation(shellID string, group domain.LocationGroup) (domain.ShellSnapshot, error)
	Subscribe(shellID string) (int, <-chan domain.RouteDecision, error)
	Unsubscribe(shellID string, subID int)
	CloseShell(shellID string) error
	ShellCount() int

	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error)
}
