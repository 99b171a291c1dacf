package port

//go:generate mockgen -source=profile_port.go -destination=../mocks/mock_profile_port.go

import (
	"context"

	"nav-hub/app/domain"
)

// ProfileRepositoryPort defines profile data access
type ProfileRepositoryPort interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error)
}

// ProfileGateway defines profile reads and writes for the router. GetProfile
// always goes to the store so event-driven refetches observe fresh data; the
// cache is refreshed on the way back. Missing profiles surface as
// domain.ErrProfileNotFound, not as a fetch failure.
type ProfileGateway interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error)
}

// ProfileCachePort caches recently observed profiles by user id
type ProfileCachePort interface {
	Get(userID string) (*domain.UserProfile, bool)
	Set(profile *domain.UserProfile)
	Delete(userID string)
	Stop()
}
