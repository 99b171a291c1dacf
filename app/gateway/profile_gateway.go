package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"nav-hub/app/domain"
	"nav-hub/app/metrics"
	"nav-hub/app/port"
)

// ProfileGateway implements port.ProfileGateway
// Reads always go to the store so event-driven refetches observe fresh data;
// successful round-trips refresh the cache for the init recovery path
type ProfileGateway struct {
	repo   port.ProfileRepositoryPort
	cache  port.ProfileCachePort
	logger *slog.Logger
}

// NewProfileGateway creates a new ProfileGateway instance
func NewProfileGateway(repo port.ProfileRepositoryPort, cache port.ProfileCachePort, logger *slog.Logger) *ProfileGateway {
	return &ProfileGateway{
		repo:   repo,
		cache:  cache,
		logger: logger.With("component", "profile_gateway"),
	}
}

// GetProfile fetches a profile from the store and refreshes the cache.
// A missing row passes through as domain.ErrProfileNotFound.
func (g *ProfileGateway) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}

	profile, err := g.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			metrics.RecordProfileFetch("not_found")
			return nil, err
		}

		metrics.RecordProfileFetch("error")
		g.logger.Error("failed to fetch profile",
			"user_id", userID,
			"error", err)
		return nil, domain.NewNavError(domain.ErrCodeProfileFetch, "failed to fetch profile", err)
	}

	g.cache.Set(profile)
	metrics.RecordProfileFetch("ok")

	return profile, nil
}

// UpdateProfile applies a partial patch and refreshes the cache with the
// stored result.
func (g *ProfileGateway) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	g.logger.Info("updating profile", "user_id", userID)

	profile, err := g.repo.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}

		g.logger.Error("failed to update profile",
			"user_id", userID,
			"error", err)
		return nil, domain.NewNavError(domain.ErrCodeProfileUpdate, "failed to update profile", err)
	}

	g.cache.Set(profile)
	g.logger.Info("profile updated successfully",
		"user_id", userID,
		"onboarded", profile.Onboarded)

	return profile, nil
}
