package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"nav-hub/app/domain"
	"nav-hub/app/port"
)

const profileColumns = "user_id, display_name, avatar_url, onboarded, created_at, updated_at"

// ProfileRepository persists user profiles in PostgreSQL
type ProfileRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DatabaseIface, logger *slog.Logger) port.ProfileRepositoryPort {
	return &ProfileRepository{
		db:     db,
		logger: logger.With("component", "profile_repository"),
	}
}

// GetByUserID fetches a single profile row. The onboarded column is jsonb:
// legacy writers stored true, false, 1, "1", "true" and null, so the raw
// value is kept next to the coerced boolean.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}

	return profile, nil
}

// Update applies a partial patch and returns the stored row. A missing row
// is created on the fly so onboarding can complete for users provisioned
// before the profile table existed.
func (r *ProfileRepository) Update(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	query := `
		INSERT INTO user_profiles (user_id, display_name, avatar_url, onboarded, created_at, updated_at)
		VALUES ($1, $2, $3, COALESCE(to_jsonb($4::boolean), 'false'::jsonb), NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = COALESCE($2, user_profiles.display_name),
			avatar_url   = COALESCE($3, user_profiles.avatar_url),
			onboarded    = COALESCE(to_jsonb($4::boolean), user_profiles.onboarded),
			updated_at   = NOW()
		RETURNING ` + profileColumns

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID, patch.DisplayName, patch.AvatarURL, patch.Onboarded))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile for user %s: %w", userID, err)
	}

	r.logger.Info("profile updated",
		"user_id", userID,
		"onboarded", profile.Onboarded)

	return profile, nil
}

// scanProfile maps one row onto the domain profile, decoding the jsonb
// onboarded column into its raw form before coercion.
func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var (
		userID       string
		displayName  *string
		avatarURL    *string
		onboardedRaw []byte
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(&userID, &displayName, &avatarURL, &onboardedRaw, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var raw any
	if len(onboardedRaw) > 0 {
		if err := json.Unmarshal(onboardedRaw, &raw); err != nil {
			raw = string(onboardedRaw)
		}
	}

	profile := &domain.UserProfile{
		UserID:       userID,
		Onboarded:    domain.CoerceOnboarded(raw),
		OnboardedRaw: raw,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	if displayName != nil {
		profile.DisplayName = *displayName
	}
	if avatarURL != nil {
		profile.AvatarURL = *avatarURL
	}

	return profile, nil
}
