package domain

import (
	"encoding/json"
	"time"
)

// UserProfile is the profile record keyed by identity. The onboarded flag is
// kept twice: OnboardedRaw holds whatever representation the store returned,
// Onboarded holds its coerced boolean value.
type UserProfile struct {
	UserID       string    `json:"user_id"`
	DisplayName  string    `json:"display_name,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Onboarded    bool      `json:"onboarded"`
	OnboardedRaw any       `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Onboarded   *bool   `json:"onboarded,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.DisplayName == nil && p.AvatarURL == nil && p.Onboarded == nil
}

// CoerceOnboarded maps the varying representations of the onboarded flag that
// legacy profile rows and event payloads carry onto a boolean. Truthy values
// are the literal true, the number 1, and the strings "1" and "true";
// everything else, including null and absent values, is false. Unrecognized
// representations resolve to false so a malformed flag lands the user on the
// onboarding screen rather than in the app.
func CoerceOnboarded(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val == 1
	case int32:
		return val == 1
	case int64:
		return val == 1
	case float32:
		return val == 1
	case float64:
		return val == 1
	case json.Number:
		return val.String() == "1"
	case string:
		return val == "1" || val == "true"
	case []byte:
		return CoerceOnboarded(string(val))
	default:
		return false
	}
}

// ApplyPatch returns a copy of the profile with the patch applied.
func (p UserProfile) ApplyPatch(patch ProfilePatch) UserProfile {
	if patch.DisplayName != nil {
		p.DisplayName = *patch.DisplayName
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = *patch.AvatarURL
	}
	if patch.Onboarded != nil {
		p.Onboarded = *patch.Onboarded
		p.OnboardedRaw = *patch.Onboarded
	}
	return p
}
