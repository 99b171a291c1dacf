package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"nav-hub/app/domain"
	"nav-hub/app/port"
)

// ProfileHandler handles onboarding profile HTTP requests
type ProfileHandler struct {
	router port.RouterUsecasePort
	logger *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(router port.RouterUsecasePort, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		router: router,
		logger: logger,
	}
}

// GetProfile returns a user's onboarding profile
// @Summary Get profile
// @Description Get a user's onboarding profile
// @Tags profiles
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/profiles/{user_id} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := h.userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid user id",
		})
	}

	profile, err := h.router.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
		}
		h.logger.Error("failed to get profile", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get profile",
		})
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile patches a user's onboarding profile
// @Summary Update profile
// @Description Patch a user's onboarding profile; open shells bound to the user re-route immediately
// @Tags profiles
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param body body UpdateProfileRequest true "Profile patch"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/profiles/{user_id} [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := h.userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid user id",
		})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request",
			Details: err.Error(),
		})
	}

	patch := domain.ProfilePatch{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Onboarded:   req.Onboarded,
	}

	profile, err := h.router.UpdateProfile(c.Request().Context(), userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPatch) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "profile patch is empty",
			})
		}
		h.logger.Error("failed to update profile", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to update profile",
		})
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) userIDParam(c echo.Context) (string, error) {
	userID := c.Param("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		return "", err
	}
	return userID, nil
}

// UpdateProfileRequest is a partial profile update; omitted fields are left
// untouched.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Onboarded   *bool   `json:"onboarded,omitempty"`
}
