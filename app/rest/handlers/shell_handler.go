package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"nav-hub/app/domain"
	"nav-hub/app/port"
	"nav-hub/app/rest/middleware"
)

// ShellHandler handles shell lifecycle HTTP requests
type ShellHandler struct {
	router port.RouterUsecasePort
	logger *slog.Logger
}

// NewShellHandler creates a new shell handler
func NewShellHandler(router port.RouterUsecasePort, logger *slog.Logger) *ShellHandler {
	return &ShellHandler{
		router: router,
		logger: logger,
	}
}

// OpenShell registers a shell for a client and starts routing it
// @Summary Open a shell
// @Description Register a client shell and start resolving its session, profile and first route
// @Tags shells
// @Accept json
// @Produce json
// @Param body body OpenShellRequest true "Shell open request"
// @Success 201 {object} domain.ShellSnapshot
// @Failure 400 {object} ErrorResponse
// @Router /v1/shells [post]
func (h *ShellHandler) OpenShell(c echo.Context) error {
	var req OpenShellRequest
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

	location := domain.LocationGroup(req.Location)

	// Shells opened by browsers carry the session in headers rather than
	// the body
	token := req.SessionToken
	if token == "" {
		token = middleware.ExtractSessionToken(c)
	}

	snapshot, err := h.router.OpenShell(domain.OpenShellRequest{
		ClientID:     req.ClientID,
		SessionToken: token,
		Location:     location,
	})
	if err != nil {
		h.logger.Error("failed to open shell", "client_id", req.ClientID, "error", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "failed to open shell",
		})
	}

	return c.JSON(http.StatusCreated, snapshot)
}

// GetShell returns the current state of a shell
// @Summary Get shell state
// @Description Get the current snapshot of an open shell
// @Tags shells
// @Produce json
// @Param id path string true "Shell ID"
// @Success 200 {object} domain.ShellSnapshot
// @Failure 404 {object} ErrorResponse
// @Router /v1/shells/{id} [get]
func (h *ShellHandler) GetShell(c echo.Context) error {
	snapshot, err := h.router.GetShell(c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// GetRoute evaluates the routing decision for a shell without acting on it
// @Summary Get current route decision
// @Description Evaluate the decision table for the shell's current state
// @Tags shells
// @Produce json
// @Param id path string true "Shell ID"
// @Success 200 {object} domain.RouteDecision
// @Failure 404 {object} ErrorResponse
// @Router /v1/shells/{id}/route [get]
func (h *ShellHandler) GetRoute(c echo.Context) error {
	decision, err := h.router.CurrentRoute(c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, decision)
}

// ReportLocation records where the shell actually navigated to
// @Summary Report shell location
// @Description Record the location group the client navigated to and re-evaluate routing
// @Tags shells
// @Accept json
// @Produce json
// @Param id path string true "Shell ID"
// @Param body body ReportLocationRequest true "Location report"
// @Success 200 {object} domain.ShellSnapshot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/shells/{id}/location [put]
func (h *ShellHandler) ReportLocation(c echo.Context) error {
	var req ReportLocationRequest
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

	group, err := domain.ParseLocationGroup(req.Location)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid location group",
		})
	}

	snapshot, err := h.router.ReportLocation(c.Param("id"), group)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// CloseShell removes a shell
// @Summary Close a shell
// @Description Close an open shell and release its resources
// @Tags shells
// @Param id path string true "Shell ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /v1/shells/{id} [delete]
func (h *ShellHandler) CloseShell(c echo.Context) error {
	if err := h.router.CloseShell(c.Param("id")); err != nil {
		return h.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ShellHandler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrShellNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "shell not found",
		})
	case errors.Is(err, domain.ErrInvalidLocation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid location group",
		})
	default:
		h.logger.Error("shell request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
		})
	}
}

// Request types

type OpenShellRequest struct {
	ClientID     string `json:"client_id" validate:"required,client_id"`
	SessionToken string `json:"session_token,omitempty"`
	Location     string `json:"location,omitempty" validate:"omitempty,location_group"`
}

type ReportLocationRequest struct {
	Location string `json:"location" validate:"required,location_group"`
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
