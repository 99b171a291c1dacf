package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nav-hub/app/domain"
	"nav-hub/app/port"
)

const heartbeatInterval = 10 * time.Second

// StreamHandler streams routing decisions to shells over SSE.
type StreamHandler struct {
	router port.RouterUsecasePort
	logger *slog.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(router port.RouterUsecasePort, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		router: router,
		logger: logger,
	}
}

// streamEvent is one SSE payload. Type distinguishes the initial snapshot
// from the decisions that follow.
type streamEvent struct {
	Type     string                `json:"type"`
	Shell    *domain.ShellSnapshot `json:"shell,omitempty"`
	Decision *domain.RouteDecision `json:"decision,omitempty"`
}

// StreamDecisions streams the shell's snapshot and every subsequent
// redirect decision until the client disconnects or the shell closes
// @Summary Stream routing decisions
// @Description Server-sent events stream of the shell snapshot followed by redirect decisions
// @Tags shells
// @Produce text/event-stream
// @Param id path string true "Shell ID"
// @Success 200
// @Failure 404 {object} ErrorResponse
// @Router /v1/shells/{id}/stream [get]
func (h *StreamHandler) StreamDecisions(c echo.Context) error {
	shellID := c.Param("id")

	snapshot, err := h.router.GetShell(shellID)
	if err != nil {
		if errors.Is(err, domain.ErrShellNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "shell not found",
			})
		}
		h.logger.Error("failed to load shell for streaming", "shell_id", shellID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
		})
	}

	subID, decisions, err := h.router.Subscribe(shellID)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "shell not found",
		})
	}
	defer h.router.Unsubscribe(shellID, subID)

	// Set SSE headers using Echo's response
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, canFlush := c.Response().Writer.(http.Flusher)
	if !canFlush {
		h.logger.Error("response writer does not support flushing")
		return nil
	}

	// The snapshot first, so a reconnecting shell catches up before new
	// decisions stream in
	if err := h.writeEvent(c, flusher, streamEvent{Type: "snapshot", Shell: &snapshot}); err != nil {
		return nil
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case decision, ok := <-decisions:
			if !ok {
				h.logger.Debug("shell closed, ending stream", "shell_id", shellID)
				return nil
			}
			if err := h.writeEvent(c, flusher, streamEvent{Type: "decision", Decision: &decision}); err != nil {
				h.logger.Debug("client disconnected", "shell_id", shellID, "error", err)
				return nil
			}

		case <-heartbeat.C:
			if _, err := c.Response().Write([]byte(": heartbeat\n\n")); err != nil {
				h.logger.Debug("client disconnected during heartbeat", "shell_id", shellID)
				return nil
			}
			flusher.Flush()

		case <-c.Request().Context().Done():
			h.logger.Debug("stream closed by client", "shell_id", shellID)
			return nil
		}
	}
}

func (h *StreamHandler) writeEvent(c echo.Context, flusher http.Flusher, event streamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal stream event", "error", err)
		return err
	}

	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
