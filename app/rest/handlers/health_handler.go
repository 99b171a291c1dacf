package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const dependencyCheckTimeout = 5 * time.Second

// HealthChecker probes one dependency.
type HealthChecker func(ctx context.Context) error

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	logger   *slog.Logger
	checkers map[string]HealthChecker
}

// NewHealthHandler creates a new health handler. checkers maps dependency
// names to their probes; readiness runs all of them.
func NewHealthHandler(logger *slog.Logger, checkers map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{
		logger:   logger,
		checkers: checkers,
	}
}

// HealthCheck performs a basic health check
// @Summary Health check
// @Description Check if the service is healthy and running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /v1/health [get]
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "nav-hub",
		Version:   "1.0.0",
		Uptime:    time.Since(startTime).String(),
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessCheck probes every dependency and reports per-check status
// @Summary Readiness check
// @Description Check if the service is ready to serve traffic
// @Tags health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /v1/ready [get]
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dependencyCheckTimeout)
	defer cancel()

	checks := make(map[string]HealthStatus, len(h.checkers))
	allHealthy := true

	for name, probe := range h.checkers {
		started := time.Now()
		if err := probe(ctx); err != nil {
			h.logger.Warn("readiness probe failed", "dependency", name, "error", err)
			checks[name] = HealthStatus{
				Status:  "unhealthy",
				Message: err.Error(),
				Latency: time.Since(started).String(),
			}
			allHealthy = false
			continue
		}
		checks[name] = HealthStatus{
			Status:  "healthy",
			Message: "connected",
			Latency: time.Since(started).String(),
		}
	}

	response := ReadinessResponse{
		Status:    getOverallStatus(allHealthy),
		Timestamp: time.Now(),
		Service:   "nav-hub",
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if !allHealthy {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, response)
}

// LivenessCheck performs a liveness check
// @Summary Liveness check
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /v1/live [get]
func (h *HealthHandler) LivenessCheck(c echo.Context) error {
	response := HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Service:   "nav-hub",
		Version:   "1.0.0",
		Uptime:    time.Since(startTime).String(),
	}

	return c.JSON(http.StatusOK, response)
}

func getOverallStatus(allHealthy bool) string {
	if allHealthy {
		return "ready"
	}
	return "not_ready"
}

// Response types
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

type ReadinessResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Service   string                  `json:"service"`
	Checks    map[string]HealthStatus `json:"checks"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Latency string `json:"latency,omitempty"`
}

// startTime is set when the service starts
var startTime = time.Now()
