package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nav-hub/app/port"
	"nav-hub/app/rest/handlers"
	custommw "nav-hub/app/rest/middleware"
	"nav-hub/app/utils/validator"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger         *slog.Logger
	RouterUsecase  port.RouterUsecasePort
	Identity       port.IdentityGateway
	HealthCheckers map[string]handlers.HealthChecker
	EnableMetrics  bool
	EnableDebug    bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug
	e.Validator = validator.New()

	// Create handlers
	shellHandler := handlers.NewShellHandler(config.RouterUsecase, config.Logger)
	streamHandler := handlers.NewStreamHandler(config.RouterUsecase, config.Logger)
	profileHandler := handlers.NewProfileHandler(config.RouterUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Logger, config.HealthCheckers)

	// Create middleware
	authMiddleware := custommw.NewAuthMiddleware(config.Identity, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
		Skipper: func(c echo.Context) bool {
			// Streams stay open for minutes; logging them on close is noise
			return c.Path() == "/v1/shells/:id/stream"
		},
	}))

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	health := v1.Group("/health")
	health.GET("", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Shell endpoints. Opening is deliberately unauthenticated: a signed
	// out shell still needs routing, and the session token rides in the
	// open request when there is one.
	shells := v1.Group("/shells")
	shells.POST("", shellHandler.OpenShell)
	shells.GET("/:id", shellHandler.GetShell)
	shells.GET("/:id/route", shellHandler.GetRoute)
	shells.PUT("/:id/location", shellHandler.ReportLocation)
	shells.GET("/:id/stream", streamHandler.StreamDecisions)
	shells.DELETE("/:id", shellHandler.CloseShell)

	// Profile endpoints require a live session for the addressed user
	profiles := v1.Group("/profiles")
	profiles.Use(authMiddleware.RequireAuth())
	profiles.Use(authMiddleware.RequireSameUser())
	profiles.GET("/:user_id", profileHandler.GetProfile)
	profiles.PUT("/:user_id", profileHandler.UpdateProfile)

	// Metrics endpoint (if enabled)
	if config.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	return e
}
