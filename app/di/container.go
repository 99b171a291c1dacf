package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"nav-hub/app/cache"
	"nav-hub/app/config"
	"nav-hub/app/consumer"
	"nav-hub/app/driver/kratos"
	"nav-hub/app/driver/postgres"
	"nav-hub/app/gateway"
	"nav-hub/app/port"
	"nav-hub/app/rest"
	"nav-hub/app/rest/handlers"
	"nav-hub/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB           *postgres.DB
	KratosClient *kratos.Client
	ProfileCache *cache.ProfileCache

	// Gateways
	IdentityGateway port.IdentityGateway
	ProfileGateway  port.ProfileGateway

	// Usecases
	RouterUsecase *usecase.RouterUsecase

	// Event intake
	Consumer *consumer.Consumer
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.KratosClient, err = kratos.NewClient(cfg.KratosPublicURL, logger)
	if err != nil {
		container.DB.Close()
		return nil, fmt.Errorf("failed to initialize kratos client: %w", err)
	}

	container.ProfileCache = cache.NewProfileCache(cfg.ProfileCacheTTL)

	profileRepository := postgres.NewProfileRepository(container.DB.Pool(), logger)

	container.IdentityGateway = gateway.NewIdentityGateway(container.KratosClient, logger)
	container.ProfileGateway = gateway.NewProfileGateway(profileRepository, container.ProfileCache, logger)

	container.RouterUsecase = usecase.NewRouterUsecase(
		container.IdentityGateway,
		container.ProfileGateway,
		container.ProfileCache,
		cfg,
		logger,
	)

	container.Consumer, err = consumer.NewConsumer(consumer.Config{
		RedisURL:     cfg.RedisURL,
		GroupName:    cfg.ConsumerGroup,
		ConsumerName: cfg.ConsumerName,
		StreamKey:    cfg.IdentityStreamKey,
		BatchSize:    int64(cfg.EventBatchSize),
		BlockTimeout: cfg.EventBlockTimeout,
	}, container.RouterUsecase, logger)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to initialize identity consumer: %w", err)
	}

	logger.Info("container initialized",
		"kratos", cfg.KratosPublicURL,
		"stream", cfg.IdentityStreamKey,
	)

	return container, nil
}

// Start launches the background workers: shell maintenance and the identity
// event consumer. ctx bounds their lifetime.
func (c *Container) Start(ctx context.Context) error {
	c.RouterUsecase.Start(ctx)

	if err := c.Consumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start identity consumer: %w", err)
	}

	return nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:        c.Logger,
		RouterUsecase: c.RouterUsecase,
		Identity:      c.IdentityGateway,
		HealthCheckers: map[string]handlers.HealthChecker{
			"database":     c.DB.HealthCheck,
			"kratos":       c.KratosClient.HealthCheck,
			"event_stream": c.Consumer.Ping,
		},
		EnableMetrics: c.Config.EnableMetrics,
		EnableDebug:   c.Config.LogLevel == "debug",
	}

	return rest.NewRouter(routerConfig)
}

// Close closes all resources in reverse dependency order.
func (c *Container) Close() error {
	if c.Consumer != nil {
		c.Consumer.Stop()
	}

	if c.RouterUsecase != nil {
		c.RouterUsecase.Shutdown()
	}

	if c.ProfileCache != nil {
		c.ProfileCache.Stop()
	}

	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("container closed")
	return nil
}
