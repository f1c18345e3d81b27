package container

import (
	"context"

	"pickup-bff/internal/config"
	"pickup-bff/internal/handler"
	"pickup-bff/internal/repository"
	"pickup-bff/internal/service"
	"pickup-bff/internal/service/auth"
	"pickup-bff/internal/service/backend"
	"pickup-bff/internal/service/form"
	"pickup-bff/pkg/database"
	"pickup-bff/pkg/logger"
	"pickup-bff/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	DB          *database.PostgresDB
	Services    *Services
}

// Services groups the service layer
type Services struct {
	Auth          *auth.Service
	Cache         *service.CacheService
	Activities    *service.ActivityService
	Profiles      *service.ProfileService
	Notifications *service.NotificationService
	Drafts        *service.DraftService // nil without a database
}

// New creates a new dependency injection container. Redis and Postgres are optional: without
// Redis every read goes to the backend, and without Postgres drafts are disabled.
func New(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*Container, error) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	var db *database.PostgresDB
	if cfg.DatabaseURL != "" {
		conn, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to database, drafts are disabled")
		} else {
			db = conn
			logger.Info("Database connection established")
		}
	} else {
		logger.Info("Database URL not configured, drafts are disabled")
	}

	cache := service.NewCacheService(redisClient, logger.Logger)
	client := backend.NewClient(cfg, logger)
	validator := form.NewValidator(form.Policy{
		DescriptionRequired: cfg.Form.DescriptionRequired,
		DurationFloor:       cfg.Form.DurationFloor,
		SameDayStrict:       cfg.Form.SameDayStrict,
	})

	services := &Services{
		Auth:          auth.NewService(cfg.SessionJWTSecret, logger),
		Cache:         cache,
		Profiles:      service.NewProfileService(client, cache, logger, cfg.NicknameDebounce),
		Notifications: service.NewNotificationService(client, logger),
	}

	// a nil *DraftService must not reach the interface-typed parameter
	var drafts service.DraftStore
	if db != nil {
		services.Drafts = service.NewDraftService(repository.NewDraftRepository(db), logger)
		drafts = services.Drafts
	}
	services.Activities = service.NewActivityService(client, cache, drafts, validator, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		DB:          db,
		Services:    services,
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// HasDatabase returns true if drafts can be stored
func (c *Container) HasDatabase() bool {
	return c.DB != nil
}

// DraftService returns the draft service for the handler layer, or a nil interface without a database
func (c *Container) DraftService() handler.DraftService {
	if c.Services.Drafts == nil {
		return nil
	}
	return c.Services.Drafts
}

// HealthChecks lists the dependencies /health reports on
func (c *Container) HealthChecks() map[string]handler.HealthChecker {
	checks := map[string]handler.HealthChecker{}
	if c.HasRedis() {
		checks["redis"] = c.Services.Cache.HealthCheck
	}
	if c.HasDatabase() {
		checks["postgres"] = c.DB.Health
	}
	return checks
}

// Close releases the Redis and database connections
func (c *Container) Close() error {
	var err error
	if c.RedisClient != nil {
		err = c.RedisClient.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
	return err
}
