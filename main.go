package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"pickup-bff/internal/config"
	"pickup-bff/internal/container"
	"pickup-bff/internal/handler"
	"pickup-bff/internal/middleware"
	"pickup-bff/pkg/logger"
)

const version = "1.0.0"

// Resources holds all resources that need cleanup
type Resources struct {
	container *container.Container
	server    *http.Server
	log       *logger.Logger
	mu        sync.Mutex
	closed    bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.container != nil {
		r.log.Info("Closing Redis and database connections...")
		if err := r.container.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close connections")
			errors = append(errors, fmt.Errorf("connection close: %w", err))
		}
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"backend":     cfg.BackendAPIURL,
	}).Info("Starting pickup-bff server")

	ctx := context.Background()
	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}
	log.WithFields(map[string]interface{}{
		"redis":  c.HasRedis(),
		"drafts": c.HasDatabase(),
	}).Info("Container ready")

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        setupRouter(c),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	resources := &Resources{
		container: c,
		server:    server,
		log:       log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()
	services := c.Services

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins), log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(middleware.Session(cfg.SessionCookieName, services.Auth, services.Profiles, log))

	healthHandler := handler.NewHealthHandler(version, c.HealthChecks(), log)
	activityHandler := handler.NewActivityHandler(services.Activities, cfg.SessionCookieName, log)
	draftHandler := handler.NewDraftHandler(c.DraftService(), log)
	profileHandler := handler.NewProfileHandler(services.Profiles, cfg.SessionCookieName, log)
	notificationHandler := handler.NewNotificationHandler(services.Notifications, log)

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/activities", func(r chi.Router) {
			// Public: form checks need no session, reads work for anonymous viewers
			r.Post("/validate", activityHandler.Validate)
			r.Post("/normalize", activityHandler.Normalize)
			r.Get("/", activityHandler.Search)
			r.Get("/{id}", activityHandler.Get)

			// join and leave report a signed-out viewer as an outcome, not a 401
			r.Post("/{id}/join", activityHandler.Join)
			r.Post("/{id}/leave", activityHandler.Leave)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser(log))

				r.Get("/me", activityHandler.Mine)
				r.Post("/", activityHandler.Create)

				r.Get("/draft", draftHandler.Get)
				r.Put("/draft", draftHandler.Put)
				r.Delete("/draft", draftHandler.Delete)

				r.Get("/{id}/edit", activityHandler.Edit)
				r.Get("/{id}/contacts", activityHandler.Contacts)
				r.Put("/{id}", activityHandler.Update)
				r.Delete("/{id}", activityHandler.Delete)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(middleware.RequireUser(log))

			r.Put("/", profileHandler.Update)
			r.Get("/nickname", profileHandler.CheckNickname)
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", profileHandler.Show)
			r.Get("/activities", activityHandler.UserActivities)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(middleware.RequireUser(log))

			r.Get("/", notificationHandler.List)
			r.Put("/read-all", notificationHandler.MarkAllRead)
			r.Put("/{id}/read", notificationHandler.MarkRead)
		})

		r.Post("/logout", profileHandler.Logout)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
