// Package app assembles the HTTP application: configuration, logging,
// directory bootstrap, routing, and server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/infrastructure"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/middleware"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/services"
	transporthttp "github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/transport/http"
)

// Application holds the assembled server and its collaborators.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Paths  *config.Paths
	Router chi.Router
	Server *http.Server

	pipeline *services.PipelineService
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	a := &Application{
		Config:   cfg,
		Logger:   logger,
		Paths:    paths,
		pipeline: services.NewPipelineService(logger, cfg.Pipeline, paths),
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// setupRouter wires middleware and routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(a.Logger))
	r.Use(middleware.RateLimit(a.Config.Server.RateLimit))

	health := transporthttp.NewHealthHandler()
	r.Get(config.HealthEndpoint, health.HealthCheck)

	dataset := transporthttp.NewDatasetHandler(a.pipeline, a.Logger)
	r.Route(config.APIBasePath, func(r chi.Router) {
		r.Mount("/dataset", dataset.Routes())
	})

	a.Router = r
}

// createServer builds the http.Server from server configuration.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the server and blocks until shutdown.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("starting server",
			slog.String("app", config.AppName),
			slog.String("version", config.AppVersion),
			slog.Int("port", a.Config.Server.Port))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	infrastructure.CloseLogFile()
	return nil
}
