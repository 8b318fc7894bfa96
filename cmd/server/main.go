// Package main is the entry point for the ride search service.
//
//	@title						Ride Search API
//	@version					1.0.0
//	@description				Search, filter, sort and paginate published intercity rides and open ride requests.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/alwahis/ride-search/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alwahis/ride-search/internal/config"
	"github.com/alwahis/ride-search/internal/infrastructure/errreport"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"

	// Import generated docs for swagger
	_ "github.com/alwahis/ride-search/docs"

	// Application layers
	ridehttp "github.com/alwahis/ride-search/internal/adapter/http"
	"github.com/alwahis/ride-search/internal/adapter/http/middleware"
	"github.com/alwahis/ride-search/internal/adapter/store"
	"github.com/alwahis/ride-search/internal/usecase"
)

const (
	startupTimeout = 2 * time.Minute
	flushTimeout   = 2 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Str("version", cfg.App.Version).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Driver).
		Msg("Configuration loaded")

	reporter, err := errreport.New(errreport.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.App.Env,
		Release:     cfg.App.Version,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Error reporting disabled")
		reporter = errreport.Nop{}
	}
	defer reporter.Flush(flushTimeout)

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	backend, closeStore, err := store.Open(startCtx, store.Options{
		Driver:          cfg.Store.Driver,
		DatabaseURL:     cfg.Store.DatabaseURL,
		SQLitePath:      cfg.Store.SQLitePath,
		SeedFile:        cfg.Store.SeedFile,
		ConnectAttempts: cfg.Store.ConnectAttempts,
		Location:        cfg.Location(),
		Clock:           timeutil.NewRealClock(),
		Logger:          log,
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("Failed to open ride store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("Error closing ride store")
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	mwOpts := middleware.Options{
		Logger:         log,
		Reporter:       reporter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RPS,
			Burst:             cfg.RateLimit.Burst,
		},
	}
	middleware.Setup(e, mwOpts)

	// Setup routes
	ucConfig := &usecase.Config{
		SearchTimeout:  cfg.Timeouts.Search,
		Location:       cfg.Location(),
		DefaultPerPage: cfg.Search.DefaultPerPage,
		MaxPerPage:     cfg.Search.MaxPerPage,
	}
	ucOpts := []usecase.Option{usecase.WithLogger(log), usecase.WithReporter(reporter)}
	rideUseCase := usecase.NewRideSearchUseCase(backend, ucConfig, ucOpts...)
	requestUseCase := usecase.NewRequestSearchUseCase(backend, ucConfig, ucOpts...)

	ridehttp.RegisterRoutes(e,
		ridehttp.NewRideHandler(rideUseCase, cfg.Location()),
		ridehttp.NewRequestHandler(requestUseCase, cfg.Location()),
		ridehttp.NewHealthHandler(backend, log),
		middleware.API(mwOpts)...,
	)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log, cfg.Server.ShutdownTimeout)
}

// setupLogger builds the service logger from config and installs it as the
// global zerolog logger.
func setupLogger(cfg *config.Config) *logger.Logger {
	lcfg := logger.DefaultConfig()
	lcfg.Level = cfg.Logging.Level
	lcfg.Format = cfg.Logging.Format
	lcfg.EnableCaller = cfg.IsDevelopment()

	l := logger.New(lcfg)
	l.Install()
	return l
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger, timeout time.Duration) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
