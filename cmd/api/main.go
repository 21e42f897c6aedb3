// Package main provides the entrypoint for the RouteCraft API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/routecraft/routecraft/internal/api"
	"github.com/routecraft/routecraft/internal/api/middleware"
	"github.com/routecraft/routecraft/internal/auth"
	"github.com/routecraft/routecraft/internal/database"
	"github.com/routecraft/routecraft/internal/directions"
	"github.com/routecraft/routecraft/internal/directions/engine"
	"github.com/routecraft/routecraft/internal/params"
	"github.com/routecraft/routecraft/internal/preset"
	"github.com/routecraft/routecraft/internal/provider/resilience"
	"github.com/routecraft/routecraft/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "routecraft-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting RouteCraft API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	engineBaseURL := os.Getenv("ENGINE_BASE_URL")
	if engineBaseURL == "" {
		engineBaseURL = "http://localhost:8082"
		log.Warn().Msg("ENGINE_BASE_URL not set - using local default")
	}
	engineAPIKey := os.Getenv("ENGINE_API_KEY")

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize auth service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	authService := auth.NewService(auth.Config{
		SigningKey: jwtSigningKey,
		Issuer:     os.Getenv("JWT_ISSUER"),
		Audience:   os.Getenv("JWT_AUDIENCE"),
	})
	log.Info().Msg("auth service initialized")

	// Initialize parameter handler
	paramsHandler := params.NewHandler(params.HandlerConfig{Logger: log})

	// Initialize upstream registry and engine client
	registry := resilience.NewRegistry()
	engineClient := engine.NewClient(engine.ClientConfig{
		BaseURL:  engineBaseURL,
		APIKey:   engineAPIKey,
		Registry: registry,
		Logger:   log,
	})
	log.Info().
		Str("engine", engineClient.Name()).
		Str("base_url", engineBaseURL).
		Msg("engine client initialized")

	// Initialize directions service
	directionsService := directions.NewService(directions.ServiceConfig{
		Engine: engineClient,
		Logger: log,
	})
	log.Info().Msg("directions service initialized")

	// Initialize preset repository and service
	presetRepo := preset.NewPostgresRepository(pool)
	presetService := preset.NewService(preset.ServiceConfig{
		Repository: presetRepo,
		Params:     paramsHandler,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("preset service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		AuthService:       authService,
		DirectionsService: directionsService,
		PresetService:     presetService,
		Params:            paramsHandler,
		Registry:          registry,
		DB:                pool,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
