// Package api provides the HTTP API for RouteCraft.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/routecraft/routecraft/internal/api/handler"
	"github.com/routecraft/routecraft/internal/api/middleware"
	"github.com/routecraft/routecraft/internal/auth"
	"github.com/routecraft/routecraft/internal/directions"
	"github.com/routecraft/routecraft/internal/params"
	"github.com/routecraft/routecraft/internal/preset"
	"github.com/routecraft/routecraft/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	AuthService       *auth.Service
	DirectionsService *directions.Service
	PresetService     *preset.Service
	Params            *params.Handler
	Registry          *resilience.Registry
	DB                handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "routecraft-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.Registry, cfg.DirectionsService)
	directionsHandler := handler.NewDirectionsHandler(cfg.DirectionsService, cfg.PresetService, cfg.Params)
	metadataHandler := handler.NewMetadataHandler()
	presetHandler := handler.NewPresetHandler(cfg.PresetService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)  // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/enums", metadataHandler.Enums)
		})

		// Directions endpoint - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/directions/{profile}", directionsHandler.ComputeDirections)

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByClient(middleware.StandardRateLimit)) // 100 req/min per client

			// Preset management
			r.Route("/presets", func(r chi.Router) {
				r.Get("/", presetHandler.ListPresets)
				r.Post("/", presetHandler.CreatePreset)
				r.Route("/{name}", func(r chi.Router) {
					r.Get("/", presetHandler.GetPreset)
					r.Put("/", presetHandler.UpdatePreset)
					r.Delete("/", presetHandler.DeletePreset)
				})
			})
		})
	})

	return r
}
