// Package api provides the HTTP API for HealthGuardian.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/api/handler"
	"github.com/healthguardian/healthguardian/internal/api/middleware"
	"github.com/healthguardian/healthguardian/internal/assessment"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Runner      handler.AssessmentRunner
	Tracker     *assessment.Tracker

	// Providers lists the upstream provider names reported by the status
	// endpoint.
	Providers []string
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "healthguardian-api"
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
	r.Use(middleware.RequireJSON)          // Reject non-JSON request bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime).WithProviders(cfg.Providers...)
	assessmentHandler := handler.NewAssessmentHandler(cfg.Runner, cfg.Tracker, cfg.Logger)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Assessment endpoints
		r.Route("/assessments", func(r chi.Router) {
			r.Post("/", assessmentHandler.Create)
			r.Get("/latest", assessmentHandler.Latest)
		})
	})

	return r
}
