// Package api provides the HTTP API for building Navigator deep links.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/navigatorlink/navigatorlink/internal/api/handler"
	"github.com/navigatorlink/navigatorlink/internal/api/middleware"
	"github.com/navigatorlink/navigatorlink/internal/api/response"
	"github.com/navigatorlink/navigatorlink/internal/links"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	Metrics     *middleware.Metrics
	LinkService *links.Service

	// RequireTLS rejects plain-HTTP requests forwarded by the load balancer.
	RequireTLS bool

	// RateLimitPerMinute caps link builds per client IP. Zero disables the limit.
	RateLimitPerMinute int
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID) // Generate/propagate request ID first
	r.Use(middleware.Tracing()) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r, r.Method+" is not supported on "+r.URL.Path)
	})

	// Initialize handlers
	encoding := ""
	if cfg.LinkService != nil {
		encoding = cfg.LinkService.DefaultEncoding()
	}
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, encoding)
	linkHandler := handler.NewLinkHandler(cfg.LinkService, cfg.Logger)

	buildRateLimit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitPerMinute > 0 {
		buildRateLimit = middleware.RateLimitByIP(middleware.PerMinute(cfg.RateLimitPerMinute))
	}

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.Route("/navigator-links", func(r chi.Router) {
			r.With(buildRateLimit, middleware.RequireJSON).Post("/", linkHandler.BuildLink)
			r.Get("/travel-modes", linkHandler.ListTravelModes)
		})
	})

	return r
}
