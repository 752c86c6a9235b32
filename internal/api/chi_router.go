// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

// Package api provides HTTP routing using Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/affinitas/internal/config"
)

// Router wires handlers and middleware into the served HTTP surface.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	metricsEnabled bool
}

// NewRouter creates a Router from the handler and server configuration.
// CORS origins and the rate limit come from the server section; a rate
// limit of 0 disables limiting.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	chiMw := NewChiMiddlewareFromServer(cfg.Server.CORSOrigins, cfg.Server.RateLimit)

	return &Router{
		handler:        handler,
		chiMiddleware:  chiMw,
		metricsEnabled: cfg.Metrics.Enabled,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(RequestLogger())             // One log line per completed request
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting (1000/min) allows frequent monitoring
	// while preventing abuse
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Graph API Endpoints
	// ========================
	// Read-only views over the stored similarity graph
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())
		r.Use(chiPathValue) // Bridge Chi URL params to r.PathValue()

		r.Get("/neighbors/{id}", router.handler.Neighbors)
		r.Get("/graph/stats", router.handler.GraphStats)
	})

	// ========================
	// Observability
	// ========================
	if router.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// chiPathValue middleware injects Chi URL params into request so handlers
// using r.PathValue() continue to work. This bridges Chi's chi.URLParam()
// with Go 1.22+'s r.PathValue().
func chiPathValue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		if rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if i < len(rctx.URLParams.Values) {
					r.SetPathValue(key, rctx.URLParams.Values[i])
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
