// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package api provides the HTTP REST API layer for Affinitas serve mode.

This package exposes the persisted similarity graph over a small read-only
API. Nothing here recomputes similarity: every endpoint reads what the most
recent build run wrote to the Badger graph store.

Key Components:

  - Router: HTTP route configuration and middleware stack integration
  - Handler: Request handlers backed by the graph store
  - Response formatting: Standardized JSON responses with metadata
  - Error handling: Consistent error envelopes with appropriate HTTP status codes
  - Rate limiting: go-chi/httprate IP-based limiting
  - CORS: go-chi/cors for cross-origin consumers (kiosks, collection sites)

Endpoints:

 1. Health (/api/v1/health):
    - health: store connectivity plus run id and creation time of the served graph
    - health/live: process liveness (Kubernetes-style)
    - health/ready: 503 until the store holds a completed build run

 2. Graph (/api/v1):
    - neighbors/{id}: one record's ranked neighbor list with per-channel
      score breakdowns; optional ?limit=N truncation
    - graph/stats: record count, vocabulary size, top-K, run provenance

 3. Observability (/metrics):
    - Prometheus exposition, registered when metrics.enabled is true

Usage Example:

	import (
	    "github.com/tomtom215/affinitas/internal/api"
	    "github.com/tomtom215/affinitas/internal/export"
	)

	// Open the store written by a previous build run
	store, _ := export.OpenStore(cfg.Export.StorePath, logger)

	// Create handler and router
	handler := api.NewHandler(store, cfg, version)
	router := api.NewRouter(handler, cfg)

	// Setup routes and start server
	http.ListenAndServe(":8080", router.SetupChi())

Response Format:

All endpoints return the standard envelope:

	{
	  "status": "success",
	  "data": { ... },
	  "metadata": {"timestamp": "...", "query_time_ms": 2}
	}

Errors use the same envelope with an error object (VALIDATION_ERROR,
NOT_FOUND, STORE_ERROR, RATE_LIMIT_EXCEEDED) in place of data.

Thread Safety:

Handlers are stateless apart from the shared store handle; Badger reads are
safe for concurrent use, so the router can serve requests in parallel
without additional locking.
*/
package api
