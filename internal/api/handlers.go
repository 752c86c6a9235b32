// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package api

import (
	"time"

	"github.com/tomtom215/affinitas/internal/config"
	"github.com/tomtom215/affinitas/internal/export"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_health.go: Health/monitoring endpoints
//   - handlers_neighbors.go: Neighbor list lookup endpoint
//   - handlers_stats.go: Graph stats endpoint
type Handler struct {
	store     *export.Store
	config    *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// The handler serves the read-only similarity graph API: every endpoint
// reads from the Badger graph store written by the build pipeline; nothing
// here mutates the store.
//
// Dependencies:
//   - store: graph store holding neighbor lists and run manifests
//   - cfg: application configuration
//   - version: build version reported by the health endpoint
//
// Example:
//
//	handler := api.NewHandler(store, cfg, version)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(store *export.Store, cfg *config.Config, version string) *Handler {
	return &Handler{
		store:     store,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}
}
