// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/affinitas/internal/models"
)

// Health handles health check requests.
//
// Reports store connectivity and, when a graph has been built, the run id
// and creation time of the manifest currently served. The service is
// "degraded" when the store is unreachable or no build has completed yet;
// neighbor lookups would 404 in that state but the process is alive.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	// Check graph store connectivity (nil means not connected)
	storeConnected := h.store != nil

	// A loaded manifest means a completed build run is being served
	var runID string
	var createdAt *time.Time
	graphLoaded := false
	if storeConnected {
		if manifest, err := h.store.LatestManifest(r.Context()); err == nil {
			graphLoaded = true
			runID = manifest.RunID
			created := manifest.CreatedAt
			createdAt = &created
		}
	}

	status := "healthy"
	if !storeConnected || !graphLoaded {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:         status,
		Version:        h.version,
		StoreConnected: storeConnected,
		RunID:          runID,
		GraphCreatedAt: createdAt,
		Uptime:         time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the service is ready to handle traffic, meaning
// the store is open and a graph manifest can be read. Returns 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	// Check graph store connectivity (nil means not connected)
	storeConnected := h.store != nil

	graphLoaded := false
	if storeConnected {
		if _, err := h.store.LatestManifest(r.Context()); err == nil {
			graphLoaded = true
		}
	}
	ready := storeConnected && graphLoaded

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"store_connected": storeConnected,
			"graph_loaded":    graphLoaded,
			"ready_to_serve":  ready,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
