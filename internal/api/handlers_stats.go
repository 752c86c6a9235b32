// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/affinitas/internal/export"
	"github.com/tomtom215/affinitas/internal/models"
)

// GraphStats returns summary statistics for the currently served graph,
// read from the latest run manifest.
func (h *Handler) GraphStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	start := time.Now()
	manifest, err := h.store.LatestManifest(r.Context())
	queryTime := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, export.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "No graph has been built yet", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to read run manifest", err)
		return
	}

	stats := models.GraphStats{
		RunID:          manifest.RunID,
		CreatedAt:      manifest.CreatedAt,
		RecordCount:    manifest.RecordCount,
		VocabularySize: manifest.VocabularySize,
		TopK:           manifest.TopK,
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime,
		},
	})
}
