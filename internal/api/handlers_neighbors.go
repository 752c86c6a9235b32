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

// NeighborsRequest bounds the optional limit query parameter.
type NeighborsRequest struct {
	Limit int `validate:"omitempty,min=1,max=1000"`
}

// Neighbors returns the stored neighbor list for one record.
//
// The list is served exactly as the build pipeline ranked it: descending by
// fused score, capped at top_k, with the per-channel breakdown on every
// entry. An optional ?limit=N query parameter truncates the list further;
// it never re-ranks or recomputes scores.
func (h *Handler) Neighbors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Record id is required", nil)
		return
	}

	req := NeighborsRequest{
		Limit: getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	neighbors, err := h.store.Neighbors(r.Context(), id)
	queryTime := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, export.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "No neighbor list stored for this record id", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to read neighbor list", err)
		return
	}

	if req.Limit > 0 && req.Limit < len(neighbors) {
		neighbors = neighbors[:req.Limit]
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.NeighborsResponse{
			ID:        id,
			Count:     len(neighbors),
			Neighbors: neighbors,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime,
		},
	})
}
