// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides a consistent structure for both successful and error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"id": "rec-001", "neighbors": [...]},
//	  "metadata": {"timestamp": "2026-08-25T12:00:00Z", "query_time_ms": 2}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "no neighbor list for record"},
//	  "metadata": {"timestamp": "2026-08-25T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the store lookup time in milliseconds; 0 for responses
// that never touched the store.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Resource doesn't exist
//   - STORE_ERROR: Graph store read failure
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthStatus represents the health check response for serve mode.
type HealthStatus struct {
	Status         string     `json:"status"`
	Version        string     `json:"version"`
	StoreConnected bool       `json:"store_connected"`
	RunID          string     `json:"run_id,omitempty"`
	GraphCreatedAt *time.Time `json:"graph_created_at,omitempty"`
	Uptime         float64    `json:"uptime_seconds"`
}

// NeighborsResponse is the data payload for the neighbors endpoint: one
// record's stored top-K list, optionally truncated by the limit parameter.
type NeighborsResponse struct {
	ID        string          `json:"id"`
	Count     int             `json:"count"`
	Neighbors []NeighborEntry `json:"neighbors"`
}
