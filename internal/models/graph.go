// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package models

import (
	"time"
)

// NeighborEntry is one ranked neighbor of a record. The three channel
// scores are the post-normalization matrix values for the pair; Score is
// their weighted sum. All four score fields are always serialized, even
// when exactly 0, because downstream consumers read the breakdown to
// explain why two records are similar.
//
// JSON field names (S_text, S_date, S_place) are the published export
// contract and must not change.
type NeighborEntry struct {
	ID         string  `json:"id"`
	Score      float64 `json:"score"`
	TextScore  float64 `json:"S_text"`
	DateScore  float64 `json:"S_date"`
	PlaceScore float64 `json:"S_place"`
	Title      string  `json:"title"`
}

// Edge is one directed neighbor relation in flat row form, as stored in
// the edges table. Each record owns its top-K list, so (source, target)
// present does not imply (target, source) present.
type Edge struct {
	RunID      string  `json:"run_id"`
	SourceID   string  `json:"source_id"`
	TargetID   string  `json:"target_id"`
	Score      float64 `json:"score"`
	TextScore  float64 `json:"s_text"`
	DateScore  float64 `json:"s_date"`
	PlaceScore float64 `json:"s_place"`
}

// RunManifest records the provenance of one pipeline run: what snapshot
// was read, the effective tuning, and what came out. Persisted alongside
// the graph so serve mode can report where its data came from.
type RunManifest struct {
	RunID          string             `json:"run_id"`
	CreatedAt      time.Time          `json:"created_at"`
	SnapshotPath   string             `json:"snapshot_path"`
	SnapshotSHA256 string             `json:"snapshot_sha256"`
	RecordCount    int                `json:"record_count"`
	VocabularySize int                `json:"vocabulary_size"`
	TopK           int                `json:"top_k"`
	Weights        map[string]float64 `json:"weights"`
	BandwidthYears float64            `json:"bandwidth_years"`
	SigmaKM        float64            `json:"sigma_km"`
	MaxVocabulary  int                `json:"max_vocabulary"`
	MinDocFreq     int                `json:"min_doc_freq"`
	StageSeconds   map[string]float64 `json:"stage_seconds,omitempty"`
}

// GraphStats summarizes the stored graph for the stats endpoint.
type GraphStats struct {
	RunID          string    `json:"run_id"`
	CreatedAt      time.Time `json:"created_at"`
	RecordCount    int       `json:"record_count"`
	VocabularySize int       `json:"vocabulary_size"`
	TopK           int       `json:"top_k"`
}
