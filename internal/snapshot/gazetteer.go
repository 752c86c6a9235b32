// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package snapshot

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/affinitas/internal/metrics"
	"github.com/tomtom215/affinitas/internal/models"
)

// LoadGazetteer reads a place-label to coordinates lookup from path.
func LoadGazetteer(path string) (models.Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gazetteer: %w", err)
	}
	var gaz models.Gazetteer
	if err := json.Unmarshal(data, &gaz); err != nil {
		return nil, fmt.Errorf("parsing gazetteer %s: %w", path, err)
	}
	return gaz, nil
}

// ApplyGazetteer fills missing coordinates on records whose place label
// exactly matches a gazetteer entry. Each coordinate is filled
// independently and a coordinate already present is never overwritten.
// Returns the number of records that received at least one coordinate.
func (l *Loader) ApplyGazetteer(table *Table, gaz models.Gazetteer) int {
	backfilled := 0
	for i := range table.Records {
		rec := &table.Records[i]
		if rec.HasCoordinates() || rec.PlaceLabel == "" {
			continue
		}
		entry, ok := gaz[rec.PlaceLabel]
		if !ok {
			continue
		}

		touched := false
		if rec.PlaceLat == nil && entry.PlaceLat != nil {
			lat := *entry.PlaceLat
			rec.PlaceLat = &lat
			touched = true
		}
		if rec.PlaceLon == nil && entry.PlaceLon != nil {
			lon := *entry.PlaceLon
			rec.PlaceLon = &lon
			touched = true
		}
		if touched {
			backfilled++
			metrics.GazetteerBackfills.Inc()
		}
	}

	l.logger.Info().
		Int("entries", len(gaz)).
		Int("backfilled", backfilled).
		Msg("Applied gazetteer")
	return backfilled
}
