// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/affinitas/internal/models"
)

func TestLoadGazetteer(t *testing.T) {
	path := writeFixture(t, "gazetteer.json", `{
	  "Athens": {"place_lat": 37.9838, "place_lon": 23.7275},
	  "Paris": {"place_lat": 48.8566, "place_lon": 2.3522}
	}`)

	gaz, err := LoadGazetteer(path)
	if err != nil {
		t.Fatalf("LoadGazetteer() error = %v", err)
	}
	if len(gaz) != 2 {
		t.Fatalf("len(gazetteer) = %d, want 2", len(gaz))
	}

	athens, ok := gaz["Athens"]
	if !ok {
		t.Fatal("gazetteer missing Athens")
	}
	if athens.PlaceLat == nil || *athens.PlaceLat != 37.9838 {
		t.Errorf("Athens.PlaceLat = %v, want 37.9838", athens.PlaceLat)
	}
}

func TestLoadGazetteerErrors(t *testing.T) {
	if _, err := LoadGazetteer(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadGazetteer(missing file) error = nil, want error")
	}

	bad := writeFixture(t, "bad.json", `["not", "a", "map"]`)
	if _, err := LoadGazetteer(bad); err == nil {
		t.Error("LoadGazetteer(malformed file) error = nil, want error")
	}
}

func TestApplyGazetteer(t *testing.T) {
	gaz := models.Gazetteer{
		"Athens":  {PlaceLat: floatPtr(37.9838), PlaceLon: floatPtr(23.7275)},
		"Paris":   {PlaceLat: floatPtr(48.8566), PlaceLon: floatPtr(2.3522)},
		"Unknown": {PlaceLat: floatPtr(0), PlaceLon: floatPtr(0)},
		"Delphi":  {PlaceLat: floatPtr(38.4824)}, // sparse entry, no longitude
	}

	tests := []struct {
		name      string
		record    models.Record
		wantLat   *float64
		wantLon   *float64
		wantCount int
	}{
		{
			name:      "backfills both coordinates",
			record:    models.Record{ID: "r1", PlaceLabel: "Athens"},
			wantLat:   floatPtr(37.9838),
			wantLon:   floatPtr(23.7275),
			wantCount: 1,
		},
		{
			name:      "never overwrites a present coordinate",
			record:    models.Record{ID: "r2", PlaceLabel: "Paris", PlaceLat: floatPtr(10)},
			wantLat:   floatPtr(10),
			wantLon:   floatPtr(2.3522),
			wantCount: 1,
		},
		{
			name:      "record with both coordinates is untouched",
			record:    models.Record{ID: "r3", PlaceLabel: "Paris", PlaceLat: floatPtr(1), PlaceLon: floatPtr(2)},
			wantLat:   floatPtr(1),
			wantLon:   floatPtr(2),
			wantCount: 0,
		},
		{
			name:      "no exact label match",
			record:    models.Record{ID: "r4", PlaceLabel: "Athens, Greece"},
			wantLat:   nil,
			wantLon:   nil,
			wantCount: 0,
		},
		{
			name:      "empty place label skips lookup",
			record:    models.Record{ID: "r5"},
			wantLat:   nil,
			wantLon:   nil,
			wantCount: 0,
		},
		{
			name:      "sparse entry fills only what it has",
			record:    models.Record{ID: "r6", PlaceLabel: "Delphi"},
			wantLat:   floatPtr(38.4824),
			wantLon:   nil,
			wantCount: 1,
		},
	}

	loader := NewLoader(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &Table{
				Records: []models.Record{tt.record},
				Index:   map[string]int{tt.record.ID: 0},
			}

			count := loader.ApplyGazetteer(table, gaz)
			if count != tt.wantCount {
				t.Errorf("ApplyGazetteer() = %d, want %d", count, tt.wantCount)
			}

			got := table.Records[0]
			if (got.PlaceLat == nil) != (tt.wantLat == nil) {
				t.Fatalf("PlaceLat = %v, want %v", got.PlaceLat, tt.wantLat)
			}
			if got.PlaceLat != nil && *got.PlaceLat != *tt.wantLat {
				t.Errorf("PlaceLat = %v, want %v", *got.PlaceLat, *tt.wantLat)
			}
			if (got.PlaceLon == nil) != (tt.wantLon == nil) {
				t.Fatalf("PlaceLon = %v, want %v", got.PlaceLon, tt.wantLon)
			}
			if got.PlaceLon != nil && *got.PlaceLon != *tt.wantLon {
				t.Errorf("PlaceLon = %v, want %v", *got.PlaceLon, *tt.wantLon)
			}
		})
	}
}

// Backfilled coordinates must be copies, not aliases into the gazetteer.
func TestApplyGazetteerCopiesValues(t *testing.T) {
	lat, lon := 37.9838, 23.7275
	gaz := models.Gazetteer{"Athens": {PlaceLat: &lat, PlaceLon: &lon}}
	table := &Table{
		Records: []models.Record{{ID: "r1", PlaceLabel: "Athens"}},
		Index:   map[string]int{"r1": 0},
	}

	loader := NewLoader(zerolog.Nop())
	loader.ApplyGazetteer(table, gaz)

	lat = 0
	if *table.Records[0].PlaceLat != 37.9838 {
		t.Errorf("PlaceLat = %v, want 37.9838 after mutating gazetteer", *table.Records[0].PlaceLat)
	}
}
