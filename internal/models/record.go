// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package models

import (
	"time"
)

// RawRecord is the wire shape of one harvested catalog item before
// normalization. Harvesters emit inconsistent field types across source
// catalogs (lists where scalars are expected, language-keyed label maps,
// sentinel strings for unknown years), so every flexible field is decoded
// as any and resolved by the snapshot loader.
type RawRecord struct {
	ID          any `json:"id"`          // string; numeric ids arrive as JSON numbers in some catalogs
	Title       any `json:"title"`       // string or []string
	Description any `json:"description"` // string or []string
	Concepts    any `json:"concepts"`    // string or []string
	Year        any `json:"year"`        // number, numeric string, or sentinel "Unknown Year"
	DateBegin   any `json:"date_begin"`  // ISO-ish date string or null
	DateEnd     any `json:"date_end"`    // ISO-ish date string or null
	PlaceLabel  any `json:"place_label"` // string, []string, or language-keyed map
	PlaceLat    any `json:"place_lat"`   // number, numeric string, or null
	PlaceLon    any `json:"place_lon"`   // number, numeric string, or null
	Country     any `json:"country"`     // string or []string
	Collection  any `json:"collection"`  // string or []string
}

// Record is one normalized catalog item. All flexible wire fields have been
// flattened to scalars; absent or unparsable values are nil pointers or
// empty strings. Normalization is idempotent: re-normalizing a Record's
// fields yields the same Record.
type Record struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Concepts    string     `json:"concepts"`
	Year        *int       `json:"year"`
	DateBegin   *time.Time `json:"date_begin"`
	DateEnd     *time.Time `json:"date_end"`
	PlaceLabel  string     `json:"place_label"`
	PlaceLat    *float64   `json:"place_lat"`
	PlaceLon    *float64   `json:"place_lon"`
	Country     string     `json:"country"`
	Collection  string     `json:"collection"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r *Record) HasCoordinates() bool {
	return r.PlaceLat != nil && r.PlaceLon != nil
}

// TextBlob concatenates the textual fields used for term-vector similarity.
// Field order matches the harvested column order: title, concepts,
// description, place label. Empty fields contribute empty strings; the
// tokenizer collapses the resulting extra whitespace.
func (r *Record) TextBlob() string {
	return r.Title + " " + r.Concepts + " " + r.Description + " " + r.PlaceLabel
}

// TemporalRange is the derived year span a record occupies for temporal
// similarity. MinYear <= MaxYear always holds; an exact year is the
// degenerate span (y, y).
type TemporalRange struct {
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
}

// GazetteerEntry holds the coordinates a gazetteer maps a place name to.
// Either coordinate may be missing in sparse gazetteers.
type GazetteerEntry struct {
	PlaceLat *float64 `json:"place_lat"`
	PlaceLon *float64 `json:"place_lon"`
}

// Gazetteer maps exact place labels to coordinates. Used only to backfill
// records that arrived without coordinates; never overwrites present ones.
type Gazetteer map[string]GazetteerEntry
