// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/affinitas/internal/metrics"
	"github.com/tomtom215/affinitas/internal/models"
)

// preferredLanguages is the probe order for language-keyed label maps.
var preferredLanguages = []string{"en", "fr", "de"}

// dateLayouts are tried in order when parsing date_begin and date_end.
// Anything that matches none of them normalizes to nil.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
}

// Table is a normalized, order-stable record table built from one
// snapshot file. The position of a record in Records is the matrix
// index used by every similarity channel; Index maps record ids back to
// that position.
type Table struct {
	Records []models.Record
	Index   map[string]int
	Path    string
	SHA256  string
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.Records)
}

// Get returns the record with the given id.
func (t *Table) Get(id string) (*models.Record, bool) {
	i, ok := t.Index[id]
	if !ok {
		return nil, false
	}
	return &t.Records[i], true
}

// Loader reads snapshot files and normalizes their records.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a snapshot loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "snapshot").Logger(),
	}
}

// Load reads, parses, and normalizes the snapshot at path. Record order
// in the file is preserved. An unreadable or unparsable file and a
// duplicate record id are the only fatal conditions; malformed
// individual fields normalize to empty or nil and are counted in the
// summary log. Entries without an id are dropped and counted.
func (l *Loader) Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	digest := sha256.Sum256(data)

	var raws []models.RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	records := make([]models.Record, 0, len(raws))
	index := make(map[string]int, len(raws))
	var skipped, yearsNulled, datesNulled, coordsNulled int

	for i := range raws {
		raw := &raws[i]
		rec := normalizeRecord(raw)

		if rec.ID == "" {
			skipped++
			metrics.RecordsSkipped.Inc()
			l.logger.Warn().Int("position", i).Msg("Dropping snapshot entry without id")
			continue
		}
		if _, ok := index[rec.ID]; ok {
			return nil, fmt.Errorf("duplicate record id %q at snapshot position %d", rec.ID, i)
		}

		if raw.Year != nil && rec.Year == nil {
			yearsNulled++
		}
		if raw.DateBegin != nil && rec.DateBegin == nil {
			datesNulled++
		}
		if raw.DateEnd != nil && rec.DateEnd == nil {
			datesNulled++
		}
		if raw.PlaceLat != nil && rec.PlaceLat == nil {
			coordsNulled++
		}
		if raw.PlaceLon != nil && rec.PlaceLon == nil {
			coordsNulled++
		}

		index[rec.ID] = len(records)
		records = append(records, rec)
	}

	metrics.RecordsLoaded.Set(float64(len(records)))
	l.logger.Info().
		Str("path", path).
		Int("records", len(records)).
		Int("skipped", skipped).
		Int("years_nulled", yearsNulled).
		Int("dates_nulled", datesNulled).
		Int("coords_nulled", coordsNulled).
		Msg("Loaded snapshot")

	return &Table{
		Records: records,
		Index:   index,
		Path:    path,
		SHA256:  hex.EncodeToString(digest[:]),
	}, nil
}

// normalizeRecord flattens one raw wire record to its scalar form.
func normalizeRecord(raw *models.RawRecord) models.Record {
	return models.Record{
		ID:          stringifyID(raw.ID),
		Title:       flattenText(raw.Title),
		Description: flattenText(raw.Description),
		Concepts:    flattenText(raw.Concepts),
		Year:        parseYear(raw.Year),
		DateBegin:   parseDate(raw.DateBegin),
		DateEnd:     parseDate(raw.DateEnd),
		PlaceLabel:  flattenPlaceLabel(raw.PlaceLabel),
		PlaceLat:    parseCoord(raw.PlaceLat, 90),
		PlaceLon:    parseCoord(raw.PlaceLon, 180),
		Country:     flattenText(raw.Country),
		Collection:  flattenText(raw.Collection),
	}
}

// stringifyID coerces an id to string form. Numeric ids keep their
// shortest decimal rendering.
func stringifyID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// flattenText resolves a flexible wire value to a single string. Lists
// are space-joined; language-keyed maps prefer English, French, then
// German, and otherwise join all values in sorted key order so the
// result does not depend on map iteration order.
func flattenText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := flattenText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]interface{}:
		for _, lang := range preferredLanguages {
			if s := flattenText(t[lang]); s != "" {
				return s
			}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := flattenText(t[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// flattenPlaceLabel resolves a flexible place label to one display
// string. Unlike free text fields, a list contributes only its first
// element, so the record keeps a single exact lookup key into the
// gazetteer. A preferred-language value of "Unknown" is treated as
// absent; the sorted-order fallback may still yield "Unknown" when the
// map holds nothing better.
func flattenPlaceLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		if len(t) == 0 {
			return ""
		}
		return flattenPlaceLabel(t[0])
	case map[string]interface{}:
		for _, lang := range preferredLanguages {
			if s := flattenPlaceLabel(t[lang]); s != "" && s != "Unknown" {
				return s
			}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := flattenPlaceLabel(t[k]); s != "" {
				return s
			}
		}
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// parseYear coerces the year field to an integer. Harvesters emit
// "Unknown Year" for undated items; that and every other non-numeric
// value normalize to nil.
func parseYear(v any) *int {
	switch t := v.(type) {
	case float64:
		y := int(t)
		return &y
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		y := int(f)
		return &y
	default:
		return nil
	}
}

// parseDate tries the snapshot date layouts in order and returns the
// parsed date in UTC, or nil when nothing matches.
func parseDate(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			ts = ts.UTC()
			return &ts
		}
	}
	return nil
}

// parseCoord coerces a coordinate to a float. bound is 90 for latitude
// and 180 for longitude; values outside it normalize to nil so a bad
// coordinate degrades to zero spatial contribution instead of a bogus
// distance.
func parseCoord(v any, bound float64) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || f < -bound || f > bound {
		return nil
	}
	return &f
}
