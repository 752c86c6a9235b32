// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package similarity

import (
	"math"

	"github.com/tomtom215/affinitas/internal/models"
)

// DeriveTemporalRange computes the year span a record occupies, or nil
// when no temporal field is usable. Priority: an exact year beats the
// calendar dates, both dates beat a single date, and a single date still
// yields a degenerate one-year span. A reversed date pair is normalized
// so MinYear <= MaxYear.
func DeriveTemporalRange(r *models.Record) *models.TemporalRange {
	switch {
	case r.Year != nil:
		return &models.TemporalRange{MinYear: *r.Year, MaxYear: *r.Year}
	case r.DateBegin != nil && r.DateEnd != nil:
		lo, hi := r.DateBegin.Year(), r.DateEnd.Year()
		if lo > hi {
			lo, hi = hi, lo
		}
		return &models.TemporalRange{MinYear: lo, MaxYear: hi}
	case r.DateBegin != nil:
		y := r.DateBegin.Year()
		return &models.TemporalRange{MinYear: y, MaxYear: y}
	case r.DateEnd != nil:
		y := r.DateEnd.Year()
		return &models.TemporalRange{MinYear: y, MaxYear: y}
	default:
		return nil
	}
}

// DeriveTemporalRanges derives the range for every record, index-aligned
// with the input. Records without temporal data get nil.
func DeriveTemporalRanges(records []models.Record) []*models.TemporalRange {
	ranges := make([]*models.TemporalRange, len(records))
	for i := range records {
		ranges[i] = DeriveTemporalRange(&records[i])
	}
	return ranges
}

// temporalGapYears returns the minimum gap in years between two ranges:
// 0 when they overlap or touch, otherwise the distance between the
// nearer edges.
func temporalGapYears(a, b models.TemporalRange) float64 {
	switch {
	case a.MaxYear < b.MinYear:
		return float64(b.MinYear - a.MaxYear)
	case b.MaxYear < a.MinYear:
		return float64(a.MinYear - b.MaxYear)
	default:
		return 0
	}
}

// BuildTemporalMatrix computes exp(-gap/bandwidth) for every pair of
// records with defined ranges, iterating i <= j and mirroring. A nil
// range leaves its whole row and column at the zero default; the diagonal
// of a record with a range is exp(0) = 1.
func BuildTemporalMatrix(ranges []*models.TemporalRange, bandwidthYears float64) *Matrix {
	n := len(ranges)
	m := NewMatrix(n)

	for i := 0; i < n; i++ {
		if ranges[i] == nil {
			continue
		}
		for j := i; j < n; j++ {
			if ranges[j] == nil {
				continue
			}
			gap := temporalGapYears(*ranges[i], *ranges[j])
			m.SetSym(i, j, math.Exp(-gap/bandwidthYears))
		}
	}
	return m
}
