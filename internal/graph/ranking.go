// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package graph

import (
	"sort"

	"github.com/tomtom215/affinitas/internal/models"
	"github.com/tomtom215/affinitas/internal/similarity"
)

// selfSentinel replaces a record's own fused score before ranking. All
// channel scores and weights are non-negative, so every real fused
// score is >= 0 and the sentinel can never be selected as a neighbor.
const selfSentinel = -1.0

// rankNeighbors extracts the top-K neighbor list of every record from
// the fused matrix. Neighbor entries carry the post-normalization
// channel scores for the pair alongside the fused score. The flat edge
// slice holds the same pairs in the same order, ready for the
// relational sink.
//
// List length is min(topK, n-1); a single-record corpus yields an
// empty list for its record. Order is descending fused score, ties
// broken by ascending record index so runs over the same snapshot rank
// identically.
func rankNeighbors(runID string, records []models.Record, fused, sText, sDate, sPlace *similarity.Matrix, topK int) (map[string][]models.NeighborEntry, []models.Edge) {
	n := len(records)
	limit := topK
	if n-1 < limit {
		limit = n - 1
	}
	if limit < 0 {
		limit = 0
	}

	neighbors := make(map[string][]models.NeighborEntry, n)
	edges := make([]models.Edge, 0, n*limit)
	order := make([]int, n)

	for i := 0; i < n; i++ {
		row := fused.Row(i)
		row[i] = selfSentinel

		for j := range order {
			order[j] = j
		}
		sort.Slice(order, func(a, b int) bool {
			if row[order[a]] != row[order[b]] {
				return row[order[a]] > row[order[b]]
			}
			return order[a] < order[b]
		})

		entries := make([]models.NeighborEntry, 0, limit)
		for _, j := range order[:limit] {
			entries = append(entries, models.NeighborEntry{
				ID:         records[j].ID,
				Score:      row[j],
				TextScore:  sText.At(i, j),
				DateScore:  sDate.At(i, j),
				PlaceScore: sPlace.At(i, j),
				Title:      records[j].Title,
			})
			edges = append(edges, models.Edge{
				RunID:      runID,
				SourceID:   records[i].ID,
				TargetID:   records[j].ID,
				Score:      row[j],
				TextScore:  sText.At(i, j),
				DateScore:  sDate.At(i, j),
				PlaceScore: sPlace.At(i, j),
			})
		}
		neighbors[records[i].ID] = entries
	}

	return neighbors, edges
}
