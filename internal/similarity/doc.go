// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package similarity implements the three per-channel similarity kernels and
the dense matrices they produce.

Channels:

  - Text: TF-IDF term vectors over each record's concatenated textual
    fields (title, concepts, description, place label), compared with
    cosine similarity. Values are naturally bounded in [0,1].
  - Temporal: each record's derived year range, compared via exponential
    decay over the gap in years between ranges (overlapping or touching
    ranges have gap 0).
  - Spatial: record coordinates compared via exponential decay over
    haversine great-circle distance in kilometres.

Records missing the data a channel needs (no derivable year range, no
coordinates, empty text) contribute zero similarity on that channel for
every pair they are part of. They are never excluded from the matrix.

Scaling limit:

Every kernel produces a full N x N matrix and iterates all record pairs,
so both time and memory are quadratic in the record count. There is no
index structure or pruning; doubling the corpus quadruples the cost.
Practical corpus size is small-to-medium, thousands of records.

All matrices are symmetric by construction: kernels compute each pair
once for i <= j and mirror the value. The Matrix type's MinMaxScale
applies the whole-matrix min-max normalization used to make the temporal
and spatial channels comparable to the text channel before fusion.
*/
package similarity
