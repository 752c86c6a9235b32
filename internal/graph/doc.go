// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package graph fuses the per-channel similarity matrices into a global
score matrix and extracts each record's ranked neighbor list.

The Builder owns one pipeline run end to end: it derives the text,
temporal, and spatial matrices from a loaded snapshot table, min-max
normalizes the two decay channels, fuses all channels by weighted sum,
and ranks the top-K neighbors per record. All intermediate state
(kernels, matrices) lives in the Build call frame; nothing is shared
between runs and the package holds no mutable state.

Fusion is modeled as an ordered channel list rather than a fixed
arithmetic expression. Each Channel carries a name, a weight, and an
optional matrix; a channel without a matrix (the reserved profile
channel) contributes zero until its kernel exists. Adding a future
channel means appending to the list the Builder constructs.

Ranking copies one fused row at a time, forces the self entry to -1
(strictly below any valid score, since channels and weights are
non-negative), and selects the min(K, N-1) highest entries in descending
score order, ties broken by ascending record index. The per-channel
scores attached to each neighbor are the post-normalization matrix
values.

Cancellation is honored between stages only. A Build aborted mid-run
returns an error and no Graph, so callers can never persist output
derived from partially computed matrices.
*/
package graph
