// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package graph

import "github.com/tomtom215/affinitas/internal/similarity"

// Channel names, in fusion order.
const (
	ChannelText  = "text"
	ChannelDate  = "date"
	ChannelPlace = "place"

	// ChannelProfile is reserved for a future visitor-profile kernel.
	// It participates in the weight vector but has no matrix yet.
	ChannelProfile = "profile"
)

// Channel pairs a similarity matrix with its fusion weight. A channel
// with a nil matrix is declared but not yet computable and contributes
// zero to every fused score.
type Channel struct {
	Name   string
	Weight float64
	Matrix *similarity.Matrix
}

// Fuse combines the channels into a single n-by-n score matrix by
// weighted sum, accumulating channel by channel in list order so
// repeated runs over the same inputs produce bit-identical floats.
// Channels with a nil matrix or a zero weight are skipped.
func Fuse(n int, channels []Channel) *similarity.Matrix {
	fused := similarity.NewMatrix(n)
	for _, ch := range channels {
		if ch.Matrix == nil || ch.Weight == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				fused.Set(i, j, fused.At(i, j)+ch.Weight*ch.Matrix.At(i, j))
			}
		}
	}
	return fused
}
