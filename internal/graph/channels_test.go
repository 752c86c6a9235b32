// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package graph

import (
	"math"
	"testing"

	"github.com/tomtom215/affinitas/internal/similarity"
)

const fuseEpsilon = 1e-12

// diagonalOnes returns an n-by-n matrix with ones on the diagonal and
// the given value at every symmetric off-diagonal pair.
func diagonalOnes(n int, offDiagonal float64) *similarity.Matrix {
	m := similarity.NewMatrix(n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, offDiagonal)
		}
	}
	return m
}

func TestFuse(t *testing.T) {
	text := diagonalOnes(2, 0.8)
	date := diagonalOnes(2, 0.5)
	place := diagonalOnes(2, 0.25)

	fused := Fuse(2, []Channel{
		{Name: ChannelText, Weight: 0.5, Matrix: text},
		{Name: ChannelDate, Weight: 0.2, Matrix: date},
		{Name: ChannelPlace, Weight: 0.2, Matrix: place},
		{Name: ChannelProfile, Weight: 0.1, Matrix: nil},
	})

	want := 0.5*0.8 + 0.2*0.5 + 0.2*0.25
	if got := fused.At(0, 1); math.Abs(got-want) > fuseEpsilon {
		t.Errorf("fused[0][1] = %v, want %v", got, want)
	}
	if fused.At(0, 1) != fused.At(1, 0) {
		t.Errorf("fused matrix not symmetric: %v vs %v", fused.At(0, 1), fused.At(1, 0))
	}

	wantDiag := 0.5 + 0.2 + 0.2
	if got := fused.At(0, 0); math.Abs(got-wantDiag) > fuseEpsilon {
		t.Errorf("fused[0][0] = %v, want %v", got, wantDiag)
	}
}

// A declared channel without a matrix must contribute nothing, so the
// reserved profile slot can carry weight before its kernel exists.
func TestFuseNilMatrixContributesZero(t *testing.T) {
	text := diagonalOnes(2, 1)

	withProfile := Fuse(2, []Channel{
		{Name: ChannelText, Weight: 0.5, Matrix: text},
		{Name: ChannelProfile, Weight: 0.5, Matrix: nil},
	})
	withoutProfile := Fuse(2, []Channel{
		{Name: ChannelText, Weight: 0.5, Matrix: text},
	})

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if withProfile.At(i, j) != withoutProfile.At(i, j) {
				t.Errorf("fused[%d][%d] = %v with nil-matrix channel, want %v", i, j, withProfile.At(i, j), withoutProfile.At(i, j))
			}
		}
	}
}

func TestFuseSkipsZeroWeightChannels(t *testing.T) {
	text := diagonalOnes(2, 0.8)
	date := diagonalOnes(2, 1)

	fused := Fuse(2, []Channel{
		{Name: ChannelText, Weight: 1, Matrix: text},
		{Name: ChannelDate, Weight: 0, Matrix: date},
	})

	if got := fused.At(0, 1); got != 0.8 {
		t.Errorf("fused[0][1] = %v, want 0.8 with zero-weight date channel", got)
	}
}

func TestFuseEmptyCorpus(t *testing.T) {
	fused := Fuse(0, []Channel{
		{Name: ChannelText, Weight: 1, Matrix: similarity.NewMatrix(0)},
	})
	if fused.Size() != 0 {
		t.Errorf("Size() = %d, want 0", fused.Size())
	}
}

// Fusing the same inputs twice must produce bit-identical floats, since
// exported output is required to be reproducible.
func TestFuseDeterministic(t *testing.T) {
	text := diagonalOnes(3, 0.7)
	date := diagonalOnes(3, 0.3)
	channels := []Channel{
		{Name: ChannelText, Weight: 0.6, Matrix: text},
		{Name: ChannelDate, Weight: 0.4, Matrix: date},
	}

	first := Fuse(3, channels)
	second := Fuse(3, channels)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if first.At(i, j) != second.At(i, j) {
				t.Errorf("fused[%d][%d] differs across runs: %v vs %v", i, j, first.At(i, j), second.At(i, j))
			}
		}
	}
}
