// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package similarity

// Matrix is a dense square similarity matrix backed by one contiguous
// float64 slice (row-major). A freshly created Matrix is all zeros, which
// is also the "no data" value for every channel, so kernels only write
// the pairs they can actually score.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix creates an n x n zero matrix.
func NewMatrix(n int) *Matrix {
	if n < 0 {
		n = 0
	}
	return &Matrix{
		n:    n,
		data: make([]float64, n*n),
	}
}

// Size returns the matrix dimension n.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the value at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Set writes the value at (i, j) only.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.n+j] = v
}

// SetSym writes v at both (i, j) and (j, i), keeping the matrix
// symmetric. Kernels call this while iterating pairs with i <= j.
func (m *Matrix) SetSym(i, j int, v float64) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// Row returns a copy of row i. Callers mutate the copy freely (ranking
// overwrites the self-entry with a sentinel).
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.data[i*m.n:(i+1)*m.n])
	return row
}

// MinMaxScale rescales the whole matrix linearly so the minimum observed
// value maps to 0 and the maximum to 1. Returns whether scaling was
// applied. Skipped when n <= 1 (no pairs exist) and when every entry is
// identical (nothing to spread; scaling would divide by zero). Scaling
// the whole matrix with one affine map preserves symmetry.
func (m *Matrix) MinMaxScale() bool {
	if m.n <= 1 {
		return false
	}

	lo, hi := m.data[0], m.data[0]
	for _, v := range m.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return false
	}

	span := hi - lo
	for i, v := range m.data {
		m.data[i] = (v - lo) / span
	}
	return true
}
