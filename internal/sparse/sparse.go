// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparse provides a minimal symmetric sparse matrix in coordinate
// format for constructing test operators.
package sparse

type entry struct {
	i, j int
	v    float64
}

// SymCOO is an n×n symmetric matrix that stores only the entries of one
// triangle in coordinate format. The matrix-vector product applies each
// off-diagonal entry to both of its symmetric positions.
type SymCOO struct {
	n    int
	data []entry
}

// NewSymCOO returns a zero n×n symmetric matrix.
func NewSymCOO(n int) *SymCOO {
	if n <= 0 {
		panic("sparse: dimension not positive")
	}
	return &SymCOO{n: n}
}

// Dim returns the dimension of the matrix.
func (m *SymCOO) Dim() int {
	return m.n
}

// Append adds v to the entries at (i, j) and (j, i). Only one of the two
// symmetric positions may be appended, the other is implied.
func (m *SymCOO) Append(i, j int, v float64) {
	if i < 0 || m.n <= i {
		panic("sparse: row index out of range")
	}
	if j < 0 || m.n <= j {
		panic("sparse: column index out of range")
	}
	m.data = append(m.data, entry{i, j, v})
}

// MulVec computes A*x and stores the result into dst. It has the signature
// required by the iterative.MatrixOps MatVec field.
func (m *SymCOO) MulVec(dst, x []float64) {
	if m.n != len(x) {
		panic("sparse: dimension mismatch")
	}
	if m.n != len(dst) {
		panic("sparse: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, aij := range m.data {
		dst[aij.i] += aij.v * x[aij.j]
		if aij.i != aij.j {
			dst[aij.j] += aij.v * x[aij.i]
		}
	}
}
