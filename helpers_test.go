// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math/rand"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

type testCase struct {
	name string
	a    MatrixOps
	// diag holds the matrix diagonal for building a Jacobi preconditioner.
	diag []float64
}

// denseSym wraps the upper triangle of the n×n row-major dense matrix a in a
// symmetric matrix-vector operation.
func denseSym(n int, a []float64) MatrixOps {
	bi := blas64.Implementation()
	return MatrixOps{
		MatVec: func(dst, x []float64) {
			bi.Dsymv(blas.Upper, n, 1, a, n, x, 1, 0, dst, 1)
		},
	}
}

// randomSPD generates a random diagonally dominant symmetric positive
// definite test matrix.
func randomSPD(n int, rnd *rand.Rand) testCase {
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a[i*n+j] = rnd.Float64()
		}
	}
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i*n+i] += float64(n)
		diag[i] = a[i*n+i]
	}
	return testCase{
		name: "randomSPD",
		a:    denseSym(n, a),
		diag: diag,
	}
}

// randomIndefinite generates a random diagonally dominant symmetric matrix
// with mixed-sign diagonal, so its eigenvalues have both signs.
func randomIndefinite(n int, rnd *rand.Rand) testCase {
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a[i*n+j] = rnd.Float64() / 4
		}
	}
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		d := float64(n) + rnd.Float64()
		if i%2 == 1 {
			d = -d
		}
		a[i*n+i] = d
		diag[i] = d
	}
	return testCase{
		name: "randomIndefinite",
		a:    denseSym(n, a),
		diag: diag,
	}
}

// jacobi returns the preconditioner solve for the diagonal preconditioner
// built from diag.
func jacobi(diag []float64) func(dst, rhs []float64) error {
	return func(dst, rhs []float64) error {
		for i, d := range diag {
			dst[i] = rhs[i] / d
		}
		return nil
	}
}

// residualNorm independently recomputes |b - A*x|.
func residualNorm(a MatrixOps, b, x []float64) float64 {
	r := make([]float64, len(b))
	a.MatVec(r, x)
	floats.AddScaledTo(r, b, -1, r)
	return floats.Norm(r, 2)
}

// ones returns the n-vector of all ones.
func ones(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}
	return x
}
