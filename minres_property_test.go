// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSymOrthoProperties checks the Givens rotation invariants for arbitrary
// inputs: the rotation is orthogonal (c²+s² = 1), it maps (a, b) to (r, 0),
// and r is the Euclidean norm of (a, b).
func TestSymOrthoProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000
	properties := gopter.NewProperties(parameters)

	properties.Property("symOrtho produces a valid zeroing rotation", prop.ForAll(
		func(a, b float64) bool {
			c, s, r := symOrtho(a, b)
			scale := 1 + math.Abs(r)
			switch {
			case math.Abs(c*c+s*s-1) > 1e-14:
				return false
			case math.Abs(c*a+s*b-r) > 1e-12*scale:
				return false
			case math.Abs(s*a-c*b) > 1e-12*scale:
				return false
			case math.Abs(r-math.Hypot(a, b)) > 1e-12*scale:
				return false
			}
			return true
		},
		gen.Float64Range(-1e8, 1e8),
		gen.Float64Range(-1e8, 1e8),
	))

	properties.Property("diagonal systems are solved to tolerance", prop.ForAll(
		func(d, b []float64) bool {
			if len(d) != len(b) {
				return true
			}
			a := MatrixOps{
				MatVec: func(dst, x []float64) {
					for i := range dst {
						dst[i] = d[i] * x[i]
					}
				},
			}
			r, err := LinearSolve(a, b, &MINRES{}, Settings{Tolerance: 1e-12})
			if err != nil {
				return false
			}
			for i := range b {
				want := b[i] / d[i]
				if math.Abs(r.X[i]-want) > 1e-6*(1+math.Abs(want)) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.Float64Range(0.5, 10)),
		gen.SliceOfN(5, gen.Float64Range(-10, 10)),
	))

	properties.TestingRun(t)
}
