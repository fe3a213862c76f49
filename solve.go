// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// MatrixOps describes the matrix of the
// linear system in terms of the A*x
// operation.
type MatrixOps struct {
	// Compute A*x and store the result
	// into dst.
	// It must be non-nil.
	MatVec func(dst, x []float64)
}

// Settings holds various settings for
// solving a linear system.
type Settings struct {
	// X0 is an initial guess.
	// If it is nil, the zero vector will
	// be used.
	// If it is not nil, the length of X0
	// must be equal to the dimension of
	// the system.
	X0 []float64

	// Tolerance specifies error
	// tolerance for the final
	// approximate solution produced by
	// the iterative method. The solve is
	// considered converged when
	//  |r_i| < Tolerance * |b|.
	// Tolerance must be smaller than one
	// and greater than the machine
	// epsilon.
	Tolerance float64

	// MaxIterations is the limit on the
	// number of iterations.
	// If it is zero, it will be set to
	// twice the dimension of the system.
	MaxIterations int

	// PSolve describes the
	// preconditioner solve that stores
	// into dst the solution of the
	// system
	//  M z = rhs.
	// If it is nil, no preconditioning
	// will be used (M is the identity).
	PSolve func(dst, rhs []float64) error
}

func defaultSettings(s *Settings, dim int) {
	if s.Tolerance == 0 {
		s.Tolerance = 1e-8
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = 2 * dim
	}
}

// Result holds the result of an iterative solve.
type Result struct {
	// X is the approximate solution.
	X []float64
	// Stats holds the statistics of the
	// solve.
	Stats Stats
}

// Stats holds statistics about an iterative solve.
type Stats struct {
	// Iterations is the number of
	// iterations done by Method.
	Iterations int
	// MatVec is the number of MatVec and
	// ComputeResidual operations
	// commanded by a Method.
	MatVec int
	// PSolve is the number of PSolve
	// operations commanded by a Method.
	PSolve int
	// ResidualNorm is the final norm of
	// the residual.
	ResidualNorm float64
	// StartTime is an approximate time
	// when the solve was started.
	StartTime time.Time
	// Runtime is an approximate duration
	// of the solve.
	Runtime time.Duration
}

// LinearSolve solves the system of n linear equations
//  A*x = b,
// where the n×n matrix A is represented by the matrix-vector operation in a.
// The dimension of the problem n is determined by the length of b.
//
// method is an iterative method used for finding an approximate solution of the
// linear system. It must not be nil. The operations in a must provide what the
// method needs.
//
// settings provide means for adjusting the iterative process. Zero values of
// the fields mean default values.
//
// If the iteration budget is exhausted before the tolerance is reached,
// LinearSolve returns ErrIterationLimit together with the best approximation
// found and its statistics. The caller decides whether that constitutes a
// failure.
func LinearSolve(a MatrixOps, b []float64, method Method, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	dim := len(b)
	if a.MatVec == nil {
		panic("iterative: nil matrix-vector multiplication")
	}
	if settings.X0 != nil && len(settings.X0) != dim {
		panic("iterative: mismatched length of initial guess")
	}

	if dim == 0 {
		return Result{Stats: stats}, nil
	}

	defaultSettings(&settings, dim)
	if settings.Tolerance < dlamchE || 1 <= settings.Tolerance {
		panic("iterative: invalid tolerance")
	}

	ctx := &Context{
		X:        make([]float64, dim),
		Residual: make([]float64, dim),
	}
	if settings.X0 != nil {
		copy(ctx.X, settings.X0)
		a.MatVec(ctx.Residual, ctx.X)
		stats.MatVec++
		floats.AddScaledTo(ctx.Residual, b, -1, ctx.Residual) // r = b - Ax
	} else {
		copy(ctx.Residual, b) // r = b
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}
	ctx.ResidualNorm = floats.Norm(ctx.Residual, 2)
	stats.ResidualNorm = ctx.ResidualNorm
	var err error
	if ctx.ResidualNorm/bnorm >= settings.Tolerance {
		err = iterate(a, b, bnorm, ctx, settings, method, &stats)
	}

	stats.Runtime = time.Since(stats.StartTime)
	return Result{
		X:     ctx.X,
		Stats: stats,
	}, err
}

func iterate(a MatrixOps, b []float64, bnorm float64, ctx *Context, settings Settings, method Method, stats *Stats) error {
	method.Init(len(ctx.X))

	for {
		op, err := method.Iterate(ctx)
		if err != nil {
			return err
		}

		switch op {
		case NoOperation:

		case ComputeResidual:
			a.MatVec(ctx.Residual, ctx.X)
			stats.MatVec++
			floats.AddScaledTo(ctx.Residual, b, -1, ctx.Residual) // r = b - Ax

		case MatVec:
			a.MatVec(ctx.Dst, ctx.Src)
			stats.MatVec++

		case PSolve:
			if settings.PSolve == nil {
				copy(ctx.Dst, ctx.Src)
				stats.PSolve++
				continue
			}
			err = settings.PSolve(ctx.Dst, ctx.Src)
			if err != nil {
				return err
			}
			stats.PSolve++

		case CheckResidualNorm:
			ctx.Converged = ctx.ResidualNorm/bnorm < settings.Tolerance

		case EndIteration:
			stats.Iterations++
			stats.ResidualNorm = ctx.ResidualNorm
			if ctx.Converged {
				return nil
			}
			if stats.Iterations == settings.MaxIterations {
				return ErrIterationLimit
			}

		default:
			panic("iterate: invalid operation")
		}
	}
}
