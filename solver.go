// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// Status indicates the outcome of a Solver solve.
type Status int

const (
	// Success means that the achieved relative residual satisfies the
	// configured tolerance.
	Success Status = iota
	// NoConvergence means that the solve stopped before reaching the
	// configured tolerance, typically because the iteration budget was
	// exhausted. The returned approximation is still the best one found.
	NoConvergence
)

// String implements the fmt.Stringer interface.
func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case NoConvergence:
		return "NoConvergence"
	default:
		return "Unknown"
	}
}

// Solver is a stateful front end for solving
//  A x = b
// repeatedly with the same symmetric matrix and varying right-hand sides. It
// remembers the outcome of the most recent solve so that the iteration count,
// the achieved error and the convergence status can be queried afterwards.
//
// The zero tolerance and iteration limit mean the LinearSolve defaults. The
// default method is MINRES. A Solver must not be used concurrently from
// multiple goroutines, but several Solvers may share the same MatrixOps and
// preconditioner since those are never mutated.
type Solver struct {
	a   MatrixOps
	dim int

	method Method
	tol    float64
	maxIt  int
	psolve func(dst, rhs []float64) error

	iters  int
	relErr float64
	status Status
}

// NewSolver returns a solver for the dim×dim symmetric linear system
// represented by a, using the MINRES method.
func NewSolver(a MatrixOps, dim int) *Solver {
	if dim <= 0 {
		panic("iterative: dimension not positive")
	}
	if a.MatVec == nil {
		panic("iterative: nil matrix-vector multiplication")
	}
	return &Solver{
		a:      a,
		dim:    dim,
		method: &MINRES{},
	}
}

// SetMethod changes the iterative method. method must not be nil.
func (s *Solver) SetMethod(method Method) {
	if method == nil {
		panic("iterative: nil method")
	}
	s.method = method
}

// SetTolerance sets the relative residual tolerance used by the stopping
// criterion and by the status classification.
func (s *Solver) SetTolerance(tol float64) {
	s.tol = tol
}

// SetMaxIterations sets the iteration budget for one solve.
func (s *Solver) SetMaxIterations(n int) {
	s.maxIt = n
}

// SetPreconditioner sets the preconditioner solve. A nil psolve means the
// identity preconditioner.
func (s *Solver) SetPreconditioner(psolve func(dst, rhs []float64) error) {
	s.psolve = psolve
}

// Solve solves A x = b starting from the zero vector and returns the
// approximate solution.
//
// Non-convergence within the iteration budget is not an error: it is reported
// through Status and the returned approximation is the best one found. The
// returned error is non-nil only when the method could not proceed at all,
// for example when the preconditioner is not positive definite.
func (s *Solver) Solve(b []float64) ([]float64, error) {
	return s.solve(b, nil)
}

// SolveWithGuess is like Solve but starts the iteration from x0. Solving
// repeatedly with the previous solution as the guess implements step-by-step
// execution:
//
//	s.SetMaxIterations(1)
//	x := make([]float64, dim)
//	for i := 0; ; i++ {
//		x, _ = s.SolveWithGuess(b, x)
//		if s.Status() == Success || i == 100 {
//			break
//		}
//	}
func (s *Solver) SolveWithGuess(b, x0 []float64) ([]float64, error) {
	if len(x0) != s.dim {
		panic("iterative: mismatched length of initial guess")
	}
	return s.solve(b, x0)
}

func (s *Solver) solve(b, x0 []float64) ([]float64, error) {
	if len(b) != s.dim {
		panic("iterative: mismatched length of right-hand side")
	}

	settings := Settings{
		X0:            x0,
		Tolerance:     s.tol,
		MaxIterations: s.maxIt,
		PSolve:        s.psolve,
	}
	defaultSettings(&settings, s.dim)

	r, err := LinearSolve(s.a, b, s.method, settings)

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}
	s.iters = r.Stats.Iterations
	s.relErr = r.Stats.ResidualNorm / bnorm
	if err == nil && s.relErr <= settings.Tolerance {
		s.status = Success
	} else {
		s.status = NoConvergence
	}
	if errors.Is(err, ErrIterationLimit) {
		err = nil
	}
	return r.X, err
}

// Iterations returns the number of iterations performed by the most recent
// solve.
func (s *Solver) Iterations() int { return s.iters }

// Error returns the relative residual |b-A*x|/|b| achieved by the most recent
// solve.
func (s *Solver) Error() float64 { return s.relErr }

// Status returns the convergence status of the most recent solve.
func (s *Solver) Status() Status { return s.status }
