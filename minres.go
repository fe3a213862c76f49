// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MINRES implements the minimal residual iterative method with preconditioning
// of Paige and Saunders (1975) for solving the system of linear equations
//  Ax = b,
// where A is a symmetric, possibly indefinite matrix. For symmetric positive
// definite systems CG uses less work per iteration.
//
// MINRES needs MatVec and PSolve matrix operations. The preconditioner must be
// symmetric positive definite.
//
// The method generates a basis of the Krylov subspace by a preconditioned
// three-term Lanczos recurrence and applies an incrementally updated Givens QR
// factorization to the implicit tridiagonal matrix, so only a short window of
// basis and direction vectors is kept regardless of the iteration count. The
// stopping test uses the explicitly recomputed residual b-A*x, at the cost of
// one extra MatVec per iteration. The recurrence-based estimate of the
// residual norm is cheaper but less trustworthy, and is tracked only as a
// diagnostic.
//
// If the Lanczos recurrence breaks down, the generated subspace is invariant
// under A and the current approximation cannot be improved any further.
// MINRES then finishes the pending solution update and commands EndIteration
// with Context.Converged set, leaving the decision whether the achieved
// residual is acceptable to the caller.
type MINRES struct {
	resume int

	alpha         float64 // Diagonal of the implicit tridiagonal matrix.
	beta, betaNew float64 // Off-diagonals of the implicit tridiagonal matrix.
	c, cOld       float64 // Cosines of the current and previous Givens rotation.
	s, sOld       float64 // Sines of the current and previous Givens rotation.
	eta           float64 // Rotated leading component of the right-hand side.
	rMR           float64 // Recurrence estimate of the residual norm, diagnostic only.
	btol          float64 // Breakdown threshold for betaNew².
	breakdown     bool

	vOld, v, vNew  []float64 // Lanczos basis window.
	w, wNew        []float64 // Preconditioned basis window, w = M⁻¹ v.
	p, pOld, pOold []float64 // Search direction window.
}

// Init implements the Method interface.
func (m *MINRES) Init(dim int) {
	if dim <= 0 {
		panic("iterative: dimension not positive")
	}

	m.vOld = reuse(m.vOld, dim)
	m.v = reuse(m.v, dim)
	m.vNew = reuse(m.vNew, dim)
	m.w = reuse(m.w, dim)
	m.wNew = reuse(m.wNew, dim)
	m.p = reuse(m.p, dim)
	m.pOld = reuse(m.pOld, dim)
	m.pOold = reuse(m.pOold, dim)
	// The basis and direction windows start from zero vectors. reuse does
	// not clear recycled memory, so do it here to avoid aliasing stale data
	// from a previous solve.
	for _, v := range [][]float64{m.v, m.p, m.pOld, m.pOold} {
		for i := range v {
			v[i] = 0
		}
	}

	m.breakdown = false
	m.resume = 1
}

// Iterate implements the Method interface.
func (m *MINRES) Iterate(ctx *Context) (Operation, error) {
	switch m.resume {
	case 1:
		copy(m.vNew, ctx.Residual)
		ctx.Src = m.vNew
		ctx.Dst = m.wNew
		m.resume = 2
		return PSolve, nil
		// Solve M w_new = v_new.
	case 2:
		beta2 := floats.Dot(m.vNew, m.wNew)
		if beta2 <= 0 {
			m.resume = 0 // Calling Iterate again without Init will panic.
			return NoOperation, ErrIndefinitePreconditioner
		}
		m.betaNew = math.Sqrt(beta2)
		m.btol = dlamchE * beta2
		// The rotated right-hand side starts as beta_1 * e_1.
		m.eta = m.betaNew
		m.rMR = m.betaNew
		m.c, m.cOld = 1, 1
		m.s, m.sOld = 0, 0
		m.resume = 3
		fallthrough
	case 3:
		// Advance the Lanczos basis by one step. Normalization of the
		// new basis pair is deferred to this point so that a vanishing
		// betaNew is never divided by.
		m.beta = m.betaNew
		floats.Scale(1/m.betaNew, m.vNew)
		floats.Scale(1/m.betaNew, m.wNew)
		copy(m.vOld, m.v)
		copy(m.v, m.vNew)
		copy(m.w, m.wNew)
		ctx.Src = m.w
		ctx.Dst = m.vNew
		m.resume = 4
		return MatVec, nil
		// Compute A w.
	case 4:
		floats.AddScaled(m.vNew, -m.beta, m.vOld) // v_new = A w - beta*v_old
		m.alpha = floats.Dot(m.vNew, m.w)
		floats.AddScaled(m.vNew, -m.alpha, m.v) // v_new -= alpha*v
		ctx.Src = m.vNew
		ctx.Dst = m.wNew
		m.resume = 5
		return PSolve, nil
		// Solve M w_new = v_new.
	case 5:
		beta2 := floats.Dot(m.vNew, m.wNew)
		if beta2 < 0 {
			m.resume = 0 // Calling Iterate again without Init will panic.
			return NoOperation, ErrIndefinitePreconditioner
		}
		m.betaNew = math.Sqrt(beta2)
		if beta2 <= m.btol {
			// Lanczos breakdown, the Krylov subspace is invariant
			// under A. Finish this iteration and stop.
			m.breakdown = true
		}

		// Project out the two rotated off-diagonal entries using the
		// rotations from the previous two steps. c, cOld, s, sOld must
		// still hold their pre-update values here.
		r2 := m.s*m.alpha + m.c*m.cOld*m.beta
		r3 := m.sOld * m.beta
		r1Hat := m.c*m.alpha - m.cOld*m.s*m.beta
		var r1 float64
		m.cOld, m.sOld = m.c, m.s
		m.c, m.s, r1 = symOrtho(r1Hat, m.betaNew)
		if r1 == 0 {
			// Both the deflated basis vector and the rotated
			// diagonal vanished. X cannot be improved.
			m.breakdown = true
		} else {
			// Shift the direction window and compute the new
			// direction p = (w - r2*p_old - r3*p_oold) / r1. The
			// dropped oldest buffer is recycled for the new
			// direction.
			m.pOold, m.pOld, m.p = m.pOld, m.p, m.pOold
			copy(m.p, m.w)
			floats.AddScaled(m.p, -r2, m.pOld)
			floats.AddScaled(m.p, -r3, m.pOold)
			floats.Scale(1/r1, m.p)

			floats.AddScaled(ctx.X, m.c*m.eta, m.p)
			m.eta = -m.s * m.eta
			m.rMR *= math.Abs(m.s)
		}
		ctx.Src = nil
		ctx.Dst = nil
		m.resume = 6
		return ComputeResidual, nil
		// Compute the residual b - A x explicitly.
	case 6:
		ctx.ResidualNorm = floats.Norm(ctx.Residual, 2)
		ctx.Converged = false
		m.resume = 7
		return CheckResidualNorm, nil
	case 7:
		if ctx.Converged {
			m.resume = 0 // Calling Iterate again without Init will panic.
			return EndIteration, nil
		}
		if m.breakdown {
			ctx.Converged = true
			m.resume = 0 // Calling Iterate again without Init will panic.
			return EndIteration, nil
		}
		m.resume = 3
		return EndIteration, nil

	default:
		panic("iterative: MINRES.Init not called")
	}
}

// symOrtho computes a Givens rotation
//  [c s] [a]   [r]
//  [s -c]*[b] = [0]
// with c²+s² = 1 and r = sqrt(a²+b²). For a = b = 0 it returns the identity
// rotation and r = 0.
func symOrtho(a, b float64) (c, s, r float64) {
	r = math.Hypot(a, b)
	if r == 0 {
		return 1, 0, 0
	}
	return a / r, b / r, r
}
