// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterative

import "errors"

// Sentinel errors returned by LinearSolve and the methods. Match them with
// errors.Is. Programmer errors such as a nil MatVec or mismatched vector
// lengths panic instead.
var (
	// ErrIterationLimit is returned by LinearSolve when the iteration
	// budget is exhausted before the tolerance is reached. The Result
	// returned alongside it holds the best approximation found; whether
	// this constitutes a failure is up to the caller.
	ErrIterationLimit = errors.New("iterative: iteration limit reached")

	// ErrBreakdown is returned when a recurrence coefficient collapses and
	// the method cannot continue from the current state.
	ErrBreakdown = errors.New("iterative: method breakdown")

	// ErrIndefinitePreconditioner is returned when the preconditioner is
	// detected not to be symmetric positive definite.
	ErrIndefinitePreconditioner = errors.New("iterative: preconditioner is not positive definite")
)
