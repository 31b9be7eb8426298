// Package model: sentinel error set. Recoverable conditions
// (ErrZeroDensity) are caught at the narrowest possible scope and turned
// into sampling decisions; fatal conditions (ErrInconsistent) must
// propagate uncaught and terminate the run.

package model

import "errors"

var (
	// ErrZeroDensity signals a zero-probability state: the current or
	// proposed configuration is infeasible under some stochastic node's
	// density. Recoverable — samplers treat it as automatic rejection.
	ErrZeroDensity = errors.New("model: zero probability density")

	// ErrInconsistent signals that a cached value disagrees with a fresh
	// recomputation, or that a reverted value does not match its
	// snapshot. Fatal — it implies corrupted sampler state and must
	// abort the run, never be silently ignored.
	ErrInconsistent = errors.New("model: cached value inconsistent with recomputation")

	// ErrKindMismatch is returned when an operation valid for one node
	// kind is invoked on the other (e.g. LogDensity on a Deterministic).
	ErrKindMismatch = errors.New("model: operation invalid for node kind")

	// ErrNoSnapshot is returned by Revert when the node has no previous
	// committed value to restore.
	ErrNoSnapshot = errors.New("model: no last value to revert to")
)
