// Package sampler: sentinel error set. Recoverable conditions are caught
// per-coordinate and converted into sampling decisions; fatal conditions
// propagate uncaught to terminate the run with full state visible.

package sampler

import "errors"

var (
	// ErrConstraintViolation signals an empty feasible interval: the
	// coordinate is over-constrained given the current state. Recoverable
	// — the caller skips the coordinate for this sweep and warns.
	ErrConstraintViolation = errors.New("sampler: empty feasible interval, coordinate over-constrained")

	// ErrConstraintBroken signals that a committed state violates a
	// required constraint sign. Fatal — the residual tracking or caching
	// is out of sync and the chain state can no longer be trusted.
	ErrConstraintBroken = errors.New("sampler: constraint sign violated by committed state")

	// ErrBadOption indicates an invalid Options field (non-positive draw
	// count, scale, or interval, or a missing random source).
	ErrBadOption = errors.New("sampler: invalid option")

	// ErrDimensionMismatch indicates collaborators whose shapes disagree:
	// a factor that is not n×n, a projection with the wrong column count,
	// or a child cache whose length differs from its projection's rows.
	ErrDimensionMismatch = errors.New("sampler: dimension mismatch")

	// ErrNilCollaborator indicates a missing required collaborator
	// (latent node, factor, or projection matrix).
	ErrNilCollaborator = errors.New("sampler: nil collaborator")
)
