// Package linalg: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation
// tag via fmt.Errorf("Op: %w", err)); tests match them with errors.Is.
// Panics are reserved for programmer errors in private helpers.

package linalg

import "errors"

var (
	// ErrNilMatrix indicates a nil matrix operand.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrShape indicates incompatible operand dimensions, e.g. a factor
	// with fewer columns than rows, or a right-hand side whose row count
	// does not match the factor order.
	ErrShape = errors.New("linalg: dimension mismatch")

	// ErrSingular is returned when a solve or inversion meets an exactly
	// or effectively singular system.
	ErrSingular = errors.New("linalg: singular matrix")

	// ErrNotPD is returned when a Cholesky factorization fails because
	// the input is not positive definite. Model layers treat this as a
	// zero-probability configuration, not a fatal condition.
	ErrNotPD = errors.New("linalg: matrix not positive definite")

	// ErrBadPivots indicates a pivot slice whose length does not match
	// the factor's column count, or which contains out-of-range or
	// duplicate indices.
	ErrBadPivots = errors.New("linalg: invalid pivot set")
)
