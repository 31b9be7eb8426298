package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Operation tags for uniform error wrapping.
const (
	opSolveTri = "SolveTri"
	opCholesky = "Cholesky"
)

// SolveTri solves U·X = B (or Uᵀ·X = B when transpose is true) for an
// upper-triangular factor U and returns a freshly allocated X.
//
// Stage 1 (Validate): non-nil operands, U upper-triangular, conformable B.
// Stage 2 (Execute): delegate to gonum's triangular solver.
// Stage 3 (Finalize): map an exactly singular system to ErrSingular;
// an ill-conditioned (but solvable) system is accepted as-is.
//
// Complexity: O(n²·k) for an n×n factor and n×k right-hand side.
func SolveTri(u *mat.TriDense, b mat.Matrix, transpose bool) (*mat.Dense, error) {
	if u == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", opSolveTri, ErrNilMatrix)
	}
	n, kind := u.Triangle()
	if kind != mat.Upper {
		return nil, fmt.Errorf("%s: %w", opSolveTri, ErrShape)
	}
	br, _ := b.Dims()
	if br != n {
		return nil, fmt.Errorf("%s: %w", opSolveTri, ErrShape)
	}

	var x mat.Dense
	var err error
	if transpose {
		err = x.Solve(u.T(), b)
	} else {
		err = x.Solve(u, b)
	}
	if err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("%s: %w", opSolveTri, ErrSingular)
		}
		// Ill-conditioned: the solution was still computed.
	}

	return &x, nil
}

// Cholesky computes the upper Cholesky factor U of a symmetric matrix s,
// such that s = Uᵀ·U.
//
// Stage 1 (Validate): non-nil input.
// Stage 2 (Execute): factorize via gonum; a failed factorization means
// the input is not positive definite and yields ErrNotPD.
// Stage 3 (Finalize): extract the upper factor into a fresh TriDense.
//
// ErrNotPD is the NumericalSingularity condition of the sampler design:
// model layers surface it as a zero-probability configuration.
//
// Complexity: O(n³).
func Cholesky(s *mat.SymDense) (*mat.TriDense, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: %w", opCholesky, ErrNilMatrix)
	}

	var ch mat.Cholesky
	if ok := ch.Factorize(s); !ok {
		return nil, fmt.Errorf("%s: %w", opCholesky, ErrNotPD)
	}

	var u mat.TriDense
	ch.UTo(&u)

	return &u, nil
}
