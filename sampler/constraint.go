package sampler

import (
	"fmt"
	"math"
)

// ConstraintSet tracks the sign-tagged linear functionals of g and the
// per-constraint right-hand-side residuals rhs = Proj·g. Residuals are
// rebuilt once per sweep (Reset) and updated incrementally after every
// committed coordinate move (Commit), never recomputed mid-sweep.
type ConstraintSet struct {
	cons []Constraint
	rhs  [][]float64
}

// NewConstraintSet wraps a (possibly empty) constraint collection.
// Residuals are unset until the first Reset.
func NewConstraintSet(cons []Constraint) *ConstraintSet {
	return &ConstraintSet{cons: cons, rhs: make([][]float64, len(cons))}
}

// Len returns the number of constraints.
func (s *ConstraintSet) Len() int { return len(s.cons) }

// Reset rebuilds every residual as rhs[j] = Proj_j·g for the current g.
// Called at the start of each full sweep.
func (s *ConstraintSet) Reset(g []float64) {
	for j := range s.cons {
		rows, cols := s.cons[j].Proj.Dims()
		if cap(s.rhs[j]) < rows {
			s.rhs[j] = make([]float64, rows)
		}
		s.rhs[j] = s.rhs[j][:rows]
		for k := 0; k < rows; k++ {
			var sum float64
			for c := 0; c < cols; c++ {
				sum += s.cons[j].Proj.At(k, c) * g[c]
			}
			s.rhs[j][k] = sum
		}
	}
}

// Bounds computes the feasible interval for coordinate i given the
// cached residuals and the coordinate's current value gi.
//
// For each constraint row with coefficient coef = Proj[k,i], the
// contribution of all other coordinates is rhs[k] - coef·gi; the row
// then demands sign·(rest + coef·g'ᵢ) ≥ 0, yielding a lower bound when
// coef and sign agree and an upper bound when they disagree. The
// feasible interval intersects every row of every constraint with
// (-Inf, +Inf).
//
// Returns the interval plus the coordinate-free residuals (rest terms),
// which Commit reuses to update the cache incrementally after a move.
// An empty interval returns ErrConstraintViolation; nothing is mutated
// (pure read of cached state), so the caller can skip the coordinate.
//
// Complexity: O(total constraint rows).
func (s *ConstraintSet) Bounds(i int, gi float64) (lb, ub float64, rest [][]float64, err error) {
	lb, ub = math.Inf(-1), math.Inf(1)
	rest = make([][]float64, len(s.cons))
	for j := range s.cons {
		cn := &s.cons[j]
		rows, _ := cn.Proj.Dims()
		rj := make([]float64, rows)
		for k := 0; k < rows; k++ {
			coef := cn.Proj.At(k, i)
			rj[k] = s.rhs[j][k] - coef*gi
			if coef == 0 {
				continue // row does not involve coordinate i
			}
			cand := -rj[k] / coef
			if (coef > 0) == (cn.Sign > 0) {
				if cand > lb {
					lb = cand
				}
			} else {
				if cand < ub {
					ub = cand
				}
			}
		}
		rest[j] = rj
	}
	if lb > ub {
		return 0, 0, nil, ErrConstraintViolation
	}

	return lb, ub, rest, nil
}

// Commit installs the residuals for a committed move of coordinate i to
// newg: each rest term gains back the coordinate's new contribution and
// becomes the cached residual for subsequent Bounds calls this sweep.
func (s *ConstraintSet) Commit(rest [][]float64, i int, newg float64) {
	for j := range s.cons {
		cn := &s.cons[j]
		for k := range rest[j] {
			rest[j][k] += cn.Proj.At(k, i) * newg
		}
		s.rhs[j] = rest[j]
	}
}

// Check verifies the sign invariant on every constraint's dependent
// caches: sign·value ≥ 0 elementwise. A violation after a committed
// move means the residual tracking or caching is out of sync — fatal.
func (s *ConstraintSet) Check() error {
	for j := range s.cons {
		cn := &s.cons[j]
		for _, ch := range cn.Children {
			for k, v := range ch.Value() {
				if v*cn.Sign < 0 {
					return fmt.Errorf("constraint %d, node %q, row %d: %w", j, ch.Name(), k, ErrConstraintBroken)
				}
			}
		}
	}

	return nil
}
