package sampler

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cmvns/model"
)

// Importance is the importance-resampling coordinate sampler
// (CMVNImportance): for each coordinate in turn it draws Draws
// candidates from the standard-normal prior truncated to the feasible
// interval, retains the current value as a zeroth candidate, reweights
// all candidates by the likelihood-only log-density, and commits one
// drawn from the normalized categorical.
//
// Because candidates are drawn from the constrained prior, constraint
// offdiags contribute zero weight; only the likelihood children are
// evaluated per candidate.
type Importance struct {
	*chain
}

// NewImportance builds the sampler. g is the whitened latent vector,
// f = Uᵀ·g its field-space image, u the upper-triangular factor, and
// the offdiags are partitioned into likelihood and sign-constraint
// groups. Children caches must be seeded (Proj·g) before construction.
func NewImportance(f, g *model.Node, u *mat.Dense, likelihood []Offdiag, constraints []Constraint, opts Options) (*Importance, error) {
	c, err := newChain(f, g, u, likelihood, constraints, opts)
	if err != nil {
		return nil, err
	}

	return &Importance{chain: c}, nil
}

// Step performs one full sweep over coordinates 0..n-1.
//
// Per coordinate: compute the feasible interval (skip with a warning if
// empty), draw candidates, evaluate likelihood-only log-weights with
// scoped trial-and-revert (each trial overwrites the previous one's
// caches), normalize by log-sum-exp, commit the categorical draw, and
// update the residual cache incrementally.
//
// Fatal bookkeeping errors (ErrConstraintBroken, model.ErrInconsistent)
// propagate; a zero-probability candidate simply gets weight -Inf.
func (s *Importance) Step() error {
	s.constraints.Reset(s.g.Value())

	draws := s.opts.Draws
	cands := make([]float64, draws+1)
	logw := make([]float64, draws+1)
	probs := make([]float64, draws+1)

	for i := 0; i < s.n; i++ {
		lb, ub, rest, err := s.constraints.Bounds(i, s.g.Value()[i])
		if err != nil {
			if errors.Is(err, ErrConstraintViolation) {
				s.skipped++
				s.warnf("sampler: coordinate %d is over-constrained, skipping this sweep", i)

				continue
			}

			return err
		}

		cands[0] = s.g.Value()[i]
		for d := 1; d <= draws; d++ {
			cands[d] = TruncNormRand(s.rng, 0, 1, lb, ub)
		}

		// Current value is weighed before any trial mutation.
		if logw[0], err = s.likelihoodOnly(); err != nil {
			return err
		}
		for d := 1; d <= draws; d++ {
			if err = s.setG(i, cands[d]); err != nil {
				return err
			}
			if logw[d], err = s.likelihoodOnly(); err != nil {
				return err
			}
		}

		choice := 0
		if total := floats.LogSumExp(logw); !math.IsInf(total, -1) {
			for d := range logw {
				probs[d] = math.Exp(logw[d] - total)
			}
			choice = categorical(s.rng, probs)
		}
		// total == -Inf: every candidate is zero-probability under the
		// likelihood; keep the current value.

		if err = s.setG(i, cands[choice]); err != nil {
			return err
		}
		s.constraints.Commit(rest, i, cands[choice])
	}

	return nil
}

// Run performs the given number of sweeps.
func (s *Importance) Run(sweeps int) error {
	for k := 0; k < sweeps; k++ {
		if err := s.Step(); err != nil {
			return err
		}
	}

	return nil
}

// compile-time interface check
var _ Stepper = (*Importance)(nil)

// LikelihoodChildren exposes the stochastic nodes whose log-density
// weighs candidates — useful for drivers composing several samplers.
func (s *Importance) LikelihoodChildren() []*model.Node { return s.likelihoodChildren }
