package sampler

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cmvns/model"
)

// Metropolis is the Metropolis-Hastings coordinate sampler
// (CMVNMetropolis): for each coordinate it proposes one value from a
// normal centered at the current value with per-coordinate adaptive
// scale, truncated to the feasible interval, and accepts with
// probability min(1, exp(Δlikelihood + Hastings + Δprior)).
//
// The Hastings factor corrects for the asymmetric truncation of forward
// and reverse moves; the prior term is 0.5·(old² − new²) since g is
// standard normal in whitened space. A rejected proposal reverts g, f,
// and every dependent cache to their exact pre-proposal state.
type Metropolis struct {
	*chain

	scale    []float64
	accepted []float64
	rejected []float64
	sweeps   int
}

// NewMetropolis builds the sampler; collaborators as in NewImportance.
// Every coordinate starts at opts.InitialScale.
func NewMetropolis(f, g *model.Node, u *mat.Dense, likelihood []Offdiag, constraints []Constraint, opts Options) (*Metropolis, error) {
	c, err := newChain(f, g, u, likelihood, constraints, opts)
	if err != nil {
		return nil, err
	}

	m := &Metropolis{
		chain:    c,
		scale:    make([]float64, c.n),
		accepted: make([]float64, c.n),
		rejected: make([]float64, c.n),
	}
	for i := range m.scale {
		m.scale[i] = opts.InitialScale
	}

	return m, nil
}

// Step performs one full sweep over coordinates 0..n-1.
//
// Per coordinate: verify the sign invariant, compute the feasible
// interval (skip with a warning if empty), propose from the truncated
// normal, evaluate the acceptance ratio, and either commit (updating
// the residual cache incrementally) or revert exactly. A
// zero-probability proposal is an automatic rejection.
func (s *Metropolis) Step() error {
	s.constraints.Reset(s.g.Value())

	for i := 0; i < s.n; i++ {
		if err := s.constraints.Check(); err != nil {
			return err
		}

		lb, ub, rest, err := s.constraints.Bounds(i, s.g.Value()[i])
		if err != nil {
			if errors.Is(err, ErrConstraintViolation) {
				s.skipped++
				s.warnf("sampler: coordinate %d is over-constrained, skipping this sweep", i)

				continue
			}

			return err
		}

		cur := s.g.Value()[i]
		sigma := s.scale[i]
		newg := TruncNormRand(s.rng, cur, sigma, lb, ub)

		// Hastings factor: reverse move minus forward move.
		hf := TruncNormLogProb(cur, newg, sigma, lb, ub) - TruncNormLogProb(newg, cur, sigma, lb, ub)
		// Prior difference in whitened space.
		dpri := 0.5 * (cur*cur - newg*newg)

		lpl, err := s.likelihoodOnly()
		if err != nil {
			return err
		}

		cv := s.snapshot()
		if err = s.setG(i, newg); err != nil {
			return err
		}

		lplProp, err := s.propLikelihood()
		if err != nil {
			if errors.Is(err, model.ErrZeroDensity) {
				if err = s.reject(i, cv); err != nil {
					return err
				}

				continue
			}

			return err
		}

		if math.Log(s.rng.Float64()) < lplProp-lpl+hf+dpri {
			s.accepted[i]++
			s.constraints.Commit(rest, i, newg)
			if err = s.constraints.Check(); err != nil {
				return err
			}
		} else if err = s.reject(i, cv); err != nil {
			return err
		}
	}
	s.sweeps++

	return nil
}

// propLikelihood evaluates the proposed state's likelihood, keeping
// zero-probability distinct from fatal errors so Step can reject it.
func (s *Metropolis) propLikelihood() (float64, error) {
	return model.LogDensityOfSet(s.likelihoodChildren)
}

// reject reverts the in-flight proposal for coordinate i, verifying the
// restored caches against the pre-proposal snapshot, and re-checks the
// sign invariant. Any mismatch is fatal.
func (s *Metropolis) reject(i int, cv [][]float64) error {
	if err := s.restore(cv); err != nil {
		return err
	}
	s.rejected[i]++

	return s.constraints.Check()
}

// Tune adapts each coordinate's proposal scale from the accept/reject
// counts accumulated since the last call:
//
//	rate < 0.001 → ×0.1    rate > 0.95 → ×10.0
//	rate < 0.05  → ×0.5    rate > 0.75 → ×2.0
//	rate < 0.2   → ×0.9    rate > 0.5  → ×1.1
//	otherwise the coordinate counts as tuned.
//
// Counters reset to zero afterwards. Returns whether any scale changed;
// callers use this to decide whether to continue tuning.
func (s *Metropolis) Tune() bool {
	changed := false
	for i := range s.scale {
		total := s.accepted[i] + s.rejected[i]
		if total > 0 {
			factor := 1.0
			switch rate := s.accepted[i] / total; {
			case rate < 0.001:
				factor = 0.1
			case rate < 0.05:
				factor = 0.5
			case rate < 0.2:
				factor = 0.9
			case rate > 0.95:
				factor = 10.0
			case rate > 0.75:
				factor = 2.0
			case rate > 0.5:
				factor = 1.1
			}
			if factor != 1.0 {
				s.scale[i] *= factor
				changed = true
			}
		}
		s.accepted[i] = 0
		s.rejected[i] = 0
	}

	return changed
}

// Run performs the given number of sweeps, tuning every
// Options.TuneInterval sweeps.
func (s *Metropolis) Run(sweeps int) error {
	for k := 1; k <= sweeps; k++ {
		if err := s.Step(); err != nil {
			return err
		}
		if k%s.opts.TuneInterval == 0 {
			s.Tune()
		}
	}

	return nil
}

// AcceptanceRate returns the pooled acceptance rate over all coordinates
// since the last Tune, or NaN when nothing has been proposed yet.
func (s *Metropolis) AcceptanceRate() float64 {
	var acc, total float64
	for i := range s.accepted {
		acc += s.accepted[i]
		total += s.accepted[i] + s.rejected[i]
	}
	if total == 0 {
		return math.NaN()
	}

	return acc / total
}

// Scales returns a copy of the per-coordinate proposal scales.
func (s *Metropolis) Scales() []float64 {
	return append([]float64(nil), s.scale...)
}

// compile-time interface check
var _ Stepper = (*Metropolis)(nil)
