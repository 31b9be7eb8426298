// Package sampler: configuration and collaborator types.

package sampler

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cmvns/model"
)

// Defaults — single source of truth for zero-value behavior.
const (
	// DefaultDraws is the number of truncated-normal proposals per
	// coordinate in the importance sampler (the current value is always
	// retained as a zeroth candidate on top of these).
	DefaultDraws = 20

	// DefaultTuneInterval is the number of sweeps between adaptive-scale
	// tuning calls in Metropolis.Run.
	DefaultTuneInterval = 200

	// DefaultInitialScale is the starting per-coordinate proposal scale.
	DefaultInitialScale = 1.0

	// DefaultSleepInterval makes a Delayed stepper run on every call.
	DefaultSleepInterval = 1
)

// Options configures the coordinate samplers.
//
// Rand is mandatory: all stochastic operations draw from it, so a fixed
// seed reproduces a chain exactly. Warnf, when set, receives a message
// each time an over-constrained coordinate is skipped for a sweep;
// skips are also counted regardless (see Skipped).
type Options struct {
	Draws         int
	TuneInterval  int
	InitialScale  float64
	SleepInterval int
	Rand          *rand.Rand
	Warnf         func(format string, args ...any)
}

// DefaultOptions returns the documented defaults bound to the given
// random source.
func DefaultOptions(rng *rand.Rand) Options {
	return Options{
		Draws:         DefaultDraws,
		TuneInterval:  DefaultTuneInterval,
		InitialScale:  DefaultInitialScale,
		SleepInterval: DefaultSleepInterval,
		Rand:          rng,
	}
}

// validate enforces option invariants, returning ErrBadOption with the
// offending field named.
func (o Options) validate() error {
	if o.Draws < 1 {
		return fmt.Errorf("Draws=%d: %w", o.Draws, ErrBadOption)
	}
	if o.TuneInterval < 1 {
		return fmt.Errorf("TuneInterval=%d: %w", o.TuneInterval, ErrBadOption)
	}
	if !(o.InitialScale > 0) || math.IsInf(o.InitialScale, 1) {
		return fmt.Errorf("InitialScale=%v: %w", o.InitialScale, ErrBadOption)
	}
	if o.SleepInterval < 1 {
		return fmt.Errorf("SleepInterval=%d: %w", o.SleepInterval, ErrBadOption)
	}
	if o.Rand == nil {
		return fmt.Errorf("Rand=nil: %w", ErrBadOption)
	}

	return nil
}

// Offdiag is a precomputed offdiagonal projection C(x_p, x)·U⁻¹ mapping
// whitened coordinates to predicted field values at an evaluation point
// set, together with the dependent nodes (f-eval caches) it feeds.
// Children caches must be seeded to Proj·g before a sampler is built.
type Offdiag struct {
	Proj     *mat.Dense
	Children []*model.Node
}

// Constraint is an offdiagonal projection whose predicted values must
// satisfy Sign·value ≥ 0 at every evaluation point.
type Constraint struct {
	Offdiag
	Sign float64
}

// Stepper is one MCMC step method: a single sweep (or joint move) over
// its target. All samplers in this module implement it.
type Stepper interface {
	Step() error
}
