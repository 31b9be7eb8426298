package lowrank

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cmvns/linalg"
	"github.com/katalvlaran/cmvns/model"
)

// ErrNilCollaborator indicates a missing required collaborator.
var ErrNilCollaborator = errors.New("lowrank: nil collaborator")

// ErrShape indicates a dependent vector whose length does not match the
// basis rank.
var ErrShape = errors.New("lowrank: dimension mismatch")

// Basis is an ordered low-rank pivot set over the full point set,
// paired with its rl×n triangular factor.
type Basis struct {
	Pivots []int
	U      *mat.Dense
}

// RotationSampler proposes a basis change (new pivot set and factor)
// through an injected inner proposal and applies the matching
// minimal-jump correction to the dependent jointly-Gaussian vector mvn.
type RotationSampler struct {
	mvn *model.Node
	cur Basis

	// propose draws a new basis from the inner (outer-level adaptive)
	// proposal. It may return model.ErrZeroDensity — including a failed
	// factorization mapped from linalg.ErrNotPD — which is treated as an
	// ordinary rejection.
	propose func() (Basis, error)

	// revert undoes the inner proposal's mutations.
	revert func()

	// logDensity evaluates the joint log-density of the basis variables'
	// Markov blanket plus mvn.
	logDensity func() (float64, error)

	rng *rand.Rand

	prev     Basis
	preJump  []float64
	jumped   bool
	accepted int
	rejected int
}

// NewRotationSampler wires the sampler. mvn's length must equal the
// basis rank (rows of initial.U).
func NewRotationSampler(mvn *model.Node, initial Basis, propose func() (Basis, error), revert func(), logDensity func() (float64, error), rng *rand.Rand) (*RotationSampler, error) {
	if mvn == nil || propose == nil || revert == nil || logDensity == nil || rng == nil {
		return nil, ErrNilCollaborator
	}
	if initial.U == nil {
		return nil, ErrNilCollaborator
	}
	r, _ := initial.U.Dims()
	if len(mvn.Value()) != r {
		return nil, ErrShape
	}

	return &RotationSampler{mvn: mvn, cur: initial, propose: propose, revert: revert, logDensity: logDensity, rng: rng}, nil
}

// Basis returns the current basis.
func (s *RotationSampler) Basis() Basis { return s.cur }

// Propose runs the inner basis proposal and, if it succeeds, applies a
// minimal-jump correction to mvn: with probability 1/2 the forward
// jump, else the backward jump. The pre-jump value of mvn is
// snapshotted so Reject can verify the revert.
//
// A zero-probability inner proposal (model.ErrZeroDensity, or a failed
// factorization as linalg.ErrNotPD) is returned as model.ErrZeroDensity
// for the caller to convert into a rejection; any other error is fatal.
func (s *RotationSampler) Propose() error {
	s.prev = s.cur
	s.preJump = append(s.preJump[:0], s.mvn.Value()...)
	s.jumped = false

	next, err := s.propose()
	if err != nil {
		if errors.Is(err, model.ErrZeroDensity) || errors.Is(err, linalg.ErrNotPD) {
			return model.ErrZeroDensity
		}

		return err
	}

	forward, backward, err := linalg.MinimalJumps(s.prev.Pivots, s.prev.U, next.Pivots, next.U)
	if err != nil {
		return err
	}

	// Symmetric proposal: the jump never enters the acceptance ratio.
	jump := forward
	if s.rng.Intn(2) == 1 {
		jump = backward
	}

	var out mat.VecDense
	out.MulVec(jump, mat.NewVecDense(len(s.preJump), append([]float64(nil), s.mvn.Value()...)))
	s.mvn.SetValue(out.RawVector().Data)
	s.cur = next
	s.jumped = true

	return nil
}

// Accept commits the in-flight proposal.
func (s *RotationSampler) Accept() {
	s.jumped = false
	s.accepted++
}

// Reject undoes the in-flight proposal: the inner proposal is reverted,
// and if the jump was applied, mvn is reverted to its pre-jump value.
// The node's snapshot must match the value captured before the jump
// bit-for-bit — a mismatch means the rejection logic is broken and is
// fatal.
func (s *RotationSampler) Reject() error {
	s.revert()
	if s.jumped {
		last := s.mvn.LastValue()
		if len(last) != len(s.preJump) {
			return fmt.Errorf("pre-jump snapshot: %w", model.ErrInconsistent)
		}
		for i := range last {
			if last[i] != s.preJump[i] {
				return fmt.Errorf("pre-jump snapshot: %w", model.ErrInconsistent)
			}
		}
		if err := s.mvn.Revert(); err != nil {
			return err
		}
		s.cur = s.prev
		s.jumped = false
	}
	s.rejected++

	return nil
}

// Step runs one full Metropolis move: propose a basis change with its
// jump, then accept with probability min(1, exp(Δ log-density)). The
// jump is symmetric and therefore absent from the ratio.
func (s *RotationSampler) Step() error {
	lp0, err := s.logDensityOrNegInf()
	if err != nil {
		return err
	}

	if err = s.Propose(); err != nil {
		if errors.Is(err, model.ErrZeroDensity) {
			return s.Reject()
		}

		return err
	}

	lp1, err := s.logDensityOrNegInf()
	if err != nil {
		return err
	}

	if math.Log(s.rng.Float64()) < lp1-lp0 {
		s.Accept()

		return nil
	}

	return s.Reject()
}

// Accepted and Rejected report move counts since construction.
func (s *RotationSampler) Accepted() int { return s.accepted }

// Rejected reports the number of rejected moves since construction.
func (s *RotationSampler) Rejected() int { return s.rejected }

// logDensityOrNegInf folds a zero-probability state into -Inf.
func (s *RotationSampler) logDensityOrNegInf() (float64, error) {
	lp, err := s.logDensity()
	if err != nil {
		if errors.Is(err, model.ErrZeroDensity) {
			return math.Inf(-1), nil
		}

		return 0, err
	}

	return lp, nil
}
