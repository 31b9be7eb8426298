package sampler

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cmvns/model"
)

// chain is the state shared by the Importance and Metropolis coordinate
// samplers: the latent pair (g, f), the triangular factor linking them,
// the offdiagonal projections partitioned into likelihood and constraint
// groups, and the bookkeeping both samplers need per sweep.
//
// Invariant outside an in-progress coordinate update: f = Uᵀ·g, every
// offdiag child's cache equals Proj·g, and every constraint sign holds.
type chain struct {
	f, g *model.Node
	u    *mat.Dense
	n    int

	likelihood  []Offdiag
	constraints *ConstraintSet

	// likelihoodChildren are the stochastic descendants of the
	// likelihood offdiags — the only nodes whose log-density weighs a
	// candidate (constraint offdiags contribute zero weight because
	// proposals respect them by construction).
	likelihoodChildren []*model.Node

	// allChildren are the direct children of every offdiag (likelihood
	// first, then constraints), in a fixed order used for snapshots.
	allChildren []*model.Node

	opts    Options
	rng     *rand.Rand
	skipped int
}

// newChain validates collaborators and assembles the shared state.
func newChain(f, g *model.Node, u *mat.Dense, likelihood []Offdiag, constraints []Constraint, opts Options) (*chain, error) {
	if f == nil || g == nil || u == nil {
		return nil, ErrNilCollaborator
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	n := len(g.Value())
	ur, uc := u.Dims()
	if ur != n || uc != n || len(f.Value()) != n {
		return nil, ErrDimensionMismatch
	}

	c := &chain{
		f: f, g: g, u: u, n: n,
		likelihood:  likelihood,
		constraints: NewConstraintSet(constraints),
		opts:        opts,
		rng:         opts.Rand,
	}

	var likelihoodDirect []*model.Node
	for idx, od := range likelihood {
		if err := validateOffdiag(od, n); err != nil {
			return nil, fmt.Errorf("likelihood offdiag %d: %w", idx, err)
		}
		c.allChildren = append(c.allChildren, od.Children...)
		likelihoodDirect = append(likelihoodDirect, od.Children...)
	}
	for idx, cn := range constraints {
		if err := validateOffdiag(cn.Offdiag, n); err != nil {
			return nil, fmt.Errorf("constraint offdiag %d: %w", idx, err)
		}
		if cn.Sign != 1 && cn.Sign != -1 {
			return nil, fmt.Errorf("constraint offdiag %d: sign must be ±1: %w", idx, ErrBadOption)
		}
		c.allChildren = append(c.allChildren, cn.Children...)
	}
	c.likelihoodChildren = model.StochasticDescendants(likelihoodDirect)

	return c, nil
}

// validateOffdiag checks one projection against the latent dimension and
// its children's seeded cache lengths.
func validateOffdiag(od Offdiag, n int) error {
	if od.Proj == nil {
		return ErrNilCollaborator
	}
	rows, cols := od.Proj.Dims()
	if cols != n {
		return ErrDimensionMismatch
	}
	if len(od.Children) == 0 {
		return ErrNilCollaborator
	}
	for _, ch := range od.Children {
		if ch == nil {
			return ErrNilCollaborator
		}
		if len(ch.Value()) != rows {
			return ErrDimensionMismatch
		}
	}

	return nil
}

// warnf forwards a skip warning to the configured hook, if any.
func (c *chain) warnf(format string, args ...any) {
	if c.opts.Warnf != nil {
		c.opts.Warnf(format, args...)
	}
}

// Skipped returns how many coordinate updates have been skipped because
// their feasible interval was empty.
func (c *chain) Skipped() int { return c.skipped }

// snapshot copies every offdiag child's cache, aligned with allChildren.
func (c *chain) snapshot() [][]float64 {
	cv := make([][]float64, len(c.allChildren))
	for idx, ch := range c.allChildren {
		cv[idx] = append([]float64(nil), ch.Value()...)
	}

	return cv
}

// likelihoodOnly evaluates the log-density of the likelihood children.
// A zero-probability state folds to -Inf; other errors propagate.
func (c *chain) likelihoodOnly() (float64, error) {
	lp, err := model.LogDensityOfSet(c.likelihoodChildren)
	if err != nil {
		if errors.Is(err, model.ErrZeroDensity) {
			return math.Inf(-1), nil
		}

		return 0, err
	}

	return lp, nil
}

// setG installs newg as the value of coordinate i, propagating the
// change to every dependent cache by its increment:
//
//	f      += U[i,:]·dg
//	child  += Proj[:,i]·dg     for every offdiag child
//
// Constraint children are updated first and the sign invariant checked
// before likelihood children are touched; each updated child has its
// downstream cone force-recomputed and consistency-checked. Every node
// is force-cached exactly once, so a subsequent Revert per node undoes
// the whole move bit-exactly.
func (c *chain) setG(i int, newg float64) error {
	g := c.g.Value()
	dg := newg - g[i]

	newG := append([]float64(nil), g...)
	newG[i] = newg

	f := c.f.Value()
	newF := make([]float64, c.n)
	for k := 0; k < c.n; k++ {
		newF[k] = f[k] + c.u.At(i, k)*dg
	}
	c.f.ForceCache(newF)
	c.g.ForceCache(newG)

	for j := 0; j < c.constraints.Len(); j++ {
		if err := shiftChildren(&c.constraints.cons[j].Offdiag, i, dg); err != nil {
			return err
		}
	}
	if err := c.constraints.Check(); err != nil {
		return err
	}
	for j := range c.likelihood {
		if err := shiftChildren(&c.likelihood[j], i, dg); err != nil {
			return err
		}
	}

	return nil
}

// shiftChildren adds Proj[:,i]·dg to each child cache of one offdiag and
// force-recomputes its downstream cone.
func shiftChildren(od *Offdiag, i int, dg float64) error {
	rows, _ := od.Proj.Dims()
	for _, ch := range od.Children {
		cur := ch.Value()
		next := make([]float64, rows)
		for k := 0; k < rows; k++ {
			next[k] = cur[k] + od.Proj.At(k, i)*dg
		}
		ch.ForceCache(next)
		if err := model.EvalChildren(ch); err != nil {
			return err
		}
	}

	return nil
}

// restore reverts g, f, and every offdiag child to the state captured in
// cv, re-deriving downstream cones from the restored caches. A reverted
// cache that does not match its snapshot bit-for-bit is a fatal defect:
// the rejection bookkeeping is broken.
func (c *chain) restore(cv [][]float64) error {
	if err := c.g.Revert(); err != nil {
		return err
	}
	if err := c.f.Revert(); err != nil {
		return err
	}
	for idx, ch := range c.allChildren {
		if err := ch.Revert(); err != nil {
			return err
		}
		if err := model.EvalChildren(ch); err != nil {
			return err
		}
		if !equalFloats(ch.Value(), cv[idx]) {
			return fmt.Errorf("revert of node %q: %w", ch.Name(), model.ErrInconsistent)
		}
	}

	return nil
}

// equalFloats compares two slices for exact (bitwise) equality.
func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
