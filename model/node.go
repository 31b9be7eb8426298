package model

import "errors"

// Kind tags the two node variants a sampler distinguishes.
type Kind uint8

const (
	// Stochastic nodes own a value and a log-density of their parents.
	Stochastic Kind = iota

	// Deterministic nodes own a cached value derived from their parents.
	Deterministic
)

// String implements fmt.Stringer for diagnostics.
func (k Kind) String() string {
	if k == Stochastic {
		return "stochastic"
	}

	return "deterministic"
}

// Node is one random variable (or derived quantity) in the probability
// model: a named, tagged holder of a cached vector value, its previous
// committed value, and the set of downstream nodes whose caches depend
// on it.
//
// The cached slice returned by Value is the node's live storage; callers
// must treat it as read-only and go through SetValue/ForceCache to
// mutate. This keeps the per-coordinate hot loops allocation-free.
type Node struct {
	name     string
	kind     Kind
	value    []float64
	last     []float64
	hasLast  bool
	children []*Node

	// compute derives the cached value from parent caches (Deterministic).
	compute func() ([]float64, error)

	// logDensity evaluates the node's log-density given parent caches
	// (Stochastic). May return ErrZeroDensity.
	logDensity func() (float64, error)
}

// NewStochastic builds a stochastic node with an initial committed value.
// logDensity must be non-nil (programmer error otherwise).
func NewStochastic(name string, initial []float64, logDensity func() (float64, error)) *Node {
	if logDensity == nil {
		panic("model: NewStochastic requires a log-density function")
	}
	v := make([]float64, len(initial))
	copy(v, initial)

	return &Node{name: name, kind: Stochastic, value: v, logDensity: logDensity}
}

// NewDeterministic builds a deterministic node. Its cache is empty until
// the first Recompute; wire parents first, then Recompute once to seed.
// compute must be non-nil (programmer error otherwise).
func NewDeterministic(name string, compute func() ([]float64, error)) *Node {
	if compute == nil {
		panic("model: NewDeterministic requires a compute function")
	}

	return &Node{name: name, kind: Deterministic, compute: compute}
}

// Name returns the node's diagnostic name.
func (n *Node) Name() string { return n.name }

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// AddChildren registers downstream nodes whose caches must be recomputed
// when this node's value changes. Order of registration is the order of
// recomputation — significant for chain reproducibility.
func (n *Node) AddChildren(children ...*Node) {
	n.children = append(n.children, children...)
}

// Children returns the registered dependency set (live slice; read-only).
func (n *Node) Children() []*Node { return n.children }

// Value returns the current cached value (live slice; read-only).
func (n *Node) Value() []float64 { return n.value }

// LastValue returns the previous committed value, or nil if none exists.
func (n *Node) LastValue() []float64 {
	if !n.hasLast {
		return nil
	}

	return n.last
}

// store snapshots the current value and installs v as the new cache.
func (n *Node) store(v []float64) {
	if cap(n.last) < len(n.value) {
		n.last = make([]float64, len(n.value))
	}
	n.last = n.last[:len(n.value)]
	copy(n.last, n.value)
	n.hasLast = true

	if cap(n.value) < len(v) {
		n.value = make([]float64, len(v))
	}
	n.value = n.value[:len(v)]
	copy(n.value, v)
}

// SetValue commits a new value, snapshotting the previous one so Revert
// can restore it bit-exactly.
func (n *Node) SetValue(v []float64) { n.store(v) }

// ForceCache writes a value into the cache without recomputation — the
// incremental-update primitive used by the coordinate samplers. Like
// SetValue, it snapshots the previous value.
func (n *Node) ForceCache(v []float64) { n.store(v) }

// Revert restores the previous committed value. The restored slice is
// bit-identical to the snapshot taken by the last SetValue/ForceCache/
// Recompute. Returns ErrNoSnapshot when no previous value exists.
func (n *Node) Revert() error {
	if !n.hasLast {
		return ErrNoSnapshot
	}
	n.value, n.last = n.last, n.value

	return nil
}

// Recompute re-derives a deterministic node's cache from its parents,
// snapshotting the previous cache first. Calling it twice without an
// intervening parent change yields identical results (idempotence).
func (n *Node) Recompute() error {
	if n.kind != Deterministic {
		return ErrKindMismatch
	}
	v, err := n.compute()
	if err != nil {
		return err
	}
	n.store(v)

	return nil
}

// LogDensity evaluates a stochastic node's log-density at its current
// value. May return ErrZeroDensity (recoverable).
func (n *Node) LogDensity() (float64, error) {
	if n.kind != Stochastic {
		return 0, ErrKindMismatch
	}

	return n.logDensity()
}

// CheckCached verifies the cache against a fresh evaluation.
//
// Deterministic: recompute from parents and compare elementwise exactly
// against the cached value. Stochastic: evaluate the log-density twice
// (a zero-probability state counts as -Inf) and compare. Any mismatch
// is ErrInconsistent — fatal by contract.
func (n *Node) CheckCached() error {
	if n.kind == Deterministic {
		fresh, err := n.compute()
		if err != nil {
			return err
		}
		if len(fresh) != len(n.value) {
			return ErrInconsistent
		}
		for i, v := range fresh {
			if v != n.value[i] {
				return ErrInconsistent
			}
		}

		return nil
	}

	lp1, err := n.logDensityOrNegInf()
	if err != nil {
		return err
	}
	lp2, err := n.logDensityOrNegInf()
	if err != nil {
		return err
	}
	if lp1 != lp2 {
		return ErrInconsistent
	}

	return nil
}

// logDensityOrNegInf folds ErrZeroDensity into -Inf; other errors pass.
func (n *Node) logDensityOrNegInf() (float64, error) {
	lp, err := n.logDensity()
	if err != nil {
		if errors.Is(err, ErrZeroDensity) {
			return negInf, nil
		}

		return 0, err
	}

	return lp, nil
}
