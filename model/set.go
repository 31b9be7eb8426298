package model

import (
	"errors"
	"math"
)

// negInf is the log-density of a zero-probability state.
var negInf = math.Inf(-1)

// EvalChildren force-recomputes the entire downstream cone of n in
// registration order: deterministic children are recomputed and
// descended into, stochastic children have their log-density evaluated.
// Every touched node is consistency-checked; a cache that disagrees with
// its recomputation surfaces as ErrInconsistent (fatal).
//
// A child in a zero-probability state is not an error here — the caller
// decides what a -Inf likelihood means for the move being evaluated.
func EvalChildren(n *Node) error {
	for _, c := range n.children {
		if c.kind == Deterministic {
			if err := c.Recompute(); err != nil {
				return err
			}
			if err := EvalChildren(c); err != nil {
				return err
			}
		} else {
			if _, err := c.logDensityOrNegInf(); err != nil {
				return err
			}
		}
		if err := c.CheckCached(); err != nil {
			return err
		}
	}

	return nil
}

// LogDensityOfSet sums the log-densities of a set of stochastic nodes.
// The first zero-probability member short-circuits the sum to -Inf with
// ErrZeroDensity, which callers treat as rejection, not failure.
func LogDensityOfSet(nodes []*Node) (float64, error) {
	var sum float64
	for _, n := range nodes {
		lp, err := n.LogDensity()
		if err != nil {
			if errors.Is(err, ErrZeroDensity) {
				return negInf, ErrZeroDensity
			}

			return 0, err
		}
		sum += lp
	}

	return sum, nil
}

// StochasticDescendants extends a node set through deterministic links
// to the stochastic nodes it ultimately influences: stochastic members
// are kept, deterministic members are replaced by their descendants.
// The result is deduplicated in first-seen order, so the evaluation
// order of a likelihood set is reproducible across sweeps.
func StochasticDescendants(nodes []*Node) []*Node {
	var out []*Node
	seen := make(map[*Node]bool)

	var walk func(n *Node)
	walk = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		if n.kind == Stochastic {
			out = append(out, n)

			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	return out
}
