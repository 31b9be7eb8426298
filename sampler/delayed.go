package sampler

import "fmt"

// Delayed wraps any Stepper and runs it only on every k-th call,
// starting with the first — the periodic/sleeping variant used when a
// slow joint move should fire less often than the coordinate sweeps.
type Delayed struct {
	inner         Stepper
	sleepInterval int
	index         int
}

// NewDelayed wraps inner with the given sleep interval (≥ 1; an
// interval of 1 steps on every call).
func NewDelayed(inner Stepper, sleepInterval int) (*Delayed, error) {
	if inner == nil {
		return nil, ErrNilCollaborator
	}
	if sleepInterval < 1 {
		return nil, fmt.Errorf("sleepInterval=%d: %w", sleepInterval, ErrBadOption)
	}

	return &Delayed{inner: inner, sleepInterval: sleepInterval}, nil
}

// Step forwards to the wrapped stepper on calls 0, k, 2k, … and is a
// no-op otherwise.
func (d *Delayed) Step() error {
	idx := d.index
	d.index++
	if idx%d.sleepInterval == 0 {
		return d.inner.Step()
	}

	return nil
}

// compile-time interface check
var _ Stepper = (*Delayed)(nil)
