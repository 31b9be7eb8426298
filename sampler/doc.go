// Package sampler implements the constrained coordinate samplers at the
// heart of cmvns: single-coordinate updates of a whitened latent Gaussian
// vector g under hard sign constraints, with likelihood terms evaluated
// through precomputed offdiagonal projections.
//
// 🚀 What lives here?
//
//   - ConstraintSet — tracks linear functionals of g tagged with required
//     signs and computes the feasible interval for one coordinate given
//     the cached contributions of all others
//   - Importance    — per-coordinate importance resampling: K
//     truncated-normal prior draws plus the current value, reweighted by
//     the likelihood-only log-density
//   - Metropolis    — per-coordinate Metropolis-Hastings on a truncated
//     normal centered at the current value, with the asymmetric-truncation
//     Hastings correction and per-coordinate adaptive scales
//   - Tune          — acceptance-rate-driven scale adaptation
//   - Delayed       — run any Stepper every k-th call
//
// ⚙️ Execution model
//
//	Single-threaded, sequential sweeps: coordinates are visited in fixed
//	index order 0..n-1, and each constraint's right-hand-side residual
//	cache is rebuilt at the start of a sweep and updated incrementally
//	after every committed move. Reordering visits changes the Markov
//	chain and is not allowed. Exactly one sampler owns the latent vector
//	and its dependent caches during a sweep.
//
// Failure taxonomy (see errors.go): an empty feasible interval
// (ErrConstraintViolation) skips the coordinate for the sweep with a
// warning; a zero-probability candidate (model.ErrZeroDensity) is an
// automatic rejection; a broken constraint sign or a revert that does
// not restore the snapshot (ErrConstraintBroken, model.ErrInconsistent)
// is a bookkeeping defect and aborts the run.
//
// Randomness is explicit: every sampler draws from the injected
// golang.org/x/exp/rand source in its Options, never from an ambient
// generator.
package sampler
