// Package lowrank implements the basis-rotation sampler: a joint
// Metropolis move that proposes a new low-rank pivot set (and hence a
// new triangular factor) while keeping a dependent jointly-Gaussian
// vector statistically consistent via a minimal-jump correction.
//
// 🚀 Why a correction at all?
//
//	The dependent vector mvn is defined relative to the current
//	factorization. When the pivot set changes, leaving mvn untouched
//	would silently reinterpret it in a different basis. The minimal
//	jump is the least-squares-optimal linear map between the two bases'
//	independent unit-normal spaces (linalg.MinimalJumps); applying the
//	forward jump with probability 1/2 and the backward jump otherwise
//	keeps the overall proposal symmetric, so the jump itself needs no
//	term in the acceptance ratio.
//
// ⚙️ Contracts
//
//   - A zero-probability proposal (including a failed Cholesky of the
//     proposed basis, surfaced as linalg.ErrNotPD) is an ordinary
//     rejection, never an error
//   - On rejection, the dependent vector must revert to its pre-jump
//     value exactly; a mismatch against the snapshot is fatal
//     (model.ErrInconsistent) — the rejection logic is broken
//
// The inner proposal over the basis variables is injected as a pair of
// propose/revert closures, mirroring the explicit dependency-injection
// rule used throughout cmvns.
package lowrank
