// Package linalg provides the small set of dense linear-algebra kernels
// the cmvns samplers need: triangular solves, Cholesky factorization,
// pivot-ordered column sorting, and the minimal-jump basis-rotation pair.
//
// 🚀 What lives here?
//
//   - SolveTri      — upper-triangular solve, optionally against Uᵀ
//   - Cholesky      — upper Cholesky factor with a non-PD sentinel
//   - SortByPivot   — column permutation into pivot-sorted order
//   - Bookend       — map a jump matrix back into the embedding space
//   - MinimalJumps  — least-squares-optimal forward/backward corrections
//     for a jointly-Gaussian vector when its low-rank basis changes
//
// All functions are pure: inputs are never mutated and fresh matrices
// are returned. Storage and factorizations come from gonum
// (gonum.org/v1/gonum/mat); this package only adds the composition the
// rotation machinery requires.
//
// Errors are package-prefixed sentinels (see errors.go) and must be
// matched with errors.Is. A failed factorization (ErrNotPD) is a
// recoverable condition at the model layer — callers map it to a
// zero-probability state, not a crash.
package linalg
