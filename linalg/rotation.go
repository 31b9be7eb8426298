package linalg

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Operation tags for uniform error wrapping.
const (
	opSortByPivot  = "SortByPivot"
	opBookend      = "Bookend"
	opMinimalJumps = "MinimalJumps"
)

// argsort returns the index order that sorts piv ascending.
func argsort(piv []int) []int {
	order := make([]int, len(piv))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return piv[order[a]] < piv[order[b]] })

	return order
}

// validPivots reports whether piv holds n distinct indices in [0, n).
func validPivots(piv []int, n int) bool {
	if len(piv) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range piv {
		if p < 0 || p >= n || seen[p] {
			return false
		}
		seen[p] = true
	}

	return true
}

// SortByPivot permutes the columns of a low-rank factor u into pivot-sorted
// order: column k of the result is the column of u whose pivot index is the
// k-th smallest. This places two factorizations over the same point set
// into a common column order so their cross-Gram products are meaningful.
//
// Stage 1 (Validate): non-nil factor, piv a permutation of 0..cols-1.
// Stage 2 (Execute): copy columns following argsort(piv).
//
// Complexity: O(r·c + c·log c).
func SortByPivot(u *mat.Dense, piv []int) (*mat.Dense, error) {
	if u == nil {
		return nil, fmt.Errorf("%s: %w", opSortByPivot, ErrNilMatrix)
	}
	r, c := u.Dims()
	if !validPivots(piv, c) {
		return nil, fmt.Errorf("%s: %w", opSortByPivot, ErrBadPivots)
	}

	out := mat.NewDense(r, c, nil)
	for k, src := range argsort(piv) {
		for i := 0; i < r; i++ {
			out.Set(i, k, u.At(i, src))
		}
	}

	return out, nil
}

// squareUpper copies the leading r×r block of u (its "full-rank" square
// part) into an upper-triangular factor.
func squareUpper(u *mat.Dense) *mat.TriDense {
	r, _ := u.Dims()
	sq := mat.NewTriDense(r, mat.Upper, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sq.SetTri(i, j, u.At(i, j))
		}
	}

	return sq
}

// Bookend maps a jump matrix a, expressed between the independent
// unit-normal spaces of two factorizations, back into the embedding space:
//
//	Bookend(A, Ufro, Ubak) = (Ufro_sq⁻¹ · Aᵀ · Ubak_sq)ᵀ
//
// where X_sq denotes the leading square block of each factor.
//
// Stage 1 (Validate): non-nil operands; each factor at least as wide as
// tall; A conformable with both square blocks.
// Stage 2 (Execute): triangular solve against Ufro_sq, multiply by
// Ubak_sq, transpose into a fresh Dense.
//
// Complexity: O(r³).
func Bookend(a mat.Matrix, ufro, ubak *mat.Dense) (*mat.Dense, error) {
	if a == nil || ufro == nil || ubak == nil {
		return nil, fmt.Errorf("%s: %w", opBookend, ErrNilMatrix)
	}
	rf, cf := ufro.Dims()
	rb, cb := ubak.Dims()
	if rf > cf || rb > cb {
		return nil, fmt.Errorf("%s: %w", opBookend, ErrShape)
	}
	ar, ac := a.Dims()
	if ac != rf || ar != rb {
		return nil, fmt.Errorf("%s: %w", opBookend, ErrShape)
	}

	x, err := SolveTri(squareUpper(ufro), a.T(), false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBookend, err)
	}

	var prod mat.Dense
	prod.Mul(x, ubak.Slice(0, rb, 0, rb))

	return mat.DenseCopyOf(prod.T()), nil
}

// MinimalJumps computes the minimal-squared-error forward and backward
// jump matrices for a jointly-Gaussian vector whose defining low-rank
// basis changes from (pivOld, uOld) to (pivNew, uNew).
//
// Both factorizations are first converted to the common space of
// independent unit normals by sorting columns into pivot order; the
// cross-Gram products
//
//	oldnew = Uo·Unᵀ,  oldold = Uo·Uoᵀ,  newnew = Un·Unᵀ
//
// then define the least-squares corrections
//
//	forward  = solve(newnew, oldnewᵀ)
//	backward = inv(solve(oldold, oldnew))
//
// each mapped back into the embedding space via Bookend. Applying
// forward with probability 1/2 and backward otherwise keeps the overall
// basis-change proposal symmetric.
//
// Stage 1 (Validate): equal ranks and point counts, valid pivot sets.
// Stage 2 (Execute): sort, form Gram products, solve/invert.
// Stage 3 (Finalize): bookend both jumps; singular Gram systems surface
// as ErrSingular.
//
// Complexity: O(r²·n + r³) for rank r over n points.
func MinimalJumps(pivOld []int, uOld *mat.Dense, pivNew []int, uNew *mat.Dense) (forward, backward *mat.Dense, err error) {
	if uOld == nil || uNew == nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, ErrNilMatrix)
	}
	ro, co := uOld.Dims()
	rn, cn := uNew.Dims()
	if ro != rn || co != cn || ro > co {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, ErrShape)
	}

	oldSorted, err := SortByPivot(uOld, pivOld)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, err)
	}
	newSorted, err := SortByPivot(uNew, pivNew)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, err)
	}

	var oldnew, oldold, newnew mat.Dense
	oldnew.Mul(oldSorted, newSorted.T())
	oldold.Mul(oldSorted, oldSorted.T())
	newnew.Mul(newSorted, newSorted.T())

	var forJump mat.Dense
	if err = forJump.Solve(&newnew, oldnew.T()); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, ErrSingular)
	}

	var oldSolve, bakJump mat.Dense
	if err = oldSolve.Solve(&oldold, &oldnew); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, ErrSingular)
	}
	if err = bakJump.Inverse(&oldSolve); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, ErrSingular)
	}

	forward, err = Bookend(&forJump, uOld, uNew)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, err)
	}
	backward, err = Bookend(&bakJump, uOld, uNew)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opMinimalJumps, err)
	}

	return forward, backward, nil
}
