package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cmvns/linalg"
)

// TestSolveTri_RoundTrip verifies U·x = b and Uᵀ·x = b solves against a
// hand-built right-hand side.
func TestSolveTri_RoundTrip(t *testing.T) {
	u := mat.NewTriDense(2, mat.Upper, []float64{2, 1, 0, 3})
	want := mat.NewDense(2, 1, []float64{1, 2})

	// b = U·x = [2*1+1*2, 3*2] = [4, 6]
	b := mat.NewDense(2, 1, []float64{4, 6})
	x, err := linalg.SolveTri(u, b, false)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, x, 1e-12), "U·x = b solve mismatch")

	// bT = Uᵀ·x = [2*1, 1*1+3*2] = [2, 7]
	bT := mat.NewDense(2, 1, []float64{2, 7})
	x, err = linalg.SolveTri(u, bT, true)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, x, 1e-12), "Uᵀ·x = b solve mismatch")
}

// TestSolveTri_Validation covers nil and shape errors.
func TestSolveTri_Validation(t *testing.T) {
	u := mat.NewTriDense(2, mat.Upper, nil)

	_, err := linalg.SolveTri(nil, mat.NewDense(2, 1, nil), false)
	assert.ErrorIs(t, err, linalg.ErrNilMatrix)

	_, err = linalg.SolveTri(u, mat.NewDense(3, 1, nil), false)
	assert.ErrorIs(t, err, linalg.ErrShape)
}

// TestCholesky_Factorizes verifies s = Uᵀ·U for a PD input and the
// ErrNotPD sentinel otherwise.
func TestCholesky_Factorizes(t *testing.T) {
	s := mat.NewSymDense(2, []float64{4, 2, 2, 3})
	u, err := linalg.Cholesky(s)
	require.NoError(t, err)

	var back mat.Dense
	back.Mul(u.T(), u)
	assert.True(t, mat.EqualApprox(s, &back, 1e-12), "Uᵀ·U must reproduce the input")

	notPD := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	_, err = linalg.Cholesky(notPD)
	assert.ErrorIs(t, err, linalg.ErrNotPD,
		"non-positive-definite input must surface the recoverable sentinel")
}

// TestSortByPivot_PermutesColumns verifies the argsort(piv) ordering.
func TestSortByPivot_PermutesColumns(t *testing.T) {
	u := mat.NewDense(1, 3, []float64{10, 20, 30})

	got, err := linalg.SortByPivot(u, []int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 30, 10}, got.RawMatrix().Data,
		"column k must hold the column with the k-th smallest pivot")
}

// TestSortByPivot_BadPivots covers length, range and duplicate errors.
func TestSortByPivot_BadPivots(t *testing.T) {
	u := mat.NewDense(1, 3, []float64{1, 2, 3})

	for name, piv := range map[string][]int{
		"short":     {0, 1},
		"range":     {0, 1, 5},
		"duplicate": {0, 1, 1},
	} {
		_, err := linalg.SortByPivot(u, piv)
		assert.ErrorIs(t, err, linalg.ErrBadPivots, name)
	}
}

// TestBookend_IdentityFactors verifies that identity factors leave the
// jump matrix unchanged.
func TestBookend_IdentityFactors(t *testing.T) {
	eye := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	got, err := linalg.Bookend(a, eye, eye)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(a, got, 1e-12))
}

// TestMinimalJumps_SameBasisIsIdentity verifies that proposing the
// unchanged basis yields identity jumps in both directions.
func TestMinimalJumps_SameBasisIsIdentity(t *testing.T) {
	u := mat.NewDense(2, 3, []float64{1, 0.5, 0.2, 0, 1, 0.3})
	piv := []int{0, 1, 2}
	eye := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	forward, backward, err := linalg.MinimalJumps(piv, u, piv, u)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(eye, forward, 1e-10), "forward jump must be identity")
	assert.True(t, mat.EqualApprox(eye, backward, 1e-10), "backward jump must be identity")
}

// TestMinimalJumps_SelfInverse verifies the rotation round trip: a
// forward jump followed by the forward jump of the swapped pivot sets
// returns the dependent vector to its original value, up to
// floating-point tolerance. The two factors here span the same row
// space (Un = Q·Uo for upper-triangular Q), so the correction is exact.
func TestMinimalJumps_SelfInverse(t *testing.T) {
	uo := mat.NewDense(2, 3, []float64{1, 0.5, 0.2, 0, 1, 0.3})
	q := mat.NewDense(2, 2, []float64{2, 1, 0, 0.5})
	var un mat.Dense
	un.Mul(q, uo)
	piv := []int{0, 1, 2}

	thereFwd, _, err := linalg.MinimalJumps(piv, uo, piv, &un)
	require.NoError(t, err)
	backFwd, _, err := linalg.MinimalJumps(piv, &un, piv, uo)
	require.NoError(t, err)

	var round mat.Dense
	round.Mul(backFwd, thereFwd)
	eye := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	assert.True(t, mat.EqualApprox(eye, &round, 1e-9), "round trip must be identity")

	v := mat.NewVecDense(2, []float64{0.7, -1.3})
	var mid, back mat.VecDense
	mid.MulVec(thereFwd, v)
	back.MulVec(backFwd, &mid)
	assert.InDelta(t, v.AtVec(0), back.AtVec(0), 1e-9)
	assert.InDelta(t, v.AtVec(1), back.AtVec(1), 1e-9)
}

// TestMinimalJumps_ShapeMismatch covers rank/point-count disagreement.
func TestMinimalJumps_ShapeMismatch(t *testing.T) {
	uo := mat.NewDense(2, 3, nil)
	un := mat.NewDense(3, 3, nil)

	_, _, err := linalg.MinimalJumps([]int{0, 1, 2}, uo, []int{0, 1, 2}, un)
	assert.ErrorIs(t, err, linalg.ErrShape)
}
