package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/cmvns/model"
	"github.com/katalvlaran/cmvns/sampler"
)

// TestImportance_RespectsConstraint runs sweeps of the prior-resampling
// sampler under a positivity constraint on the coordinate sum; the
// dependent cache must track the true projection and stay non-negative
// throughout, with no skipped coordinates.
func TestImportance_RespectsConstraint(t *testing.T) {
	fx := newFixture(t, []float64{0.1, 0.1, 0.1, 0.1}, nil, onesRow(4), 1)
	s, err := sampler.NewImportance(fx.f, fx.g, fx.u, fx.likelihood, fx.constraints, sampler.DefaultOptions(rand.New(rand.NewSource(17))))
	require.NoError(t, err)

	for k := 0; k < 30; k++ {
		require.NoError(t, s.Step())

		g := fx.g.Value()
		var sum float64
		for _, v := range g {
			sum += v
		}
		got := fx.cfeval.Value()[0]
		assert.GreaterOrEqual(t, got, 0.0)
		assert.InDelta(t, sum, got, 1e-9, "cache must track the projection")
	}
	assert.Equal(t, 0, s.Skipped())
}

// TestImportance_MovesTowardLikelihood targets a sharp likelihood at
// f = 2 on a single coordinate. Candidates come from the standard-normal
// prior, so reaching 2 takes reweighting; after enough sweeps the chain
// must sit near the posterior mode.
func TestImportance_MovesTowardLikelihood(t *testing.T) {
	like := distuv.Normal{Mu: 2, Sigma: 0.1}
	fx := newFixture(t, []float64{0}, func(feval []float64) (float64, error) {
		return like.LogProb(feval[0]), nil
	}, nil, 0)

	s, err := sampler.NewImportance(fx.f, fx.g, fx.u, fx.likelihood, fx.constraints, sampler.DefaultOptions(rand.New(rand.NewSource(23))))
	require.NoError(t, err)
	require.NoError(t, s.Run(50))

	assert.InDelta(t, 2.0, fx.g.Value()[0], 0.5)
	assert.InDelta(t, fx.g.Value()[0], fx.f.Value()[0], 1e-9, "identity factor keeps f glued to g")
	require.Len(t, s.LikelihoodChildren(), 1)
	assert.Same(t, fx.data, s.LikelihoodChildren()[0])
}

// TestImportance_ZeroLikelihoodKeepsCurrent makes every candidate —
// including the incumbent — zero-probability; the sweep must fall back
// to the current value instead of committing garbage.
func TestImportance_ZeroLikelihoodKeepsCurrent(t *testing.T) {
	g0 := []float64{0.3, -0.7}
	fx := newFixture(t, g0, func([]float64) (float64, error) {
		return 0, model.ErrZeroDensity
	}, nil, 0)

	s, err := sampler.NewImportance(fx.f, fx.g, fx.u, fx.likelihood, fx.constraints, sampler.DefaultOptions(rand.New(rand.NewSource(29))))
	require.NoError(t, err)
	require.NoError(t, s.Step())

	assert.Equal(t, g0, fx.g.Value())
}

// TestNewImportance_Validation covers the constructor's option checks.
func TestNewImportance_Validation(t *testing.T) {
	fx := newFixture(t, []float64{0, 0}, nil, nil, 0)

	_, err := sampler.NewImportance(fx.f, nil, fx.u, nil, nil, sampler.DefaultOptions(rand.New(rand.NewSource(1))))
	assert.ErrorIs(t, err, sampler.ErrNilCollaborator)

	opts := sampler.DefaultOptions(rand.New(rand.NewSource(1)))
	opts.Draws = 0
	_, err = sampler.NewImportance(fx.f, fx.g, fx.u, nil, nil, opts)
	assert.ErrorIs(t, err, sampler.ErrBadOption)

	opts = sampler.DefaultOptions(nil)
	_, err = sampler.NewImportance(fx.f, fx.g, fx.u, nil, nil, opts)
	assert.ErrorIs(t, err, sampler.ErrBadOption)
}
