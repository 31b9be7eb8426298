package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cmvns/model"
	"github.com/katalvlaran/cmvns/sampler"
)

// fixture wires the minimal collaborator graph the coordinate samplers
// consume: whitened vector g, field vector f = Uᵀ·g with U = I, one
// likelihood offdiag (identity projection feeding a stochastic "data"
// leaf) and optionally one sign constraint.
type fixture struct {
	g, f   *model.Node
	feval  *model.Node
	data   *model.Node
	cfeval *model.Node

	likelihood  []sampler.Offdiag
	constraints []sampler.Constraint
	u           *mat.Dense
}

// identity returns an n×n identity matrix.
func identity(n int) *mat.Dense {
	u := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		u.Set(i, i, 1)
	}

	return u
}

// newFixture builds the graph. dataLogp receives the likelihood f-eval
// cache; pass nil for a constraint-only fixture (no likelihood group).
// conProj, when non-nil, adds one constraint with the given sign.
func newFixture(t *testing.T, g0 []float64, dataLogp func(feval []float64) (float64, error), conProj *mat.Dense, sign float64) *fixture {
	t.Helper()
	n := len(g0)

	fx := &fixture{u: identity(n)}
	fx.g = model.NewStochastic("g", g0, func() (float64, error) { return 0, nil })
	fx.f = model.NewStochastic("f", g0, func() (float64, error) { return 0, nil })

	if dataLogp != nil {
		fx.feval = model.NewDeterministic("f_eval", func() ([]float64, error) {
			return append([]float64(nil), fx.g.Value()...), nil
		})
		require.NoError(t, fx.feval.Recompute())
		fx.data = model.NewStochastic("data", []float64{0}, func() (float64, error) {
			return dataLogp(fx.feval.Value())
		})
		fx.feval.AddChildren(fx.data)
		fx.likelihood = []sampler.Offdiag{{Proj: identity(n), Children: []*model.Node{fx.feval}}}
	}

	if conProj != nil {
		rows, _ := conProj.Dims()
		fx.cfeval = model.NewDeterministic("constraint_eval", func() ([]float64, error) {
			out := make([]float64, rows)
			g := fx.g.Value()
			for k := 0; k < rows; k++ {
				var sum float64
				for c := range g {
					sum += conProj.At(k, c) * g[c]
				}
				out[k] = sum
			}

			return out, nil
		})
		require.NoError(t, fx.cfeval.Recompute())
		fx.constraints = []sampler.Constraint{{
			Offdiag: sampler.Offdiag{Proj: conProj, Children: []*model.Node{fx.cfeval}},
			Sign:    sign,
		}}
	}

	return fx
}

// onesRow returns a 1×n projection of all ones.
func onesRow(n int) *mat.Dense {
	row := make([]float64, n)
	for i := range row {
		row[i] = 1
	}

	return mat.NewDense(1, n, row)
}
