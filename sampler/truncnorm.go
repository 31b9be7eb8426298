package sampler

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// cdfSpan returns the normal CDF at both truncation bounds, treating
// infinite bounds as 0 and 1.
func cdfSpan(nd distuv.Normal, lo, hi float64) (clo, chi float64) {
	clo, chi = 0, 1
	if !math.IsInf(lo, -1) {
		clo = nd.CDF(lo)
	}
	if !math.IsInf(hi, 1) {
		chi = nd.CDF(hi)
	}

	return clo, chi
}

// TruncNormRand draws one value from a normal(mu, sigma) truncated to
// [lo, hi], by inverse-CDF sampling: u ~ Uniform(CDF(lo), CDF(hi)),
// x = Quantile(u). Bounds may be infinite; the interval must be
// non-empty (callers obtain it from ConstraintSet.Bounds, which already
// rejects empty intervals).
//
// When the interval lies so far in the tail that its CDF span
// underflows to zero, the draw degenerates to the bound nearest mu —
// the distribution's entire mass sits there at double precision.
func TruncNormRand(rng *rand.Rand, mu, sigma, lo, hi float64) float64 {
	nd := distuv.Normal{Mu: mu, Sigma: sigma}
	clo, chi := cdfSpan(nd, lo, hi)
	if !(chi > clo) {
		if math.Abs(lo-mu) < math.Abs(hi-mu) {
			return lo
		}

		return hi
	}

	u := clo + rng.Float64()*(chi-clo)
	// Keep u strictly inside (0,1) so Quantile stays finite.
	if u <= 0 {
		u = math.SmallestNonzeroFloat64
	}
	if u >= 1 {
		u = 1 - 1e-16
	}

	return nd.Quantile(u)
}

// TruncNormLogProb evaluates the log-density of a normal(mu, sigma)
// truncated to [lo, hi] at x: the untruncated log-density minus the log
// of the interval's probability mass. Returns -Inf outside the support
// or when the mass underflows.
func TruncNormLogProb(x, mu, sigma, lo, hi float64) float64 {
	if x < lo || x > hi {
		return math.Inf(-1)
	}
	nd := distuv.Normal{Mu: mu, Sigma: sigma}
	clo, chi := cdfSpan(nd, lo, hi)
	if !(chi > clo) {
		return math.Inf(-1)
	}

	return nd.LogProb(x) - math.Log(chi-clo)
}

// categorical draws an index from a normalized probability vector.
func categorical(rng *rand.Rand, probs []float64) int {
	u := rng.Float64()
	var cum float64
	for i, p := range probs {
		cum += p
		if u < cum {
			return i
		}
	}

	return len(probs) - 1
}
