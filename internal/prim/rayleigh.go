package prim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// RayleighRNG draws one sample from a Rayleigh distribution with scale sigma.
//
// A Rayleigh(σ) variate is a Weibull variate with shape 2 and scale σ√2, so
// the draw is the Weibull quantile of a uniform variate from rng.
// A non-positive or non-finite sigma yields ErrDomain and consumes no randomness.
func RayleighRNG(sigma float64, rng *rand.Rand) (float64, error) {
	if err := CheckPositiveFinite("rayleigh_rng", "Scale parameter", sigma); err != nil {
		return math.NaN(), err
	}
	return rayleighQuantile(sigma, rng.Float64()), nil
}

// RayleighRNGVec draws one sample per scale. Every scale is checked before
// the first draw.
func RayleighRNGVec(sigmas []float64, rng *rand.Rand) ([]float64, error) {
	for _, s := range sigmas {
		if err := CheckPositiveFinite("rayleigh_rng", "Scale parameter", s); err != nil {
			return nil, err
		}
	}
	out := make([]float64, len(sigmas))
	for i, s := range sigmas {
		out[i] = rayleighQuantile(s, rng.Float64())
	}
	return out, nil
}

// RayleighQuantile returns the p-quantile of Rayleigh(sigma).
func RayleighQuantile(sigma, p float64) (float64, error) {
	if err := CheckPositiveFinite("rayleigh_quantile", "Scale parameter", sigma); err != nil {
		return math.NaN(), err
	}
	if err := CheckBounded("rayleigh_quantile", "p", p, 0, 1); err != nil {
		return math.NaN(), err
	}
	return rayleighQuantile(sigma, p), nil
}

func rayleighQuantile(sigma, p float64) float64 {
	w := distuv.Weibull{K: 2, Lambda: sigma * math.Sqrt2}
	return w.Quantile(p)
}
