package prim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogSumExp returns log(exp(a) + exp(b)) without overflow:
//
//	log(exp(a) + exp(b)) = m + log1p(exp(-|a-b|)),  m = max(a, b)
func LogSumExp(a, b float64) float64 {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.NaN()
	case math.IsInf(a, 1) || math.IsInf(b, 1):
		return math.Inf(1)
	case math.IsInf(a, -1):
		return b
	case math.IsInf(b, -1):
		return a
	}
	if a > b {
		return a + math.Log1p(math.Exp(b-a))
	}
	return b + math.Log1p(math.Exp(a-b))
}

// LogSumExpSlice returns the log of the sum of exponentials of xs.
// An empty slice yields -Inf (the log of an empty sum).
func LogSumExpSlice(xs []float64) float64 {
	if len(xs) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(xs)
}

// Softmax writes exp(xs[i] - LogSumExpSlice(xs)) into dst, which is the
// gradient of LogSumExpSlice. dst must have the same length as xs.
func Softmax(dst, xs []float64) {
	lse := LogSumExpSlice(xs)
	for i, x := range xs {
		dst[i] = math.Exp(x - lse)
	}
}

// Sum returns the sum of xs; zero for an empty slice.
func Sum(xs []float64) float64 {
	return floats.Sum(xs)
}

// Dot returns the dot product of two equal-length slices.
func Dot(a, b []float64) (float64, error) {
	if err := CheckMatchingSizes("dot_product", "v1", len(a), "v2", len(b)); err != nil {
		return 0, err
	}
	return floats.Dot(a, b), nil
}
