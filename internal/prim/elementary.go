package prim

import "math"

// Asinh returns the inverse hyperbolic sine of x. Defined on the whole real
// line; NaN propagates.
func Asinh(x float64) float64 {
	return math.Asinh(x)
}

// Atanh returns the inverse hyperbolic tangent of x.
//
// The domain is [-1, 1]; Atanh(±1) = ±Inf. NaN propagates without an error.
// Any other argument outside the domain yields ErrDomain.
func Atanh(x float64) (float64, error) {
	if math.IsNaN(x) {
		return x, nil
	}
	if err := CheckBounded("atanh", "x", x, -1, 1); err != nil {
		return math.NaN(), err
	}
	return math.Atanh(x), nil
}
