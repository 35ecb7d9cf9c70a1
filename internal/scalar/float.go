package scalar

import (
	"math"

	"github.com/born-ml/adcore/internal/prim"
)

// Float is the plain-numeric kind: a float64 that satisfies Number.
type Float float64

// Value returns x as a float64.
func (x Float) Value() float64 { return float64(x) }

// Const returns c as a Float.
func (Float) Const(c float64) Float { return Float(c) }

func (x Float) Add(y Float) Float { return x + y }
func (x Float) Sub(y Float) Float { return x - y }
func (x Float) Mul(y Float) Float { return x * y }
func (x Float) Div(y Float) Float { return x / y }
func (x Float) Neg() Float        { return -x }

func (x Float) AddConst(c float64) Float { return x + Float(c) }
func (x Float) MulConst(c float64) Float { return x * Float(c) }

func (x Float) Square() Float       { return x * x }
func (x Float) Inv() Float          { return 1 / x }
func (x Float) Sqrt() Float         { return Float(math.Sqrt(float64(x))) }
func (x Float) Exp() Float          { return Float(math.Exp(float64(x))) }
func (x Float) Log() Float          { return Float(math.Log(float64(x))) }
func (x Float) Sin() Float          { return Float(math.Sin(float64(x))) }
func (x Float) Cos() Float          { return Float(math.Cos(float64(x))) }
func (x Float) Tanh() Float         { return Float(math.Tanh(float64(x))) }
func (x Float) Pow(p float64) Float { return Float(math.Pow(float64(x), p)) }
func (x Float) Asinh() Float        { return Float(prim.Asinh(float64(x))) }

// Atanh returns the inverse hyperbolic tangent, or a prim.ErrDomain error
// outside [-1, 1].
func (x Float) Atanh() (Float, error) {
	v, err := prim.Atanh(float64(x))
	return Float(v), err
}

// Floats converts a float64 slice to Float.
func Floats(xs []float64) []Float {
	out := make([]Float, len(xs))
	for i, x := range xs {
		out[i] = Float(x)
	}
	return out
}
