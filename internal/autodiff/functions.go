package autodiff

import (
	"math"

	"github.com/born-ml/adcore/internal/prim"
)

// Elementary functions. Each evaluates the value through the plain-numeric
// layer and records exactly one node whose partial is the analytic
// derivative at x.

// Square returns x². d/dx = 2x.
func (x Var) Square() Var { return x.unaryOp(x.val*x.val, 2*x.val) }

// Inv returns 1/x. d/dx = -1/x².
func (x Var) Inv() Var { return x.unaryOp(1/x.val, -1/(x.val*x.val)) }

// Sqrt returns √x. d/dx = 0.5/√x.
func (x Var) Sqrt() Var {
	s := math.Sqrt(x.val)
	return x.unaryOp(s, 0.5/s)
}

// Exp returns eˣ. d/dx = eˣ.
func (x Var) Exp() Var {
	e := math.Exp(x.val)
	return x.unaryOp(e, e)
}

// Log returns ln x. d/dx = 1/x.
func (x Var) Log() Var { return x.unaryOp(math.Log(x.val), 1/x.val) }

// Sin returns sin x. d/dx = cos x.
func (x Var) Sin() Var { return x.unaryOp(math.Sin(x.val), math.Cos(x.val)) }

// Cos returns cos x. d/dx = -sin x.
func (x Var) Cos() Var { return x.unaryOp(math.Cos(x.val), -math.Sin(x.val)) }

// Tanh returns tanh x. d/dx = 1 - tanh²x.
func (x Var) Tanh() Var {
	t := math.Tanh(x.val)
	return x.unaryOp(t, 1-t*t)
}

// Pow returns xᵖ for a constant exponent. d/dx = p·xᵖ⁻¹.
func (x Var) Pow(p float64) Var {
	return x.unaryOp(math.Pow(x.val, p), p*math.Pow(x.val, p-1))
}

// Asinh returns the inverse hyperbolic sine. d/dx = 1/√(x²+1).
func (x Var) Asinh() Var {
	return x.unaryOp(prim.Asinh(x.val), 1/math.Sqrt(x.val*x.val+1))
}

// Atanh returns the inverse hyperbolic tangent. d/dx = 1/(1-x²).
//
// Outside [-1, 1] it returns an error wrapping prim.ErrDomain and records
// nothing.
func (x Var) Atanh() (Var, error) {
	v, err := prim.Atanh(x.val)
	if err != nil {
		return Var{}, err
	}
	return x.unaryOp(v, 1/(1-x.val*x.val)), nil
}
