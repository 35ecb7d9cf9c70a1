// Package fwd implements forward-mode automatic differentiation with dual
// numbers.
//
// Fvar[T] pairs a value with a tangent, both of kind T. T may be any
// scalar.Number: a plain scalar.Float, a reverse-mode autodiff.Var, or another
// Fvar. Nesting is how higher and mixed derivatives are obtained:
//
//	Fvar[Float]        first derivative
//	Fvar[Fvar[Float]]  second derivative (D.D)
//	Fvar[Var]          gradient of a directional derivative (forward-over-reverse)
//	Fvar[Fvar[Var]]    third-order mixed derivatives
//
// Every rule is written in T arithmetic, so the derivative formula of an
// elementary function is itself differentiated when T is a dual or a Var.
package fwd

import (
	"fmt"

	"github.com/born-ml/adcore/internal/scalar"
)

// Fvar is a forward-mode dual number Val + D·ε with ε² = 0.
//
// The zero Fvar is the constant 0 of its kind whenever the zero T is.
type Fvar[T scalar.Number[T]] struct {
	Val T // value
	D   T // tangent (directional derivative)
}

// New returns the dual number val + d·ε.
func New[T scalar.Number[T]](val, d T) Fvar[T] {
	return Fvar[T]{Val: val, D: d}
}

// Seed returns x with unit tangent: the independent variable of a
// derivative sweep.
func Seed[T scalar.Number[T]](x T) Fvar[T] {
	return Fvar[T]{Val: x, D: x.Const(1)}
}

// Value returns the innermost plain value.
func (x Fvar[T]) Value() float64 { return x.Val.Value() }

// Const returns a dual with value c and zero tangent.
func (x Fvar[T]) Const(c float64) Fvar[T] {
	return Fvar[T]{Val: x.Val.Const(c), D: x.Val.Const(0)}
}

// Add returns x + y: (a+b, a′+b′).
func (x Fvar[T]) Add(y Fvar[T]) Fvar[T] {
	return Fvar[T]{Val: x.Val.Add(y.Val), D: x.D.Add(y.D)}
}

// Sub returns x - y: (a-b, a′-b′).
func (x Fvar[T]) Sub(y Fvar[T]) Fvar[T] {
	return Fvar[T]{Val: x.Val.Sub(y.Val), D: x.D.Sub(y.D)}
}

// Mul returns x·y: (ab, a′b + ab′).
func (x Fvar[T]) Mul(y Fvar[T]) Fvar[T] {
	return Fvar[T]{
		Val: x.Val.Mul(y.Val),
		D:   x.D.Mul(y.Val).Add(x.Val.Mul(y.D)),
	}
}

// Div returns x/y: (a/b, (a′ - (a/b)·b′)/b).
func (x Fvar[T]) Div(y Fvar[T]) Fvar[T] {
	q := x.Val.Div(y.Val)
	return Fvar[T]{
		Val: q,
		D:   x.D.Sub(q.Mul(y.D)).Div(y.Val),
	}
}

// Neg returns -x.
func (x Fvar[T]) Neg() Fvar[T] { return Fvar[T]{Val: x.Val.Neg(), D: x.D.Neg()} }

// AddConst returns x + c.
func (x Fvar[T]) AddConst(c float64) Fvar[T] { return Fvar[T]{Val: x.Val.AddConst(c), D: x.D} }

// MulConst returns c·x.
func (x Fvar[T]) MulConst(c float64) Fvar[T] {
	return Fvar[T]{Val: x.Val.MulConst(c), D: x.D.MulConst(c)}
}

// chain returns (fa, a′·dfa) for a unary function with value fa and
// derivative dfa at a.
func (x Fvar[T]) chain(fa, dfa T) Fvar[T] {
	return Fvar[T]{Val: fa, D: x.D.Mul(dfa)}
}

// Square returns x². d = 2a·a′.
func (x Fvar[T]) Square() Fvar[T] { return x.chain(x.Val.Square(), x.Val.MulConst(2)) }

// Inv returns 1/x. d = -a′/a².
func (x Fvar[T]) Inv() Fvar[T] { return x.chain(x.Val.Inv(), x.Val.Square().Inv().Neg()) }

// Sqrt returns √x. d = a′/(2√a).
func (x Fvar[T]) Sqrt() Fvar[T] {
	s := x.Val.Sqrt()
	return x.chain(s, s.MulConst(2).Inv())
}

// Exp returns eˣ. d = a′·eᵃ.
func (x Fvar[T]) Exp() Fvar[T] {
	e := x.Val.Exp()
	return x.chain(e, e)
}

// Log returns ln x. d = a′/a.
func (x Fvar[T]) Log() Fvar[T] { return x.chain(x.Val.Log(), x.Val.Inv()) }

// Sin returns sin x. d = a′·cos a.
func (x Fvar[T]) Sin() Fvar[T] { return x.chain(x.Val.Sin(), x.Val.Cos()) }

// Cos returns cos x. d = -a′·sin a.
func (x Fvar[T]) Cos() Fvar[T] { return x.chain(x.Val.Cos(), x.Val.Sin().Neg()) }

// Tanh returns tanh x. d = a′·(1 - tanh²a).
func (x Fvar[T]) Tanh() Fvar[T] {
	t := x.Val.Tanh()
	return x.chain(t, t.Square().Neg().AddConst(1))
}

// Pow returns xᵖ for a constant exponent. d = a′·p·aᵖ⁻¹.
func (x Fvar[T]) Pow(p float64) Fvar[T] {
	return x.chain(x.Val.Pow(p), x.Val.Pow(p-1).MulConst(p))
}

// Asinh returns the inverse hyperbolic sine. d = a′/√(a²+1).
func (x Fvar[T]) Asinh() Fvar[T] {
	return x.chain(x.Val.Asinh(), x.Val.Square().AddConst(1).Sqrt().Inv())
}

// Atanh returns the inverse hyperbolic tangent. d = a′/(1-a²).
//
// The domain is checked on the value part before anything else is
// evaluated, so a failing call leaves any tape underneath untouched.
func (x Fvar[T]) Atanh() (Fvar[T], error) {
	v, err := x.Val.Atanh()
	if err != nil {
		return Fvar[T]{}, err
	}
	return x.chain(v, x.Val.Square().Neg().AddConst(1).Inv()), nil
}

// Comparisons read the value part only.

func (x Fvar[T]) Less(y Fvar[T]) bool      { return x.Value() < y.Value() }
func (x Fvar[T]) LessEq(y Fvar[T]) bool    { return x.Value() <= y.Value() }
func (x Fvar[T]) Greater(y Fvar[T]) bool   { return x.Value() > y.Value() }
func (x Fvar[T]) GreaterEq(y Fvar[T]) bool { return x.Value() >= y.Value() }
func (x Fvar[T]) Equal(y Fvar[T]) bool     { return x.Value() == y.Value() }

// String formats x as (val, d).
func (x Fvar[T]) String() string {
	return fmt.Sprintf("(%v, %v)", x.Val, x.D)
}
