// Package scalar defines the arithmetic contract shared by every
// differentiable number kind and the plain-numeric kind Float.
//
// Three kinds satisfy Number:
//   - scalar.Float: a float64 with no derivative bookkeeping
//   - autodiff.Var: a reverse-mode handle that records onto a tape
//   - fwd.Fvar[T]: a forward-mode dual over any Number T, itself a Number
//
// Generic code written against Number[T] runs unchanged under every kind,
// which is how nested kinds such as Fvar[Fvar[Var]] yield higher-order and
// mixed derivatives.
package scalar

// Number is the self-referential constraint for differentiable scalars.
//
// The zero value of every Number kind must be a usable constant 0 so that
// generic code can build constants with Const on an arbitrary receiver.
type Number[T any] interface {
	// Value returns the innermost plain value.
	Value() float64
	// Const returns a constant of the receiver's kind carrying c.
	Const(c float64) T

	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	AddConst(c float64) T
	MulConst(c float64) T

	Square() T
	Inv() T
	Sqrt() T
	Exp() T
	Log() T
	Sin() T
	Cos() T
	Tanh() T
	Pow(p float64) T
	Asinh() T
	Atanh() (T, error)
}
