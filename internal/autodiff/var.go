package autodiff

import (
	"fmt"

	"github.com/born-ml/adcore/internal/autodiff/ops"
	"github.com/born-ml/adcore/internal/scalar"
)

// Var is a reverse-mode scalar: a value plus a back-reference to the tape
// node that produced it.
//
// Vars are small values and are copied freely. Copies share the node and
// therefore the adjoint slot, which is how shared sub-expressions accumulate
// every use during the reverse pass.
//
// The zero Var is the constant 0. Constants carry no context and record
// nothing; an operation records a node only when at least one operand lives
// on a tape.
type Var struct {
	ctx   *Context
	id    ops.NodeID
	epoch uint32
	val   float64
}

var _ scalar.Number[Var] = Var{}

// Constant returns a Var holding x that is not on any tape.
func Constant(x float64) Var {
	return Var{id: ops.NoNode, val: x}
}

// Constants converts xs to constant Vars.
func Constants(xs []float64) []Var {
	out := make([]Var, len(xs))
	for i, x := range xs {
		out[i] = Constant(x)
	}
	return out
}

// Value returns the forward value. Reading it never touches the tape.
func (v Var) Value() float64 { return v.val }

// IsConstant reports whether v is off-tape.
func (v Var) IsConstant() bool { return v.ctx == nil }

// Context returns the context v records into, or nil for a constant.
func (v Var) Context() *Context { return v.ctx }

// ID returns the tape node of v, or ops.NoNode for a constant.
func (v Var) ID() ops.NodeID {
	if v.ctx == nil {
		return ops.NoNode
	}
	return v.id
}

// Adj returns the adjoint accumulated at v by the last reverse pass.
// Constants always report 0.
func (v Var) Adj() float64 {
	if v.ctx == nil {
		return 0
	}
	v.ctx.check(v)
	return v.ctx.adjs[v.id]
}

// Grad runs a reverse pass seeded at v. See Context.Grad.
func (v Var) Grad() {
	if v.ctx == nil {
		return
	}
	v.ctx.Grad(v)
}

// String formats the value, marking constants.
func (v Var) String() string {
	if v.ctx == nil {
		return fmt.Sprintf("%g(const)", v.val)
	}
	return fmt.Sprintf("%g(#%d)", v.val, v.id)
}

// owner returns the context that an operation on x and y records into,
// or nil when both are constants.
func owner(x, y Var) *Context {
	switch {
	case x.ctx == nil && y.ctx == nil:
		return nil
	case x.ctx == nil:
		y.ctx.check(y)
		return y.ctx
	case y.ctx == nil:
		x.ctx.check(x)
		return x.ctx
	case x.ctx != y.ctx:
		panic(fmt.Errorf("%w: %q and %q", ErrForeignVar, x.ctx.cfg.Name, y.ctx.cfg.Name))
	}
	x.ctx.check(x)
	x.ctx.check(y)
	return x.ctx
}

// unaryOp records val with partial dx with respect to x.
func (x Var) unaryOp(val, dx float64) Var {
	if x.ctx == nil {
		return Constant(val)
	}
	x.ctx.check(x)
	return x.ctx.unary(val, x.id, dx)
}

// binaryOp records val with partials dx and dy. A constant operand is
// dropped from the record so the node degrades to a unary one.
func (x Var) binaryOp(y Var, val, dx, dy float64) Var {
	c := owner(x, y)
	switch {
	case c == nil:
		return Constant(val)
	case x.ctx == nil:
		return c.unary(val, y.id, dy)
	case y.ctx == nil:
		return c.unary(val, x.id, dx)
	}
	return c.binary(val, x.id, y.id, dx, dy)
}

// Const returns a constant Var holding c. The receiver is ignored; the
// method exists so generic code can build constants of any scalar kind.
func (Var) Const(c float64) Var { return Constant(c) }

// Add returns x + y.
func (x Var) Add(y Var) Var { return x.binaryOp(y, x.val+y.val, 1, 1) }

// Sub returns x - y.
func (x Var) Sub(y Var) Var { return x.binaryOp(y, x.val-y.val, 1, -1) }

// Mul returns x * y.
func (x Var) Mul(y Var) Var { return x.binaryOp(y, x.val*y.val, y.val, x.val) }

// Div returns x / y.
func (x Var) Div(y Var) Var {
	q := x.val / y.val
	return x.binaryOp(y, q, 1/y.val, -q/y.val)
}

// Neg returns -x.
func (x Var) Neg() Var { return x.unaryOp(-x.val, -1) }

// AddConst returns x + c.
func (x Var) AddConst(c float64) Var { return x.unaryOp(x.val+c, 1) }

// MulConst returns x * c.
func (x Var) MulConst(c float64) Var { return x.unaryOp(x.val*c, c) }

// Comparisons read values only and never record a node.

func (x Var) Less(y Var) bool      { return x.val < y.val }
func (x Var) LessEq(y Var) bool    { return x.val <= y.val }
func (x Var) Greater(y Var) bool   { return x.val > y.val }
func (x Var) GreaterEq(y Var) bool { return x.val >= y.val }
func (x Var) Equal(y Var) bool     { return x.val == y.val }

// Values returns the forward values of vs.
func Values(vs []Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.val
	}
	return out
}
