package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/adcore/internal/autodiff/ops"
	"github.com/born-ml/adcore/internal/prim"
)

// Sum returns Σ xs[i] as a single n-ary node with unit partials.
// An empty or all-constant input yields a constant.
func Sum(xs []Var) Var {
	c := contextOf(xs)
	vals := Values(xs)
	if c == nil {
		return Constant(prim.Sum(vals))
	}
	ids := c.operandIDs(xs)
	partials := c.floats.Alloc(len(xs))
	for i := range partials {
		partials[i] = 1
	}
	return c.PushCustom(prim.Sum(vals), ops.NewPrecomputedNode(ids, partials))
}

// LogSumExp returns log Σ exp(xs[i]) as a single n-ary node. The partial
// with respect to xs[i] is softmax(xs)[i].
// An empty input yields the constant -Inf.
func LogSumExp(xs []Var) Var {
	if len(xs) == 0 {
		return Constant(math.Inf(-1))
	}
	c := contextOf(xs)
	vals := Values(xs)
	if c == nil {
		return Constant(prim.LogSumExpSlice(vals))
	}
	ids := c.operandIDs(xs)
	partials := c.floats.Alloc(len(xs))
	prim.Softmax(partials, vals)
	return c.PushCustom(prim.LogSumExpSlice(vals), ops.NewPrecomputedNode(ids, partials))
}

// operandIDs copies the node references of xs into the arena, NoNode for
// constants.
func (c *Context) operandIDs(xs []Var) []ops.NodeID {
	ids := c.ids.Alloc(len(xs))
	for i, x := range xs {
		if x.ctx == nil {
			ids[i] = ops.NoNode
			continue
		}
		if x.ctx != c {
			panic(fmt.Errorf("%w: operand %d on %q", ErrForeignVar, i, c.cfg.Name))
		}
		c.check(x)
		ids[i] = x.id
	}
	return ids
}
