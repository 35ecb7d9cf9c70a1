package autodiff

import (
	"fmt"

	"github.com/born-ml/adcore/internal/metrics"
)

// Grad computes the adjoint of every node with respect to out.
//
// Algorithm:
//  1. Zero every adjoint on the tape
//  2. Seed adj(out) = 1
//  3. Walk nodes from out back to the first node, chaining each one; every
//     chain step adds into its operands' adjoints, never overwrites
//
// Creation order is a valid topological order (an operand always exists
// before any node that references it), so when a node is visited all of its
// consumers have already contributed. Nodes recorded after out cannot be its
// ancestors and are not visited.
//
// Grad may be called repeatedly for different outputs on the same tape.
func (c *Context) Grad(out Var) {
	c.GradSeed(out, 1)
}

// GradSeed is Grad with adj(out) seeded to seed instead of 1.
func (c *Context) GradSeed(out Var, seed float64) {
	c.ZeroAdjoints()
	if out.ctx == nil {
		return
	}
	if out.ctx != c {
		panic(fmt.Errorf("%w: gradient of a var from %q requested on %q",
			ErrForeignVar, out.ctx.cfg.Name, c.cfg.Name))
	}
	c.check(out)

	c.adjs[out.id] = seed
	for id := out.id; id >= 0; id-- {
		c.chain(id)
	}

	metrics.ObserveGradient()
	c.log.Debug().
		Int32("output", int32(out.id)).
		Int("nodes", len(c.vals)).
		Msg("reverse pass")
}

// ZeroAdjoints clears every adjoint on the tape.
func (c *Context) ZeroAdjoints() {
	clear(c.adjs)
}

// GradientOf runs a reverse pass from out and returns its value together
// with ∂out/∂wrt[i] for every input. Constant inputs get 0.
func (c *Context) GradientOf(out Var, wrt []Var) (float64, []float64) {
	c.Grad(out)
	g := make([]float64, len(wrt))
	for i, v := range wrt {
		if v.ctx != nil && v.ctx != c {
			panic(fmt.Errorf("%w: input %d", ErrForeignVar, i))
		}
		g[i] = v.Adj()
	}
	return out.val, g
}

// Gradient evaluates f at x on c and returns f(x) and ∇f(x).
//
// The context is reset before returning, so f must not keep Vars around.
// The gradient slice is freshly allocated and owned by the caller.
func Gradient(c *Context, f func(x []Var) Var, x []float64) (float64, []float64) {
	defer c.Reset()
	xs := c.NewVars(x)
	return c.GradientOf(f(xs), xs)
}
