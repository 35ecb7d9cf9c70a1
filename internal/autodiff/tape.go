package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/adcore/internal/autodiff/ops"
)

// recordKind tags the payload of a tape record.
type recordKind uint8

const (
	kindLeaf   recordKind = iota // input or constant-seeded node; nothing to propagate
	kindUnary                    // adj[a] += adj * da
	kindBinary                   // adj[a] += adj * da; adj[b] += adj * db
	kindCustom                   // node.Chain(ctx, self)
)

// record is one entry of the tape.
//
// Elementwise operations store their operands and partial derivatives
// inline, so recording them allocates nothing beyond the node store itself.
// Anything else carries an ops.Chainable.
type record struct {
	kind   recordKind
	a, b   ops.NodeID
	da, db float64
	node   ops.Chainable
}

// push appends a node holding val and returns a handle to it.
// Operands referenced by r must already be on the tape.
func (c *Context) push(val float64, r record) Var {
	if len(c.vals) >= math.MaxInt32 {
		panic(fmt.Sprintf("autodiff: tape of context %q exceeds %d nodes", c.cfg.Name, math.MaxInt32))
	}
	id := ops.NodeID(len(c.vals))
	c.vals = append(c.vals, val)
	c.adjs = append(c.adjs, 0)
	c.recs = append(c.recs, r)
	c.epochs = append(c.epochs, c.epoch)
	return Var{ctx: c, id: id, epoch: c.epoch, val: val}
}

// NewVar records an independent variable (a leaf) with value x.
func (c *Context) NewVar(x float64) Var {
	return c.push(x, record{kind: kindLeaf})
}

// NewVars records one leaf per element of xs.
func (c *Context) NewVars(xs []float64) []Var {
	out := make([]Var, len(xs))
	for i, x := range xs {
		out[i] = c.NewVar(x)
	}
	return out
}

// PushCustom records a node with forward value val whose reverse pass is
// performed by n. Every operand n references must already be on this tape.
//
// This is the extension point for operations that do not fit the inline
// unary/binary form.
func (c *Context) PushCustom(val float64, n ops.Chainable) Var {
	return c.push(val, record{kind: kindCustom, a: ops.NoNode, b: ops.NoNode, node: n})
}

func (c *Context) unary(val float64, a ops.NodeID, da float64) Var {
	return c.push(val, record{kind: kindUnary, a: a, b: ops.NoNode, da: da})
}

func (c *Context) binary(val float64, a, b ops.NodeID, da, db float64) Var {
	return c.push(val, record{kind: kindBinary, a: a, b: b, da: da, db: db})
}

// chain runs the reverse step of node id.
func (c *Context) chain(id ops.NodeID) {
	r := &c.recs[id]
	switch r.kind {
	case kindUnary:
		c.adjs[r.a] += c.adjs[id] * r.da
	case kindBinary:
		adj := c.adjs[id]
		c.adjs[r.a] += adj * r.da
		c.adjs[r.b] += adj * r.db
	case kindCustom:
		r.node.Chain(c, id)
	}
}
