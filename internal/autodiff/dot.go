package autodiff

import (
	"fmt"

	"github.com/born-ml/adcore/internal/autodiff/ops"
	"github.com/born-ml/adcore/internal/prim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const dotFunction = "dot_product"

// Snapshot is an immutable copy of a vector operand taken at one point in a
// session. Its buffers live in the context's arena.
//
// Passing the same Snapshot to several DotSnapshots calls makes the resulting
// nodes share one buffer instead of copying the vector for each. Later writes
// to the slice the Snapshot was taken from are not observed.
//
// A Snapshot becomes stale on the next Reset or Rewind of its context.
type Snapshot struct {
	ctx   *Context
	epoch uint32
	op    ops.Operand
}

// Len returns the number of elements in s.
func (s Snapshot) Len() int { return s.op.Len() }

// IsConstant reports whether no element of s is on a tape.
func (s Snapshot) IsConstant() bool { return s.op.IsConstant() }

// Snapshot copies the values and node references of vs into the arena.
// Constant elements are allowed and are never updated by a reverse pass.
func (c *Context) Snapshot(vs []Var) Snapshot {
	ids := c.operandIDs(vs)
	vals := c.floats.Alloc(len(vs))
	for i, v := range vs {
		vals[i] = v.val
	}
	return Snapshot{ctx: c, epoch: c.epoch, op: ops.Operand{IDs: ids, Vals: vals}}
}

// SnapshotConst copies xs into the arena as a constant operand.
func (c *Context) SnapshotConst(xs []float64) Snapshot {
	vals := c.floats.Alloc(len(xs))
	copy(vals, xs)
	return Snapshot{ctx: c, epoch: c.epoch, op: ops.Operand{Vals: vals}}
}

func (s Snapshot) check() {
	if s.ctx != nil && s.epoch != s.ctx.epoch {
		panic(fmt.Errorf("%w: snapshot of %d elements from epoch %d used at epoch %d",
			ErrStaleVar, s.Len(), s.epoch, s.ctx.epoch))
	}
}

// DotSnapshots returns s1·s2, recording one dot-product node unless both
// snapshots are constant.
func DotSnapshots(s1, s2 Snapshot) (Var, error) {
	if err := prim.CheckMatchingSizes(dotFunction, "v1", s1.Len(), "v2", s2.Len()); err != nil {
		return Var{}, err
	}
	s1.check()
	s2.check()

	c := s1.ctx
	if c == nil {
		c = s2.ctx
	} else if s2.ctx != nil && s2.ctx != c {
		panic(fmt.Errorf("%w: dot product of snapshots from %q and %q",
			ErrForeignVar, s1.ctx.cfg.Name, s2.ctx.cfg.Name))
	}

	node, val := ops.NewDotNode(s1.op, s2.op)
	if c == nil || (s1.IsConstant() && s2.IsConstant()) {
		return Constant(val), nil
	}
	return c.PushCustom(val, node), nil
}

// DotVV returns v1·v2 for two vectors of Vars.
//
// Sizes are checked before anything is allocated; on error the tape is left
// untouched. Passing the same slice twice (x·x) takes a single snapshot that
// both sides of the node read.
func DotVV(v1, v2 []Var) (Var, error) {
	if err := prim.CheckMatchingSizes(dotFunction, "v1", len(v1), "v2", len(v2)); err != nil {
		return Var{}, err
	}
	c := contextOf(v1, v2)
	if c == nil {
		return Constant(floats.Dot(Values(v1), Values(v2))), nil
	}
	s1 := c.Snapshot(v1)
	s2 := s1
	if !sameSlice(v1, v2) {
		s2 = c.Snapshot(v2)
	}
	return DotSnapshots(s1, s2)
}

// DotVD returns v1·v2 where only v1 is differentiable.
func DotVD(v1 []Var, v2 []float64) (Var, error) {
	if err := prim.CheckMatchingSizes(dotFunction, "v1", len(v1), "v2", len(v2)); err != nil {
		return Var{}, err
	}
	c := contextOf(v1)
	if c == nil {
		return Constant(floats.Dot(Values(v1), v2)), nil
	}
	return DotSnapshots(c.Snapshot(v1), c.SnapshotConst(v2))
}

// DotDV returns v1·v2 where only v2 is differentiable.
func DotDV(v1 []float64, v2 []Var) (Var, error) {
	if err := prim.CheckMatchingSizes(dotFunction, "v1", len(v1), "v2", len(v2)); err != nil {
		return Var{}, err
	}
	c := contextOf(v2)
	if c == nil {
		return Constant(floats.Dot(v1, Values(v2))), nil
	}
	return DotSnapshots(c.SnapshotConst(v1), c.Snapshot(v2))
}

// DotMatrix returns the dot product of two row or column vectors of Vars.
// A row and a column of equal length may be mixed.
func DotMatrix(m1, m2 *VarMatrix) (Var, error) {
	if err := checkVectorShape(m1, "v1"); err != nil {
		return Var{}, err
	}
	if err := checkVectorShape(m2, "v2"); err != nil {
		return Var{}, err
	}
	return DotVV(m1.vars, m2.vars)
}

// DotMatrixConst returns the dot product of a row or column vector of Vars
// with any constant gonum vector-shaped matrix.
func DotMatrixConst(m1 *VarMatrix, m2 mat.Matrix) (Var, error) {
	if err := checkVectorShape(m1, "v1"); err != nil {
		return Var{}, err
	}
	if err := checkVectorShape(m2, "v2"); err != nil {
		return Var{}, err
	}
	r, c := m2.Dims()
	if err := prim.CheckMatchingSizes(dotFunction, "v1", len(m1.vars), "v2", r*c); err != nil {
		return Var{}, err
	}
	return DotVD(m1.vars, vectorValues(m2))
}

func checkVectorShape(m mat.Matrix, name string) error {
	r, c := m.Dims()
	return prim.CheckVector(dotFunction, name, r, c)
}

// vectorValues flattens a single-row or single-column matrix.
func vectorValues(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := range r {
		for j := range c {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// contextOf returns the context of the first non-constant element, or nil.
func contextOf(vss ...[]Var) *Context {
	for _, vs := range vss {
		for _, v := range vs {
			if v.ctx != nil {
				return v.ctx
			}
		}
	}
	return nil
}

func sameSlice(a, b []Var) bool {
	return len(a) > 0 && len(a) == len(b) && &a[0] == &b[0]
}
