package ops

import "gonum.org/v1/gonum/floats"

// DotNode represents a dot product: output = Σ v1[i] * v2[i].
//
// Backward pass:
//   - d(v1·v2)/dv1[i] = v2[i], so adj(v1[i]) += adj * v2[i]
//   - d(v1·v2)/dv2[i] = v1[i], so adj(v2[i]) += adj * v1[i]
//
// A constant side is never updated. Both operands may share one snapshot
// when they were built from the same vector (x·x); each side still receives
// its own contribution, so the shared elements collect 2·x[i]·adj.
type DotNode struct {
	v1, v2 Operand
}

// NewDotNode creates a DotNode and returns it with its forward value.
// The operands must have equal length; callers check this before building
// snapshots so that no arena memory is spent on a failing call.
func NewDotNode(v1, v2 Operand) (*DotNode, float64) {
	return &DotNode{v1: v1, v2: v2}, floats.Dot(v1.Vals, v2.Vals)
}

// Chain propagates the output adjoint to both operands.
func (n *DotNode) Chain(s Store, out NodeID) {
	adj := s.Adjoint(out)
	accumulate(s, n.v1, n.v2.Vals, adj)
	accumulate(s, n.v2, n.v1.Vals, adj)
}

// Operands returns the two snapshots [v1, v2].
func (n *DotNode) Operands() (Operand, Operand) {
	return n.v1, n.v2
}
