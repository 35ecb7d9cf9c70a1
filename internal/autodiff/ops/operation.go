// Package ops defines the node capability of the reverse-mode tape and the
// operation nodes that need more than a fixed pair of partials.
//
// The tape stores simple unary and binary operations inline as precomputed
// partial derivatives. Everything else (dot products, n-ary reductions,
// user-defined operations) implements Chainable and is stored by reference.
//
// Supported nodes:
//   - DotNode: dot product (d(v1·v2)/dv1 = v2, d(v1·v2)/dv2 = v1)
//   - PrecomputedNode: any n-ary op whose partials are known at forward time
package ops

// NodeID indexes a node in a tape's contiguous store.
type NodeID int32

// NoNode marks an operand slot that holds a constant instead of a tape node.
const NoNode NodeID = -1

// Store is the view of the tape handed to a node during the reverse pass.
// Operand values are read-only; adjoints may only be accumulated into.
type Store interface {
	// Value returns the forward value of node id.
	Value(id NodeID) float64
	// Adjoint returns the adjoint accumulated so far at node id.
	Adjoint(id NodeID) float64
	// AddAdjoint adds d to the adjoint of node id.
	AddAdjoint(id NodeID, d float64)
}

// Chainable is the reverse-pass half of an operation node.
//
// Chain reads the adjoint of out (the node's own slot) and adds each
// operand's share into that operand's adjoint. It must never overwrite an
// adjoint and must only touch operands it references.
type Chainable interface {
	Chain(s Store, out NodeID)
}

// Operand is an immutable snapshot of a vector operand.
//
// Vals always holds the element values. IDs holds the tape node of each
// element for a differentiable operand (NoNode for constant elements) and is
// nil for a constant operand.
type Operand struct {
	IDs  []NodeID
	Vals []float64
}

// Len returns the operand length.
func (o Operand) Len() int { return len(o.Vals) }

// IsConstant reports whether no element of the operand is on the tape.
func (o Operand) IsConstant() bool { return o.IDs == nil }

// accumulate adds adj*scale[i] into the adjoint of every tape element of dst.
func accumulate(s Store, dst Operand, scale []float64, adj float64) {
	if dst.IDs == nil {
		return
	}
	for i, id := range dst.IDs {
		if id == NoNode {
			continue
		}
		s.AddAdjoint(id, adj*scale[i])
	}
}
