package ops

// PrecomputedNode is an n-ary node whose partial derivatives were computed
// during the forward pass: adj(x[i]) += adj * partials[i].
//
// Sum uses all-ones partials; log-sum-exp uses the softmax of its inputs.
type PrecomputedNode struct {
	ids      []NodeID
	partials []float64
}

// NewPrecomputedNode creates a node over ids with the given partials.
// ids and partials must have equal length.
func NewPrecomputedNode(ids []NodeID, partials []float64) *PrecomputedNode {
	return &PrecomputedNode{ids: ids, partials: partials}
}

// Chain propagates the output adjoint through the stored partials.
func (n *PrecomputedNode) Chain(s Store, out NodeID) {
	accumulate(s, Operand{IDs: n.ids}, n.partials, s.Adjoint(out))
}

// Len returns the number of operands.
func (n *PrecomputedNode) Len() int { return len(n.ids) }
