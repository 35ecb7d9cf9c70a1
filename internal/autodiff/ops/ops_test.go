package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mapStore is a minimal Store backed by slices, used to drive nodes
// without a full tape.
type mapStore struct {
	vals []float64
	adjs []float64
}

func newMapStore(vals ...float64) *mapStore {
	return &mapStore{vals: vals, adjs: make([]float64, len(vals))}
}

func (m *mapStore) Value(id NodeID) float64         { return m.vals[id] }
func (m *mapStore) Adjoint(id NodeID) float64       { return m.adjs[id] }
func (m *mapStore) AddAdjoint(id NodeID, d float64) { m.adjs[id] += d }

func TestDotNode_BothVariable(t *testing.T) {
	// nodes 0..2 = v1, 3..5 = v2, 6 = output
	s := newMapStore(1, 2, 3, 4, 5, 6, 0)
	v1 := Operand{IDs: []NodeID{0, 1, 2}, Vals: []float64{1, 2, 3}}
	v2 := Operand{IDs: []NodeID{3, 4, 5}, Vals: []float64{4, 5, 6}}

	node, val := NewDotNode(v1, v2)
	assert.Equal(t, 32.0, val)

	s.adjs[6] = 2
	node.Chain(s, 6)

	assert.Equal(t, []float64{8, 10, 12, 2, 4, 6, 2}, s.adjs)
}

func TestDotNode_ConstantSide(t *testing.T) {
	s := newMapStore(1, 2, 0)
	v1 := Operand{IDs: []NodeID{0, 1}, Vals: []float64{1, 2}}
	v2 := Operand{Vals: []float64{10, 20}}

	node, val := NewDotNode(v1, v2)
	assert.Equal(t, 50.0, val)
	assert.True(t, v2.IsConstant())

	s.adjs[2] = 1
	node.Chain(s, 2)
	assert.Equal(t, []float64{10, 20, 1}, s.adjs)
}

func TestDotNode_ConstantElementsSkipped(t *testing.T) {
	s := newMapStore(1, 0)
	v1 := Operand{IDs: []NodeID{0, NoNode}, Vals: []float64{1, 5}}
	v2 := Operand{Vals: []float64{3, 4}}

	node, val := NewDotNode(v1, v2)
	assert.Equal(t, 23.0, val)

	s.adjs[1] = 1
	node.Chain(s, 1)
	assert.Equal(t, []float64{3, 1}, s.adjs)
}

func TestDotNode_SharedSnapshotAccumulatesTwice(t *testing.T) {
	s := newMapStore(3, 0)
	v := Operand{IDs: []NodeID{0}, Vals: []float64{3}}

	node, val := NewDotNode(v, v)
	assert.Equal(t, 9.0, val)

	s.adjs[1] = 1
	node.Chain(s, 1)
	assert.Equal(t, 6.0, s.adjs[0], "d(x·x)/dx = 2x")
}

func TestPrecomputedNode(t *testing.T) {
	s := newMapStore(1, 2, 0)
	node := NewPrecomputedNode([]NodeID{0, NoNode, 1}, []float64{0.5, 9, -1})
	assert.Equal(t, 3, node.Len())

	s.adjs[2] = 4
	node.Chain(s, 2)
	assert.Equal(t, []float64{2, -4, 4}, s.adjs)
}
