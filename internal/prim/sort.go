package prim

import (
	"cmp"
	"slices"
)

// SortIndicesAsc returns the 0-based permutation that sorts xs ascending.
// Ties keep their original order.
func SortIndicesAsc(xs []float64) []int {
	return sortIndices(xs, func(a, b float64) int { return cmp.Compare(a, b) })
}

// SortIndicesDesc returns the 0-based permutation that sorts xs descending.
// Ties keep their original order.
func SortIndicesDesc(xs []float64) []int {
	return sortIndices(xs, func(a, b float64) int { return cmp.Compare(b, a) })
}

func sortIndices(xs []float64, order func(a, b float64) int) []int {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		return order(xs[i], xs[j])
	})
	return idx
}
