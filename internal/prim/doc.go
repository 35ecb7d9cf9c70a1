// Package prim holds the plain-numeric layer: value-only implementations of
// the differentiable functions, the argument checks shared by every scalar
// kind, and the sentinel errors those checks report.
//
// Nothing in this package touches a tape. The reverse-mode and forward-mode
// layers call into prim for values and domain checks before they record
// anything, so a failed check never leaves a partial node behind.
package prim
