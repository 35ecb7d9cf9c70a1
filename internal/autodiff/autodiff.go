// Package autodiff implements reverse-mode automatic differentiation over
// scalars using an explicit tape.
//
// A Context owns the tape: a contiguous store of nodes (value, adjoint and a
// record of how to propagate the adjoint) plus the arenas that hold operand
// snapshots. Arithmetic on Vars appends nodes to the Context that owns them;
// Grad walks the tape in reverse creation order and accumulates adjoints.
//
// Architecture:
//   - Context: session state (tape + arenas), reset in bulk
//   - Var: copyable handle (value + node index + epoch)
//   - record: tagged variant; unary/binary partials inline, anything else
//     as an ops.Chainable (dot product, n-ary reductions)
//   - Grad: reverse walk from the output node
//
// Usage:
//
//	ctx := autodiff.New(autodiff.DefaultConfig())
//	x := ctx.NewVar(2.0)
//	y := x.Mul(x) // y = x²
//
//	ctx.Grad(y)
//	fmt.Println(x.Adj()) // dy/dx = 2x = 4.0
//
//	ctx.Reset() // x and y must not be used after this
//
// Indices instead of pointers tie nodes together, so a Var that outlives its
// session is detected (ErrStaleVar panic) rather than reading reused memory.
package autodiff
