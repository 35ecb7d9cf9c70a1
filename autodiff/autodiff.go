// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation of scalar functions.
//
// Reverse mode records every operation on Vars into an explicit Context and
// computes all partial derivatives of one output in a single reverse pass.
// Forward-mode duals (Fvar) nest over Vars or over themselves to give
// higher-order and mixed derivatives.
//
// Example:
//
//	import "github.com/born-ml/adcore/autodiff"
//
//	func main() {
//	    ctx := autodiff.New(autodiff.DefaultConfig())
//	    x := ctx.NewVar(1.5)
//	    y := x.Mul(x).Asinh() // recorded on ctx
//
//	    ctx.Grad(y)
//	    fmt.Println(x.Adj())  // dy/dx
//
//	    ctx.Reset()           // end the session; x and y are now stale
//	}
//
// A Context must be used by one goroutine at a time. Use one Context per
// worker, for example through a ContextPool.
package autodiff

import (
	"github.com/born-ml/adcore/internal/autodiff"
	"github.com/born-ml/adcore/internal/fwd"
	"github.com/born-ml/adcore/internal/mix"
	"github.com/born-ml/adcore/internal/parallel"
	"github.com/born-ml/adcore/internal/scalar"
	"gonum.org/v1/gonum/mat"
)

// Context is one differentiation session: a tape plus its arenas.
type Context = autodiff.Context

// Config controls a Context.
type Config = autodiff.Config

// Mark is a saved tape position for Context.Rewind.
type Mark = autodiff.Mark

// Var is a reverse-mode scalar.
type Var = autodiff.Var

// Snapshot is an immutable vector operand that several dot products may share.
type Snapshot = autodiff.Snapshot

// VarMatrix is a dense matrix of Vars implementing gonum's mat.Matrix.
type VarMatrix = autodiff.VarMatrix

// ContextPool recycles Contexts across goroutines.
type ContextPool = autodiff.ContextPool

// Fvar is a forward-mode dual number over any Number kind.
type Fvar[T Number[T]] = fwd.Fvar[T]

// Number is the arithmetic contract shared by every scalar kind.
type Number[T any] = scalar.Number[T]

// Float is the plain-numeric scalar kind.
type Float = scalar.Float

// ParallelConfig controls the worker fan-out of Jacobian.
type ParallelConfig = parallel.Config

// Discipline violations raised as panics.
var (
	ErrStaleVar   = autodiff.ErrStaleVar
	ErrForeignVar = autodiff.ErrForeignVar
)

// New creates an empty Context.
func New(cfg Config) *Context { return autodiff.New(cfg) }

// DefaultConfig returns a Context configuration with a silent logger.
func DefaultConfig() Config { return autodiff.DefaultConfig() }

// NewContextPool creates a pool of Contexts built from cfg.
func NewContextPool(cfg Config) *ContextPool { return autodiff.NewContextPool(cfg) }

// DefaultParallelConfig returns a fan-out sized to the CPU count.
func DefaultParallelConfig() ParallelConfig { return parallel.DefaultConfig() }

// Constant returns a Var that is not on any tape.
func Constant(x float64) Var { return autodiff.Constant(x) }

// NewVarMatrix creates a rows×cols matrix of Vars.
func NewVarMatrix(rows, cols int, vars []Var) *VarMatrix {
	return autodiff.NewVarMatrix(rows, cols, vars)
}

// Dot products. Length mismatches return an error wrapping ErrSizeMismatch
// and non-vector matrices one wrapping ErrNotVector; nothing is recorded.

func DotVV(v1, v2 []Var) (Var, error)           { return autodiff.DotVV(v1, v2) }
func DotVD(v1 []Var, v2 []float64) (Var, error) { return autodiff.DotVD(v1, v2) }
func DotDV(v1 []float64, v2 []Var) (Var, error) { return autodiff.DotDV(v1, v2) }
func DotSnapshots(s1, s2 Snapshot) (Var, error) { return autodiff.DotSnapshots(s1, s2) }

// DotMatrix returns the dot product of two row or column vectors of Vars.
func DotMatrix(m1, m2 *VarMatrix) (Var, error) { return autodiff.DotMatrix(m1, m2) }

// DotMatrixConst returns the dot product of a vector of Vars and a constant
// gonum vector.
func DotMatrixConst(m1 *VarMatrix, m2 mat.Matrix) (Var, error) {
	return autodiff.DotMatrixConst(m1, m2)
}

// Sum returns Σ xs[i] as one tape node.
func Sum(xs []Var) Var { return autodiff.Sum(xs) }

// LogSumExp returns log Σ exp(xs[i]) as one tape node.
func LogSumExp(xs []Var) Var { return autodiff.LogSumExp(xs) }

// Gradient evaluates f at x on ctx and returns f(x) and ∇f(x). ctx is reset.
func Gradient(ctx *Context, f func([]Var) Var, x []float64) (float64, []float64) {
	return autodiff.Gradient(ctx, f, x)
}

// Derivative returns f(x) and f′(x).
func Derivative(f func(Fvar[Float]) Fvar[Float], x float64) (float64, float64) {
	return mix.Derivative(f, x)
}

// Derivatives returns f(x) and its first three derivatives from one sweep of
// a third-order dual.
func Derivatives(f func(Fvar[Fvar[Fvar[Float]]]) (Fvar[Fvar[Fvar[Float]]], error), x float64) ([4]float64, error) {
	return mix.Derivatives(f, x)
}

// GradientDotVector returns f(x) and ∇f(x)·v.
func GradientDotVector(f func([]Fvar[Float]) Fvar[Float], x, v []float64) (float64, float64, error) {
	return mix.GradientDotVector(f, x, v)
}

// Hessian returns f(x), ∇f(x) and ∇²f(x) by forward-over-reverse sweeps.
func Hessian(f func([]Fvar[Var]) Fvar[Var], x []float64) (float64, []float64, *mat.SymDense) {
	return mix.Hessian(f, x)
}

// HessianTimesVector returns f(x) and ∇²f(x)·v.
func HessianTimesVector(f func([]Fvar[Var]) Fvar[Var], x, v []float64) (float64, []float64, error) {
	return mix.HessianTimesVector(f, x, v)
}

// Jacobian returns f(x) and its Jacobian, one row per output, rows split
// across workers by cfg.
func Jacobian(f func([]Var) []Var, x []float64, cfg ParallelConfig) ([]float64, *mat.Dense) {
	return mix.Jacobian(f, x, cfg)
}
