// Package mix builds derivative functionals by composing forward-mode duals
// with the reverse-mode tape.
//
// Forward-over-reverse is the workhorse: inputs are Fvar[Var] whose value
// parts are tape leaves and whose tangents carry a direction. One forward
// evaluation yields f and the directional derivative ∇f·v as a Var; a
// reverse pass over that Var yields the Hessian-vector product ∇²f·v.
//
// Functionals that need a tape take a Context from a shared pool and reset
// it before returning, so callers never see tape state.
package mix

import (
	"github.com/born-ml/adcore/internal/autodiff"
	"github.com/born-ml/adcore/internal/fwd"
	"github.com/born-ml/adcore/internal/parallel"
	"github.com/born-ml/adcore/internal/prim"
	"github.com/born-ml/adcore/internal/scalar"
	"gonum.org/v1/gonum/mat"
)

// Kinds used by the functionals.
type (
	// Dual is a first-order forward-mode scalar.
	Dual = fwd.Fvar[scalar.Float]
	// Dual3 is a third-order forward-mode scalar.
	Dual3 = fwd.Fvar[fwd.Fvar[Dual]]
	// FvarVar is a forward-over-reverse scalar.
	FvarVar = fwd.Fvar[autodiff.Var]
)

var contexts = autodiff.NewContextPool(autodiff.DefaultConfig())

// Derivative returns f(x) and f′(x) from one forward sweep.
func Derivative(f func(Dual) Dual, x float64) (float64, float64) {
	y := f(fwd.Seed(scalar.Float(x)))
	return y.Value(), float64(y.D)
}

// Derivatives returns f(x) and its first three derivatives from one sweep of
// a third-order dual. Errors from f (domain errors) are returned as is.
func Derivatives(f func(Dual3) (Dual3, error), x float64) ([4]float64, error) {
	in := Dual3{
		Val: fwd.Fvar[Dual]{Val: Dual{Val: scalar.Float(x), D: 1}, D: Dual{Val: 1}},
		D:   fwd.Fvar[Dual]{Val: Dual{Val: 1}},
	}
	y, err := f(in)
	if err != nil {
		return [4]float64{}, err
	}
	return [4]float64{
		y.Value(),
		float64(y.Val.Val.D),
		float64(y.Val.D.D),
		float64(y.D.D.D),
	}, nil
}

// Gradient returns f(x) and ∇f(x) from one reverse sweep.
func Gradient(f func([]autodiff.Var) autodiff.Var, x []float64) (float64, []float64) {
	ctx := contexts.Get()
	defer contexts.Put(ctx)
	return autodiff.Gradient(ctx, f, x)
}

// GradientDotVector returns f(x) and ∇f(x)·v from one forward sweep with
// tangent v.
func GradientDotVector(f func([]Dual) Dual, x, v []float64) (float64, float64, error) {
	if err := prim.CheckMatchingSizes("gradient_dot_vector", "x", len(x), "v", len(v)); err != nil {
		return 0, 0, err
	}
	xs := make([]Dual, len(x))
	for i := range x {
		xs[i] = Dual{Val: scalar.Float(x[i]), D: scalar.Float(v[i])}
	}
	y := f(xs)
	return y.Value(), float64(y.D), nil
}

// HessianTimesVector returns f(x) and ∇²f(x)·v using one forward-over-reverse
// sweep.
func HessianTimesVector(f func([]FvarVar) FvarVar, x, v []float64) (float64, []float64, error) {
	if err := prim.CheckMatchingSizes("hessian_times_vector", "x", len(x), "v", len(v)); err != nil {
		return 0, nil, err
	}
	ctx := contexts.Get()
	defer contexts.Put(ctx)

	fx, _, hv := directional(ctx, f, x, func(i int) float64 { return v[i] })
	return fx, hv, nil
}

// Hessian returns f(x), ∇f(x) and ∇²f(x).
//
// Row i of the Hessian comes from one forward-over-reverse sweep in
// direction eᵢ, so the cost is n evaluations of f plus n reverse passes.
// The result is symmetrized from the upper triangle.
func Hessian(f func([]FvarVar) FvarVar, x []float64) (float64, []float64, *mat.SymDense) {
	n := len(x)
	if n == 0 {
		return f(nil).Value(), nil, nil
	}

	ctx := contexts.Get()
	defer contexts.Put(ctx)

	var fx float64
	grad := make([]float64, n)
	h := mat.NewSymDense(n, nil)
	for i := range n {
		var row []float64
		var dfi float64
		fx, dfi, row = directional(ctx, f, x, func(j int) float64 {
			if j == i {
				return 1
			}
			return 0
		})
		grad[i] = dfi
		for j := i; j < n; j++ {
			h.SetSym(i, j, row[j])
		}
	}
	return fx, grad, h
}

// directional evaluates f at x with tangent dir, runs a reverse pass from
// the tangent and returns f(x), ∇f(x)·dir and ∇(∇f·dir). ctx is reset.
func directional(ctx *autodiff.Context, f func([]FvarVar) FvarVar, x []float64, dir func(int) float64) (float64, float64, []float64) {
	defer ctx.Reset()
	xs := make([]FvarVar, len(x))
	leaves := make([]autodiff.Var, len(x))
	for i := range x {
		leaves[i] = ctx.NewVar(x[i])
		xs[i] = FvarVar{Val: leaves[i], D: autodiff.Constant(dir(i))}
	}
	y := f(xs)
	_, row := ctx.GradientOf(y.D, leaves)
	return y.Val.Value(), y.D.Value(), row
}

// Jacobian returns f(x) and the Jacobian ∂fᵢ/∂xⱼ of a vector function.
//
// Rows are split across workers by cfg. Each worker evaluates f once on its
// own Context and runs one reverse pass per row it owns, so f must be safe
// to call from several goroutines (no shared mutable state).
func Jacobian(f func([]autodiff.Var) []autodiff.Var, x []float64, cfg parallel.Config) ([]float64, *mat.Dense) {
	ctx := contexts.Get()
	xs := ctx.NewVars(x)
	fx := autodiff.Values(f(xs))
	contexts.Put(ctx)

	m, n := len(fx), len(x)
	if m == 0 || n == 0 {
		return fx, nil
	}

	type worker struct {
		ctx *autodiff.Context
		xs  []autodiff.Var
		ys  []autodiff.Var
	}
	workers := make([]worker, parallel.Workers(m, cfg))
	jac := mat.NewDense(m, n, nil)

	parallel.ForWorker(m, func(w, i int) {
		wk := &workers[w]
		if wk.ctx == nil {
			wk.ctx = contexts.Get()
			wk.xs = wk.ctx.NewVars(x)
			wk.ys = f(wk.xs)
		}
		_, row := wk.ctx.GradientOf(wk.ys[i], wk.xs)
		jac.SetRow(i, row)
	}, cfg)

	for _, wk := range workers {
		contexts.Put(wk.ctx)
	}
	return fx, jac
}
