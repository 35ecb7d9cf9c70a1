// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package admath provides differentiable math functions that work with every
// scalar kind: plain Float, reverse-mode autodiff.Var, forward-mode Fvar and
// any nesting of them.
//
// Each function is written once against the Number contract. The kind's own
// method supplies the value and the analytic derivative, so the same call
// records one tape node for a Var and propagates a tangent for an Fvar.
//
// Example:
//
//	ctx := autodiff.New(autodiff.DefaultConfig())
//	x := ctx.NewVar(0.5)
//	y, err := admath.Atanh(x) // domain error before anything is recorded
//	if err != nil {
//	    return err
//	}
//	ctx.Grad(y)
package admath

import (
	"math"

	"github.com/born-ml/adcore/internal/autodiff"
	"github.com/born-ml/adcore/internal/fwd"
	"github.com/born-ml/adcore/internal/prim"
	"github.com/born-ml/adcore/internal/scalar"
)

// Number is the arithmetic contract shared by every scalar kind.
type Number[T any] = scalar.Number[T]

// Float is the plain-numeric kind.
type Float = scalar.Float

// Fvar is a forward-mode dual over any Number kind.
type Fvar[T Number[T]] = fwd.Fvar[T]

// Errors returned by the functions in this package.
var (
	ErrDomain       = prim.ErrDomain
	ErrSizeMismatch = prim.ErrSizeMismatch
	ErrNotVector    = prim.ErrNotVector
)

// Asinh returns the inverse hyperbolic sine of x.
func Asinh[T Number[T]](x T) T { return x.Asinh() }

// Atanh returns the inverse hyperbolic tangent of x, or an error wrapping
// ErrDomain when x lies outside [-1, 1]. NaN passes through.
func Atanh[T Number[T]](x T) (T, error) { return x.Atanh() }

func Exp[T Number[T]](x T) T            { return x.Exp() }
func Log[T Number[T]](x T) T            { return x.Log() }
func Sqrt[T Number[T]](x T) T           { return x.Sqrt() }
func Square[T Number[T]](x T) T         { return x.Square() }
func Inv[T Number[T]](x T) T            { return x.Inv() }
func Sin[T Number[T]](x T) T            { return x.Sin() }
func Cos[T Number[T]](x T) T            { return x.Cos() }
func Tanh[T Number[T]](x T) T           { return x.Tanh() }
func Pow[T Number[T]](x T, p float64) T { return x.Pow(p) }

// AsinhVec applies Asinh elementwise.
func AsinhVec[T Number[T]](xs []T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = x.Asinh()
	}
	return out
}

// AtanhVec applies Atanh elementwise. It checks every element before
// evaluating any, so on error nothing has been recorded.
func AtanhVec[T Number[T]](xs []T) ([]T, error) {
	for _, x := range xs {
		if err := checkAtanh(x.Value()); err != nil {
			return nil, err
		}
	}
	out := make([]T, len(xs))
	for i, x := range xs {
		y, err := x.Atanh()
		if err != nil {
			return nil, err
		}
		out[i] = y
	}
	return out, nil
}

func checkAtanh(v float64) error {
	_, err := prim.Atanh(v)
	return err
}

// Sum returns Σ xs[i]. For Vars it records a single n-ary node.
func Sum[T Number[T]](xs []T) T {
	switch v := any(xs).(type) {
	case []autodiff.Var:
		return any(autodiff.Sum(v)).(T)
	case []Float:
		return any(Float(prim.Sum(floats(v)))).(T)
	}
	var zero T
	acc := zero.Const(0)
	for _, x := range xs {
		acc = acc.Add(x)
	}
	return acc
}

// LogSumExp returns log Σ exp(xs[i]) without overflow. For Vars it records
// a single n-ary node. An empty input yields -Inf.
func LogSumExp[T Number[T]](xs []T) T {
	switch v := any(xs).(type) {
	case []autodiff.Var:
		return any(autodiff.LogSumExp(v)).(T)
	case []Float:
		return any(Float(prim.LogSumExpSlice(floats(v)))).(T)
	}
	var zero T
	if len(xs) == 0 {
		return zero.Const(math.Inf(-1))
	}
	m := math.Inf(-1)
	for _, x := range xs {
		m = max(m, x.Value())
	}
	shift := !math.IsInf(m, 0) && !math.IsNaN(m)
	acc := zero.Const(0)
	for _, x := range xs {
		if shift {
			x = x.AddConst(-m)
		}
		acc = acc.Add(x.Exp())
	}
	if !shift {
		// Non-finite terms carry their NaN or Inf into the tangents.
		return acc.Log()
	}
	return acc.Log().AddConst(m)
}

// LogSumExp2 returns log(exp(a) + exp(b)) without overflow.
func LogSumExp2[T Number[T]](a, b T) T {
	return LogSumExp([]T{a, b})
}

// Dot returns Σ a[i]·b[i], or an error wrapping ErrSizeMismatch when the
// lengths differ. For Vars it records a single dot-product node.
func Dot[T Number[T]](a, b []T) (T, error) {
	var zero T
	if err := prim.CheckMatchingSizes("dot_product", "v1", len(a), "v2", len(b)); err != nil {
		return zero, err
	}
	switch v := any(a).(type) {
	case []autodiff.Var:
		d, err := autodiff.DotVV(v, any(b).([]autodiff.Var))
		return any(d).(T), err
	case []Float:
		d, err := prim.Dot(floats(v), floats(any(b).([]Float)))
		return any(Float(d)).(T), err
	}
	acc := zero.Const(0)
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc, nil
}

func floats(xs []Float) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
