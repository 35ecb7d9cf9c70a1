package admath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/adcore/admath"
	"github.com/born-ml/adcore/autodiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	dual    = admath.Fvar[admath.Float]
	dualVar = admath.Fvar[autodiff.Var]
)

func newContext() *autodiff.Context {
	cfg := autodiff.DefaultConfig()
	cfg.Name = "admath"
	return autodiff.New(cfg)
}

func TestAsinh_AllKinds(t *testing.T) {
	for _, x := range []float64{1.3, -2.6, 0, -0.2, 3} {
		want := math.Asinh(x)
		dwant := 1 / math.Sqrt(x*x+1)

		assert.InDelta(t, want, admath.Asinh(admath.Float(x)).Value(), 1e-12, "Float x=%v", x)

		ctx := newContext()
		v := ctx.NewVar(x)
		y := admath.Asinh(v)
		assert.InDelta(t, want, y.Value(), 1e-12, "Var x=%v", x)
		ctx.Grad(y)
		assert.InDelta(t, dwant, v.Adj(), 1e-12, "Var x=%v", x)

		d := admath.Asinh(dual{Val: admath.Float(x), D: 1})
		assert.InDelta(t, want, d.Value(), 1e-12, "Fvar x=%v", x)
		assert.InDelta(t, dwant, float64(d.D), 1e-12, "Fvar x=%v", x)

		ctx.Reset()
		w := ctx.NewVar(x)
		fv := admath.Asinh(dualVar{Val: w, D: autodiff.Constant(1)})
		assert.InDelta(t, want, fv.Value(), 1e-12, "Fvar[Var] x=%v", x)
		assert.InDelta(t, dwant, fv.D.Value(), 1e-12, "Fvar[Var] x=%v", x)
		ctx.Grad(fv.D)
		assert.InDelta(t, -x/math.Pow(x*x+1, 1.5), w.Adj(), 1e-12, "Fvar[Var] x=%v", x)
	}
}

func TestAtanh_AllKinds(t *testing.T) {
	x := 0.3
	want := math.Atanh(x)
	dwant := 1 / (1 - x*x)

	f, err := admath.Atanh(admath.Float(x))
	require.NoError(t, err)
	assert.InDelta(t, want, f.Value(), 1e-12)

	ctx := newContext()
	v := ctx.NewVar(x)
	y, err := admath.Atanh(v)
	require.NoError(t, err)
	ctx.Grad(y)
	assert.InDelta(t, dwant, v.Adj(), 1e-12)

	d, err := admath.Atanh(dual{Val: admath.Float(x), D: 1})
	require.NoError(t, err)
	assert.InDelta(t, dwant, float64(d.D), 1e-12)
}

func TestAtanh_DomainError(t *testing.T) {
	for _, x := range []float64{1.5, -1.5, 72.3, -10, 20} {
		_, err := admath.Atanh(admath.Float(x))
		assert.ErrorIs(t, err, admath.ErrDomain, "Float x=%v", x)

		ctx := newContext()
		v := ctx.NewVar(x)
		before := ctx.Len()
		_, err = admath.Atanh(v)
		assert.ErrorIs(t, err, admath.ErrDomain, "Var x=%v", x)
		_, err = admath.Atanh(dualVar{Val: v, D: autodiff.Constant(1)})
		assert.ErrorIs(t, err, admath.ErrDomain, "Fvar[Var] x=%v", x)
		assert.Equal(t, before, ctx.Len(), "failed atanh records nothing")

		_, err = admath.Atanh(dual{Val: admath.Float(x), D: 1})
		assert.True(t, errors.Is(err, admath.ErrDomain), "Fvar x=%v", x)
	}
}

func TestElementary_Float(t *testing.T) {
	x := admath.Float(0.7)
	assert.InDelta(t, math.Exp(0.7), admath.Exp(x).Value(), 1e-15)
	assert.InDelta(t, math.Log(0.7), admath.Log(x).Value(), 1e-15)
	assert.InDelta(t, math.Sqrt(0.7), admath.Sqrt(x).Value(), 1e-15)
	assert.InDelta(t, 0.49, admath.Square(x).Value(), 1e-15)
	assert.InDelta(t, 1/0.7, admath.Inv(x).Value(), 1e-15)
	assert.InDelta(t, math.Sin(0.7), admath.Sin(x).Value(), 1e-15)
	assert.InDelta(t, math.Cos(0.7), admath.Cos(x).Value(), 1e-15)
	assert.InDelta(t, math.Tanh(0.7), admath.Tanh(x).Value(), 1e-15)
	assert.InDelta(t, math.Pow(0.7, 2.5), admath.Pow(x, 2.5).Value(), 1e-15)
}

func TestVec(t *testing.T) {
	xs := []float64{0.1, -0.4, 0.9}

	ctx := newContext()
	vs := ctx.NewVars(xs)
	ys := admath.AsinhVec(vs)
	require.Len(t, ys, 3)
	for i, y := range ys {
		assert.InDelta(t, math.Asinh(xs[i]), y.Value(), 1e-12)
	}

	zs, err := admath.AtanhVec(vs)
	require.NoError(t, err)
	for i, z := range zs {
		assert.InDelta(t, math.Atanh(xs[i]), z.Value(), 1e-12)
	}

	bad := ctx.NewVars([]float64{0.2, 1.5, 0.3})
	before := ctx.Len()
	_, err = admath.AtanhVec(bad)
	assert.ErrorIs(t, err, admath.ErrDomain)
	assert.Equal(t, before, ctx.Len(), "no element recorded when any is out of domain")
}

func TestSum_Dispatch(t *testing.T) {
	xs := []float64{1, 2, 3.5}

	assert.Equal(t, 6.5, admath.Sum([]admath.Float{1, 2, 3.5}).Value())

	ctx := newContext()
	vs := ctx.NewVars(xs)
	before := ctx.Len()
	s := admath.Sum(vs)
	assert.Equal(t, 6.5, s.Value())
	assert.Equal(t, before+1, ctx.Len(), "Var sum is one node")
	ctx.Grad(s)
	for _, v := range vs {
		assert.Equal(t, 1.0, v.Adj())
	}

	ds := admath.Sum([]dual{{Val: 1, D: 1}, {Val: 2, D: 3}})
	assert.Equal(t, 3.0, ds.Value())
	assert.Equal(t, admath.Float(4), ds.D)

	assert.Equal(t, 0.0, admath.Sum[dual](nil).Value())
}

func TestLogSumExp_Dispatch(t *testing.T) {
	xs := []float64{1000, 1000.5, 999}
	m := 1000.5
	want := m + math.Log(math.Exp(1000-m)+1+math.Exp(999-m))

	got := admath.LogSumExp(scalarFloats(xs))
	assert.InDelta(t, want, got.Value(), 1e-9, "no overflow")

	ctx := newContext()
	vs := ctx.NewVars(xs)
	before := ctx.Len()
	y := admath.LogSumExp(vs)
	assert.InDelta(t, want, y.Value(), 1e-9)
	assert.Equal(t, before+1, ctx.Len(), "Var log_sum_exp is one node")
	ctx.Grad(y)

	// The generic path on duals must agree with the single-node Var path.
	for i := range xs {
		ds := make([]dual, len(xs))
		for j := range xs {
			ds[j] = dual{Val: admath.Float(xs[j])}
		}
		ds[i].D = 1
		d := admath.LogSumExp(ds)
		assert.InDelta(t, want, d.Value(), 1e-9)
		assert.InDelta(t, vs[i].Adj(), float64(d.D), 1e-12, "softmax partial %d", i)
	}

	assert.True(t, math.IsInf(admath.LogSumExp[dual](nil).Value(), -1))
	assert.InDelta(t, math.Log(math.Exp(1)+math.Exp(2)), admath.LogSumExp2(admath.Float(1), admath.Float(2)).Value(), 1e-12)
}

func TestLogSumExp_NonFiniteTangent(t *testing.T) {
	nan := dual{Val: admath.Float(math.NaN()), D: 1}
	d := admath.LogSumExp([]dual{{Val: 1}, nan})
	assert.True(t, math.IsNaN(d.Value()))
	assert.True(t, math.IsNaN(float64(d.D)), "NaN reaches the tangent")

	inf := admath.LogSumExp([]dual{{Val: 1, D: 1}, {Val: admath.Float(math.Inf(1))}})
	assert.True(t, math.IsInf(inf.Value(), 1))
	assert.True(t, math.IsNaN(float64(inf.D)))
}

func TestDot_Dispatch(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, -5, 6}

	f, err := admath.Dot(scalarFloats(a), scalarFloats(b))
	require.NoError(t, err)
	assert.Equal(t, 12.0, f.Value())

	ctx := newContext()
	va, vb := ctx.NewVars(a), ctx.NewVars(b)
	before := ctx.Len()
	v, err := admath.Dot(va, vb)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v.Value())
	assert.Equal(t, before+1, ctx.Len(), "Var dot is one node")
	ctx.Grad(v)
	for i := range a {
		assert.Equal(t, b[i], va[i].Adj())
		assert.Equal(t, a[i], vb[i].Adj())
	}

	da := []dual{{Val: 1, D: 1}, {Val: 2}, {Val: 3}}
	db := []dual{{Val: 4}, {Val: -5}, {Val: 6}}
	d, err := admath.Dot(da, db)
	require.NoError(t, err)
	assert.Equal(t, 12.0, d.Value())
	assert.Equal(t, admath.Float(4), d.D)
}

func TestDot_SizeMismatch(t *testing.T) {
	_, err := admath.Dot([]admath.Float{1, 2}, []admath.Float{1})
	assert.ErrorIs(t, err, admath.ErrSizeMismatch)

	ctx := newContext()
	before := ctx.Len()
	_, err = admath.Dot(ctx.NewVars([]float64{1, 2, 3}), ctx.NewVars([]float64{1, 2}))
	assert.ErrorIs(t, err, admath.ErrSizeMismatch)
	assert.Equal(t, before+5, ctx.Len(), "only the leaves were recorded")

	_, err = admath.Dot([]dual{{Val: 1}}, nil)
	assert.ErrorIs(t, err, admath.ErrSizeMismatch)
}

func scalarFloats(xs []float64) []admath.Float {
	out := make([]admath.Float, len(xs))
	for i, x := range xs {
		out[i] = admath.Float(x)
	}
	return out
}
