package scalar

import (
	"math"
	"testing"

	"github.com/born-ml/adcore/internal/prim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// poly is written once against Number and evaluated on Float here; the
// autodiff and fwd packages reuse the same shape on their own kinds.
func poly[T Number[T]](x T) T {
	return x.Square().MulConst(3).Add(x.MulConst(2)).AddConst(1)
}

func TestFloat_SatisfiesNumber(t *testing.T) {
	assert.Equal(t, Float(17), poly(Float(2)))
}

func TestFloat_ZeroValueConst(t *testing.T) {
	var z Float
	assert.Equal(t, Float(4.5), z.Const(4.5))
}

func TestFloat_Elementary(t *testing.T) {
	x := Float(0.5)
	assert.InDelta(t, math.Exp(0.5), x.Exp().Value(), 1e-15)
	assert.InDelta(t, math.Log(0.5), x.Log().Value(), 1e-15)
	assert.InDelta(t, math.Sqrt(0.5), x.Sqrt().Value(), 1e-15)
	assert.InDelta(t, 2.0, x.Inv().Value(), 1e-15)
	assert.InDelta(t, math.Pow(0.5, 3), x.Pow(3).Value(), 1e-15)
	assert.InDelta(t, math.Asinh(0.5), x.Asinh().Value(), 1e-15)

	at, err := x.Atanh()
	require.NoError(t, err)
	assert.InDelta(t, math.Atanh(0.5), at.Value(), 1e-15)

	_, err = Float(1.5).Atanh()
	assert.ErrorIs(t, err, prim.ErrDomain)
}

func TestFloats(t *testing.T) {
	assert.Equal(t, []Float{1, 2}, Floats([]float64{1, 2}))
}
