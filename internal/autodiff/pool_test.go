package autodiff_test

import (
	"sync"
	"testing"

	"github.com/born-ml/adcore/internal/autodiff"
	"github.com/stretchr/testify/assert"
)

func TestContextPool_PutResets(t *testing.T) {
	pool := autodiff.NewContextPool(autodiff.DefaultConfig())

	ctx := pool.Get()
	x := ctx.NewVar(3)
	ctx.Grad(x.Square())
	assert.Equal(t, 6.0, x.Adj())
	pool.Put(ctx)

	assert.Equal(t, 0, ctx.Len(), "Put resets the context")
	assert.Panics(t, func() { x.Adj() })

	assert.NotPanics(t, func() { pool.Put(nil) })
}

func TestContextPool_ConcurrentWorkers(t *testing.T) {
	pool := autodiff.NewContextPool(autodiff.DefaultConfig())
	const n = 32
	got := make([]float64, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := pool.Get()
			defer pool.Put(ctx)
			x := ctx.NewVar(float64(i))
			_, g := ctx.GradientOf(x.Square(), []autodiff.Var{x})
			got[i] = g[0]
		}(i)
	}
	wg.Wait()

	for i := range n {
		assert.Equal(t, 2*float64(i), got[i])
	}
}
