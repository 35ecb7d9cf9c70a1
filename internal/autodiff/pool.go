package autodiff

import "sync"

// ContextPool recycles Contexts across goroutines so that their node stores
// and arena blocks are reused instead of reallocated per task.
//
// Each Context taken from the pool is owned by the caller until Put; the
// pool itself is safe for concurrent use.
type ContextPool struct {
	pool sync.Pool
}

// NewContextPool creates a pool whose new Contexts are built from cfg.
func NewContextPool(cfg Config) *ContextPool {
	return &ContextPool{
		pool: sync.Pool{
			New: func() any {
				return New(cfg)
			},
		},
	}
}

// Get returns an empty Context.
func (p *ContextPool) Get() *Context {
	return p.pool.Get().(*Context)
}

// Put resets c and returns it to the pool. Every Var of c becomes stale.
func (p *ContextPool) Put(c *Context) {
	if c == nil {
		return
	}
	c.Reset()
	p.pool.Put(c)
}
