package autodiff

import (
	"errors"
	"fmt"

	"github.com/born-ml/adcore/internal/arena"
	"github.com/born-ml/adcore/internal/autodiff/ops"
	"github.com/born-ml/adcore/internal/metrics"
	"github.com/rs/zerolog"
)

// Programmer-discipline violations. They are raised as panics (wrapped with
// detail) rather than returned: a caller that hits one has a bug, not an
// input problem.
var (
	// ErrStaleVar is raised when a Var or Snapshot is used after the session
	// that created it was reset or rewound past it.
	ErrStaleVar = errors.New("autodiff: var used after its session was reset")

	// ErrForeignVar is raised when Vars from two different Contexts meet in
	// one operation.
	ErrForeignVar = errors.New("autodiff: vars belong to different contexts")
)

// Config controls a differentiation context.
type Config struct {
	Name           string         // Label attached to log events.
	NodeCapacity   int            // Initial capacity of the node store.
	ArenaBlockSize int            // Elements per arena block.
	MaxArenaBytes  int64          // Per-arena memory ceiling; 0 means unlimited.
	Logger         zerolog.Logger // Destination for debug events.
}

// DefaultConfig returns a configuration with a silent logger.
func DefaultConfig() Config {
	return Config{
		Name:           "default",
		NodeCapacity:   1024,
		ArenaBlockSize: arena.DefaultConfig().BlockSize,
		Logger:         zerolog.Nop(),
	}
}

// Context is one differentiation session: the tape of recorded nodes plus
// the arenas holding their operand snapshots.
//
// A Context is owned by a single goroutine at a time and does no locking.
// Concurrent work uses one Context per worker (see ContextPool).
//
// Lifecycle:
//
//	ctx := autodiff.New(autodiff.DefaultConfig())
//	x := ctx.NewVar(1.5)
//	y := x.Mul(x).Asinh()
//	ctx.Grad(y)
//	dydx := x.Adj()
//	ctx.Reset() // x and y are poisoned from here on
type Context struct {
	cfg Config
	log zerolog.Logger

	// Node store; one entry per NodeID in each slice.
	vals   []float64
	adjs   []float64
	recs   []record
	epochs []uint32

	floats *arena.Arena[float64]
	ids    *arena.Arena[ops.NodeID]

	epoch   uint32 // bumped by Reset and Rewind
	session uint32 // bumped by Reset
}

// New creates an empty context.
func New(cfg Config) *Context {
	if cfg.NodeCapacity <= 0 {
		cfg.NodeCapacity = DefaultConfig().NodeCapacity
	}
	acfg := arena.Config{BlockSize: cfg.ArenaBlockSize, MaxBytes: cfg.MaxArenaBytes}
	return &Context{
		cfg:    cfg,
		log:    cfg.Logger.With().Str("context", cfg.Name).Logger(),
		vals:   make([]float64, 0, cfg.NodeCapacity),
		adjs:   make([]float64, 0, cfg.NodeCapacity),
		recs:   make([]record, 0, cfg.NodeCapacity),
		epochs: make([]uint32, 0, cfg.NodeCapacity),
		floats: arena.New[float64](acfg),
		ids:    arena.New[ops.NodeID](acfg),
		epoch:  1,
	}
}

// Len returns the number of nodes on the tape.
func (c *Context) Len() int {
	return len(c.vals)
}

// Reset ends the session: every node, snapshot and arena allocation is
// released for reuse, and every outstanding Var becomes stale.
// This is the equivalent of recovering all tape memory.
func (c *Context) Reset() {
	nodes := len(c.vals)
	bytes := c.ArenaBytes()

	clear(c.recs) // drop references to custom nodes
	c.vals = c.vals[:0]
	c.adjs = c.adjs[:0]
	c.recs = c.recs[:0]
	c.epochs = c.epochs[:0]
	c.floats.Reset()
	c.ids.Reset()
	c.epoch++
	c.session++

	metrics.ObserveReset(c.cfg.Name, nodes, bytes)
	c.log.Debug().
		Int("nodes", nodes).
		Int64("arena_bytes", bytes).
		Uint32("epoch", c.epoch).
		Msg("session reset")
}

// Mark is a saved tape position; see Context.Rewind.
type Mark struct {
	nodes   int
	floats  arena.Mark
	ids     arena.Mark
	session uint32
	epoch   uint32
}

// Mark returns the current tape position. Rewinding to it later discards
// every node recorded after this call while keeping earlier ones.
func (c *Context) Mark() Mark {
	return Mark{
		nodes:   len(c.vals),
		floats:  c.floats.Mark(),
		ids:     c.ids.Mark(),
		session: c.session,
		epoch:   c.epoch,
	}
}

// Rewind discards every node recorded after m. Vars created before m stay
// valid; Vars created after it and every Snapshot become stale.
//
// Marks nest like a stack: rewinding to m also invalidates every mark taken
// after m, while marks taken before m remain usable. Rewind panics if the
// context was reset since m was taken or if the tape below m was rewound
// and re-recorded.
func (c *Context) Rewind(m Mark) {
	if !c.validMark(m) {
		panic(fmt.Errorf("%w: rewind to %d nodes (epoch %d) on a tape of %d at epoch %d",
			ErrStaleVar, m.nodes, m.epoch, len(c.vals), c.epoch))
	}
	clear(c.recs[m.nodes:])
	c.vals = c.vals[:m.nodes]
	c.adjs = c.adjs[:m.nodes]
	c.recs = c.recs[:m.nodes]
	c.epochs = c.epochs[:m.nodes]
	c.floats.Rewind(m.floats)
	c.ids.Rewind(m.ids)
	c.epoch++
}

// validMark reports whether the tape prefix m covers is unchanged since m
// was taken. Node epochs never decrease along the tape, so the prefix was
// re-recorded exactly when its last node is newer than m.
func (c *Context) validMark(m Mark) bool {
	if m.session != c.session || m.nodes > len(c.vals) {
		return false
	}
	return m.nodes == 0 || c.epochs[m.nodes-1] <= m.epoch
}

// ArenaBytes returns the bytes reserved by the context's arenas.
func (c *Context) ArenaBytes() int64 {
	return c.floats.Stats().Bytes + c.ids.Stats().Bytes
}

// ArenaStats returns the occupancy of the value and node-reference arenas.
func (c *Context) ArenaStats() (floats, ids arena.Stats) {
	return c.floats.Stats(), c.ids.Stats()
}

// Value returns the forward value of node id (implements ops.Store).
func (c *Context) Value(id ops.NodeID) float64 {
	return c.vals[id]
}

// Adjoint returns the adjoint of node id (implements ops.Store).
func (c *Context) Adjoint(id ops.NodeID) float64 {
	return c.adjs[id]
}

// AddAdjoint accumulates d into the adjoint of node id (implements ops.Store).
func (c *Context) AddAdjoint(id ops.NodeID, d float64) {
	c.adjs[id] += d
}

// check panics unless v is a live node of this context.
func (c *Context) check(v Var) {
	if int(v.id) >= len(c.vals) || c.epochs[v.id] != v.epoch {
		panic(fmt.Errorf("%w: node %d (epoch %d) in context %q at epoch %d",
			ErrStaleVar, v.id, v.epoch, c.cfg.Name, c.epoch))
	}
}
