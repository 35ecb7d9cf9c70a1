// Package arena provides a typed bump allocator whose memory is released in
// bulk rather than per object.
//
// An Arena hands out slices carved from large retained blocks. Nothing is
// ever freed individually: Reset rewinds the allocation cursor and every
// block is reused by the next session. This keeps allocation on the hot path
// of tape construction down to a bounds check and a slice expression.
//
// Usage:
//
//	a := arena.New[float64](arena.DefaultConfig())
//	buf := a.Alloc(16) // zeroed, len 16, cap 16
//	// ... fill and use buf ...
//	a.Reset()          // buf must not be read after this point
package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrExhausted is the panic value (wrapped) raised when an allocation would
// take the arena past its configured byte limit.
var ErrExhausted = errors.New("arena: memory limit exhausted")

// Config controls block sizing and the hard memory ceiling.
type Config struct {
	BlockSize int   // Elements per block (requests larger than this get a dedicated block).
	MaxBytes  int64 // Upper bound on reserved bytes; 0 means unlimited.
}

// DefaultConfig returns a configuration suited to tapes of a few thousand nodes.
func DefaultConfig() Config {
	return Config{
		BlockSize: 8192,
		MaxBytes:  0,
	}
}

// Stats describes the current occupancy of an arena.
type Stats struct {
	Blocks   int   // Number of retained blocks.
	Used     int   // Elements handed out since the last Reset.
	Reserved int   // Elements held across all blocks.
	Bytes    int64 // Reserved size in bytes.
}

// Arena is a bump allocator for values of type T.
//
// An Arena is not safe for concurrent use. Slices returned by Alloc stay
// valid (they are never moved or grown in place) until the next Reset.
type Arena[T any] struct {
	cfg    Config
	blocks [][]T
	cur    int // index of the block currently being carved
	off    int // next free element in blocks[cur]
	used   int
	bytes  int64
	elem   int64
}

// New creates an empty arena. No memory is reserved until the first Alloc.
func New[T any](cfg Config) *Arena[T] {
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultConfig().BlockSize
	}
	var zero T
	return &Arena[T]{
		cfg:  cfg,
		elem: int64(unsafe.Sizeof(zero)),
	}
}

// Alloc returns a zeroed slice of n elements. The slice capacity is clipped
// to n so appending to it can never overwrite a neighbouring allocation.
//
// Alloc panics with an error wrapping ErrExhausted when the configured byte
// limit would be exceeded; exhaustion is not recoverable per call.
func (a *Arena[T]) Alloc(n int) []T {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative allocation size %d", n))
	}
	if n == 0 {
		return []T{}
	}

	for a.cur < len(a.blocks) {
		blk := a.blocks[a.cur]
		if a.off+n <= len(blk) {
			s := blk[a.off : a.off+n : a.off+n]
			a.off += n
			a.used += n
			clear(s)
			return s
		}
		// Current block cannot fit the request; move on to the next retained one.
		a.cur++
		a.off = 0
	}

	size := max(n, a.cfg.BlockSize)
	a.grow(size)
	blk := a.blocks[a.cur]
	s := blk[:n:n]
	a.off = n
	a.used += n
	return s
}

// grow appends a fresh block of size elements and makes it current.
func (a *Arena[T]) grow(size int) {
	need := int64(size) * a.elem
	if a.cfg.MaxBytes > 0 && a.bytes+need > a.cfg.MaxBytes {
		panic(fmt.Errorf("%w: reserved %d bytes, requested %d more, limit %d",
			ErrExhausted, a.bytes, need, a.cfg.MaxBytes))
	}
	a.blocks = append(a.blocks, make([]T, size))
	a.cur = len(a.blocks) - 1
	a.off = 0
	a.bytes += need
}

// Reset invalidates every slice previously returned by Alloc and makes all
// retained blocks available again. Memory is kept, not returned to the runtime.
func (a *Arena[T]) Reset() {
	a.cur = 0
	a.off = 0
	a.used = 0
}

// Mark is a saved allocation position; see Arena.Rewind.
type Mark struct {
	cur, off, used int
}

// Mark returns the current allocation position.
func (a *Arena[T]) Mark() Mark {
	return Mark{cur: a.cur, off: a.off, used: a.used}
}

// Rewind releases everything allocated after m. Slices obtained before m stay
// valid; slices obtained after it must not be read again. Rewinding forward
// past the current position panics.
func (a *Arena[T]) Rewind(m Mark) {
	if m.used > a.used {
		panic(fmt.Sprintf("arena: rewind to %d elements past current position %d", m.used, a.used))
	}
	a.cur, a.off, a.used = m.cur, m.off, m.used
}

// Release drops all retained blocks so the garbage collector can reclaim them.
func (a *Arena[T]) Release() {
	a.blocks = nil
	a.bytes = 0
	a.Reset()
}

// Stats returns a snapshot of the arena occupancy.
func (a *Arena[T]) Stats() Stats {
	reserved := 0
	for _, b := range a.blocks {
		reserved += len(b)
	}
	return Stats{
		Blocks:   len(a.blocks),
		Used:     a.used,
		Reserved: reserved,
		Bytes:    a.bytes,
	}
}
