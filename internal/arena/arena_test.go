package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloc_ZeroedAndClipped(t *testing.T) {
	a := New[float64](Config{BlockSize: 8})

	s := a.Alloc(3)
	require.Len(t, s, 3)
	assert.Equal(t, 3, cap(s), "capacity must be clipped to the request")
	for _, v := range s {
		assert.Zero(t, v)
	}

	// Appending must reallocate instead of clobbering the next allocation.
	s[0], s[1], s[2] = 1, 2, 3
	next := a.Alloc(2)
	_ = append(s, 99)
	assert.Equal(t, []float64{0, 0}, next)
}

func TestAlloc_SlicesDoNotOverlap(t *testing.T) {
	a := New[int32](Config{BlockSize: 4})

	var all [][]int32
	for i := range 10 {
		s := a.Alloc(3)
		for j := range s {
			s[j] = int32(i)
		}
		all = append(all, s)
	}

	for i, s := range all {
		for _, v := range s {
			assert.Equal(t, int32(i), v, "allocation %d was overwritten", i)
		}
	}
}

func TestAlloc_LargeRequestGetsDedicatedBlock(t *testing.T) {
	a := New[float64](Config{BlockSize: 4})

	s := a.Alloc(10)
	assert.Len(t, s, 10)

	st := a.Stats()
	assert.Equal(t, 1, st.Blocks)
	assert.Equal(t, 10, st.Reserved)
	assert.Equal(t, int64(80), st.Bytes)
}

func TestAlloc_Empty(t *testing.T) {
	a := New[float64](DefaultConfig())
	s := a.Alloc(0)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 0, a.Stats().Blocks)
}

func TestReset_ReusesBlocks(t *testing.T) {
	a := New[float64](Config{BlockSize: 16})

	for range 5 {
		a.Alloc(10)
	}
	before := a.Stats()
	require.Equal(t, 50, before.Used)

	a.Reset()
	assert.Equal(t, 0, a.Stats().Used)

	for range 5 {
		a.Alloc(10)
	}
	after := a.Stats()
	assert.Equal(t, before.Blocks, after.Blocks, "reset must reuse retained blocks")
	assert.Equal(t, before.Bytes, after.Bytes)
}

func TestReset_ReturnsZeroedMemory(t *testing.T) {
	a := New[float64](Config{BlockSize: 8})

	s := a.Alloc(8)
	for i := range s {
		s[i] = float64(i + 1)
	}
	a.Reset()

	s2 := a.Alloc(8)
	for _, v := range s2 {
		assert.Zero(t, v)
	}
}

func TestRelease(t *testing.T) {
	a := New[float64](Config{BlockSize: 8})
	a.Alloc(4)
	a.Release()

	st := a.Stats()
	assert.Equal(t, 0, st.Blocks)
	assert.Equal(t, int64(0), st.Bytes)
}

func TestAlloc_ExhaustedPanics(t *testing.T) {
	a := New[float64](Config{BlockSize: 4, MaxBytes: 64})

	a.Alloc(4)
	a.Alloc(4) // 64 bytes reserved

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic on exhaustion")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrExhausted))
	}()
	a.Alloc(1)
}

func TestAlloc_NegativePanics(t *testing.T) {
	a := New[float64](DefaultConfig())
	assert.Panics(t, func() { a.Alloc(-1) })
}

func BenchmarkAlloc(b *testing.B) {
	a := New[float64](DefaultConfig())
	for i := 0; i < b.N; i++ {
		a.Alloc(4)
		if i%4096 == 0 {
			a.Reset()
		}
	}
}

func TestRewind(t *testing.T) {
	a := New[float64](Config{BlockSize: 4})

	keep := a.Alloc(3)
	keep[0] = 7
	m := a.Mark()

	a.Alloc(2)
	a.Alloc(4)
	require.Equal(t, 9, a.Stats().Used)

	a.Rewind(m)
	assert.Equal(t, 3, a.Stats().Used)
	assert.Equal(t, 7.0, keep[0], "allocations before the mark survive a rewind")

	s := a.Alloc(1)
	s[0] = 1
	assert.Equal(t, 7.0, keep[0])
}

func TestRewind_ForwardPanics(t *testing.T) {
	a := New[float64](Config{BlockSize: 4})
	a.Alloc(2)
	m := a.Mark()
	a.Reset()
	assert.Panics(t, func() { a.Rewind(m) })
}
