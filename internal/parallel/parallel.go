// Package parallel provides the worker fan-out used by the multi-output
// differentiation functionals.
//
// Tapes are single-owner, so work is split into contiguous chunks and each
// chunk runs on its own goroutine with its own worker index; callers key
// per-worker state (one autodiff.Context each) on that index.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4, // One reverse sweep per item; small chunks still pay off.
	}
}

// sequential reports whether n items run on the calling goroutine.
func (cfg Config) sequential(n int) bool {
	return !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize
}

// chunkSize returns the number of items handed to each goroutine.
func (cfg Config) chunkSize(n int) int {
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
}

// Workers returns the number of distinct worker indices ForWorker passes
// for n items under cfg. It is at least 1.
func Workers(n int, cfg Config) int {
	if n <= 0 || cfg.sequential(n) {
		return 1
	}
	size := cfg.chunkSize(n)
	return (n + size - 1) / size
}

// ForWorker executes f(w, i) for i in [0, n). Items of one chunk run in
// order on one goroutine and share the worker index w, which lies in
// [0, Workers(n, cfg)). Two goroutines never see the same w at once.
// Small or disabled configurations run everything on the caller with w = 0.
func ForWorker(n int, f func(w, i int), cfg Config) {
	if cfg.sequential(n) {
		for i := range n {
			f(0, i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := cfg.chunkSize(n)

	for w, start := 0, 0; start < n; w, start = w+1, start+chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(w, i)
			}
		}(w, start, end)
	}
	wg.Wait()
}
