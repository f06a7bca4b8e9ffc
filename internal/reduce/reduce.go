// Package reduce provides a parallel fold over a slice.
//
// The result equals the sequential fold whenever combine is associative and
// commutative with identity as its neutral element; the number of workers and
// the chunk boundaries then do not matter.
package reduce

import (
	"runtime"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// Reduce splits items into one contiguous chunk per worker, folds each chunk
// into a fresh accumulator on its own goroutine and merges the partial
// results once all workers are done.
//
// Accumulators are owned by a single worker until the merge, so fold needs no
// synchronization of its own. workers <= 0 uses runtime.GOMAXPROCS(0).
func Reduce[E, A any](items []E, workers int, identity func() A, fold func(A, E) A, combine func(A, A) A) A {
	if len(items) == 0 {
		return identity()
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	size := (len(items) + workers - 1) / workers
	chunks := lo.Chunk(items, size)

	p := pool.NewWithResults[A]().WithMaxGoroutines(len(chunks))

	for _, chunk := range chunks {
		p.Go(func() A {
			return Sequential(chunk, identity, fold)
		})
	}

	acc := identity()
	for _, partial := range p.Wait() {
		acc = combine(acc, partial)
	}

	return acc
}

// Sequential folds items in order on the calling goroutine.
func Sequential[E, A any](items []E, identity func() A, fold func(A, E) A) A {
	acc := identity()
	for _, item := range items {
		acc = fold(acc, item)
	}

	return acc
}
