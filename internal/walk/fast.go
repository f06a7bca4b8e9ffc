package walk

import (
	"context"
	"io/fs"
	"iter"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/atomic"
)

// fastWalker runs fastwalk's parallel traversal to completion and buffers the
// discovered entries. fastwalk invokes the callback from several goroutines
// at once, so the buffer is guarded by a mutex.
type fastWalker struct {
	settings
}

// Walk implements Walker.
func (w *fastWalker) Walk(ctx context.Context, root string) (iter.Seq[Entry], error) {
	start, err := CheckRoot(root)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		entries []Entry
	)

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: w.workers,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.counters.Skipped.Inc()
			w.log.WithError(err).WithField("path", path).Debug("skipping unreadable entry")

			return nil // Silently skip errors
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			w.counters.Dirs.Inc()

			return nil
		}

		if !isRegular(d) {
			return nil
		}

		w.counters.Files.Inc()

		mu.Lock()
		entries = append(entries, Entry{Path: path})
		mu.Unlock()

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	var used atomic.Bool

	return func(yield func(Entry) bool) {
		if used.Swap(true) {
			return
		}

		for _, entry := range entries {
			if !yield(entry) {
				return
			}
		}
	}, nil
}
