package walk

import (
	"context"
	"iter"
	"os"
	"path/filepath"

	"go.uber.org/atomic"
)

// stackWalker traverses with an explicit stack of pending directories so that
// deep trees do not grow the call stack. Entries are produced lazily.
type stackWalker struct {
	settings
}

// Walk implements Walker.
func (w *stackWalker) Walk(ctx context.Context, root string) (iter.Seq[Entry], error) {
	start, err := CheckRoot(root)
	if err != nil {
		return nil, err
	}

	var used atomic.Bool

	return func(yield func(Entry) bool) {
		if used.Swap(true) {
			return
		}

		pending := []string{start}

		for len(pending) > 0 {
			if ctx.Err() != nil {
				return
			}

			dir := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			entries, err := os.ReadDir(dir)
			if err != nil {
				w.counters.Skipped.Inc()
				w.log.WithError(err).WithField("path", dir).Debug("skipping unreadable directory")

				// ReadDir may return the entries read before the failure.
				if len(entries) == 0 {
					continue
				}
			}

			w.counters.Dirs.Inc()

			//nolint:varnamelen // d is standard for DirEntry
			for _, d := range entries {
				path := filepath.Join(dir, d.Name())

				switch {
				case d.IsDir():
					pending = append(pending, path)
				case isRegular(d):
					w.counters.Files.Inc()

					if !yield(Entry{Path: path}) {
						return
					}
				}
			}
		}
	}, nil
}
