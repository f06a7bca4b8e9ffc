package walk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

var (
	// ErrRootNotFound is returned when the root path does not exist or cannot be stat'ed.
	ErrRootNotFound = errors.New("root not found")
	// ErrRootNotADirectory is returned when the root path exists but is not a directory.
	ErrRootNotADirectory = errors.New("root is not a directory")
)

// Entry is a path that denoted a regular file when it was discovered.
type Entry struct {
	// Path is the file path, joined onto the walk root.
	Path string
}

// Walker enumerates every regular file below a root directory.
//
// Walk validates the root first and returns ErrRootNotFound or
// ErrRootNotADirectory without producing a sequence. Entries that cannot be
// read further down are skipped and counted, never returned as errors.
// The returned sequence is single use and its order is unspecified.
type Walker interface {
	Walk(ctx context.Context, root string) (iter.Seq[Entry], error)
}

// Kind names a Walker implementation.
type Kind string

const (
	// Stack walks with an explicit work-list of directories, lazily.
	Stack Kind = "stack"
	// Fast walks with fastwalk's parallel traversal and buffers the result.
	Fast Kind = "fast"
)

// Kinds lists the accepted walker kinds.
var Kinds = []Kind{Stack, Fast} //nolint:gochecknoglobals // Lookup table

// Counters tracks walk progress. It is safe for concurrent use.
type Counters struct {
	// Dirs is the number of directories listed.
	Dirs atomic.Uint64
	// Files is the number of regular files discovered.
	Files atomic.Uint64
	// Skipped is the number of directories that could not be listed.
	Skipped atomic.Uint64
}

type settings struct {
	counters *Counters
	log      *logrus.Entry
	workers  int
}

// Option configures a Walker.
type Option func(*settings)

// WithCounters makes the walker record its progress in c.
func WithCounters(c *Counters) Option {
	return func(s *settings) { s.counters = c }
}

// WithLogger sets the logger used for debug output on skipped entries.
func WithLogger(log *logrus.Entry) Option {
	return func(s *settings) { s.log = log }
}

// WithWorkers bounds the number of traversal goroutines of the fast walker.
// Zero keeps fastwalk's default.
func WithWorkers(n int) Option {
	return func(s *settings) { s.workers = n }
}

// New returns the Walker for kind.
func New(kind Kind, opts ...Option) (Walker, error) {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}

	if s.counters == nil {
		s.counters = &Counters{}
	}

	if s.log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		s.log = logrus.NewEntry(logger)
	}

	switch kind {
	case Stack:
		return &stackWalker{settings: s}, nil
	case Fast:
		return &fastWalker{settings: s}, nil
	default:
		return nil, fmt.Errorf("unknown walker %q: must be one of %v", kind, Kinds)
	}
}

// CheckRoot validates that root is an existing directory and returns the
// directory to start walking from. A root that is a symlink to a directory
// is resolved to its target; nothing below the root is ever followed.
func CheckRoot(root string) (string, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("accessing path %q: %w: %w", root, ErrRootNotFound, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("path %q: %w", root, ErrRootNotADirectory)
	}

	linfo, err := os.Lstat(root)
	if err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return "", fmt.Errorf("resolving path %q: %w: %w", root, ErrRootNotFound, err)
		}

		return resolved, nil
	}

	return root, nil
}

// isRegular reports whether a directory entry denotes a regular file.
// Symlinks are reported by their own type, so they never qualify.
func isRegular(d fs.DirEntry) bool {
	return d.Type().IsRegular()
}
