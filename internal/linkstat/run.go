package linkstat

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/linkstat/internal/linkinfo"
	"github.com/idelchi/linkstat/internal/walk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

var (
	// ErrRootNotFound is returned when the scanned path does not exist.
	ErrRootNotFound = walk.ErrRootNotFound
	// ErrRootNotADirectory is returned when the scanned path is not a directory.
	ErrRootNotADirectory = walk.ErrRootNotADirectory
)

// startProgressReporter invokes hook on each tick until ctx is done.
func startProgressReporter(
	ctx context.Context,
	counters *walk.Counters,
	agg *aggregator,
	hook func(Progress),
	interval time.Duration,
) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(Progress{
					Discovered: counters.Files.Load(),
					Measured:   agg.measured.Load(),
					Bytes:      agg.bytes.Load(),
				})
			case <-ctx.Done():
				return
			}
		}
	}()
}

func discardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logrus.NewEntry(logger)
}

// Run scans the directory at opt.Path and returns both totals.
//
// The walk runs to completion first; the discovered files are then measured
// and folded on opt.Workers goroutines. The only errors are ErrRootNotFound
// and ErrRootNotADirectory for a bad root, an invalid option, or ctx's error
// if the scan is cancelled. Everything that fails below the root is skipped
// and shows up in the skip counters only.
//
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(Progress)) (*Stats, error) {
	if opt.Path == "" {
		opt.Path = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	opt.Path = filepath.Clean(opt.Path)

	if opt.Policy == "" {
		opt.Policy = ExcludeShared
	}

	if err := opt.Policy.Validate(); err != nil {
		return nil, err
	}

	if opt.Walker == "" {
		opt.Walker = walk.Fast
	}

	log := opt.Logger
	if log == nil {
		log = discardLogger()
	}

	counters := &walk.Counters{}

	walker, err := walk.New(opt.Walker,
		walk.WithCounters(counters),
		walk.WithLogger(log),
		walk.WithWorkers(opt.Workers),
	)
	if err != nil {
		return nil, err
	}

	agg := newAggregator(opt.Policy, log)

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()

	startProgressReporter(ctx, counters, agg, progressHook, opt.ProgressInterval)

	seq, err := walker.Walk(ctx, opt.Path)
	if err != nil {
		return nil, err
	}

	entries := slices.Collect(seq)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"files":   len(entries),
		"dirs":    counters.Dirs.Load(),
		"skipped": counters.Skipped.Load(),
	}).Debug("walk finished")

	totals := agg.aggregate(entries, opt.Workers)

	root, err := filepath.Abs(opt.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	return &Stats{
		Root:                       root,
		TotalWithLinks:             totals.WithLinks,
		TotalWithoutDuplicateLinks: totals.WithoutDuplicateLinks,
		FileCount:                  totals.Files,
		SharedCount:                totals.SharedFiles,
		SkippedDirs:                counters.Skipped.Load(),
		SkippedFiles:               agg.skipped.Load(),
		Policy:                     opt.Policy,
		Degraded:                   !linkinfo.LinkCountSupported,
		Elapsed:                    time.Since(start),
	}, nil
}
