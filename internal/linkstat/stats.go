package linkstat

import (
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/linkstat/internal/linkinfo"
	"github.com/idelchi/linkstat/internal/walk"
)

// Policy decides which files contribute to the dedup-aware total.
type Policy string

const (
	// ExcludeShared leaves every file with more than one hard link out of the
	// dedup-aware total. Shared data is therefore counted zero times.
	ExcludeShared Policy = "exclude-shared"
	// CountOnce counts the data behind a group of hard links exactly once,
	// keyed on the file's device and inode.
	CountOnce Policy = "count-once"
)

// Policies lists the accepted policies.
var Policies = []Policy{ExcludeShared, CountOnce} //nolint:gochecknoglobals // Lookup table

// Validate returns an error for unknown policies.
func (p Policy) Validate() error {
	if !slices.Contains(Policies, p) {
		return fmt.Errorf("unknown policy %q: must be one of %v", p, Policies)
	}

	return nil
}

// Totals is the per-worker accumulator. Its zero value is the identity of Merge.
//
// Sizes are uint64, so the ceiling is 16 EiB per total; no realistic tree
// comes close and additions are not checked for overflow.
type Totals struct {
	// WithLinks is the sum of every file's size, hard links counted independently.
	WithLinks uint64
	// WithoutDuplicateLinks is the sum of the sizes the policy counts.
	WithoutDuplicateLinks uint64
	// Files is the number of files measured.
	Files uint64
	// SharedFiles is the number of measured files with more than one link.
	SharedFiles uint64
}

// Add folds one file into the totals. counted tells whether the file
// contributes to WithoutDuplicateLinks.
func (t Totals) Add(meta linkinfo.Metadata, counted bool) Totals {
	t.WithLinks += meta.Size
	t.Files++

	if meta.Shared() {
		t.SharedFiles++
	}

	if counted {
		t.WithoutDuplicateLinks += meta.Size
	}

	return t
}

// Merge combines two partial totals. It is associative and commutative.
func Merge(a, b Totals) Totals {
	return Totals{
		WithLinks:             a.WithLinks + b.WithLinks,
		WithoutDuplicateLinks: a.WithoutDuplicateLinks + b.WithoutDuplicateLinks,
		Files:                 a.Files + b.Files,
		SharedFiles:           a.SharedFiles + b.SharedFiles,
	}
}

// Stats holds the result of one scan.
type Stats struct {
	// Root is the absolute path of the scanned directory.
	Root string `json:"root"`
	// TotalWithLinks is the size of all files, every hard link counted.
	TotalWithLinks uint64 `json:"total_with_links"`
	// TotalWithoutDuplicateLinks is the dedup-aware size under Policy.
	TotalWithoutDuplicateLinks uint64 `json:"total_without_duplicate_links"`
	// FileCount is the number of files measured.
	FileCount uint64 `json:"file_count"`
	// SharedCount is the number of measured files with more than one link.
	SharedCount uint64 `json:"shared_count"`
	// SkippedDirs is the number of directories that could not be listed.
	SkippedDirs uint64 `json:"skipped_dirs"`
	// SkippedFiles is the number of discovered files whose metadata could not be read.
	SkippedFiles uint64 `json:"skipped_files"`
	// Policy is the dedup policy used.
	Policy Policy `json:"policy"`
	// Degraded is set when the platform reports no link counts.
	Degraded bool `json:"degraded"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Progress is a snapshot passed to the progress hook.
type Progress struct {
	// Discovered is the number of files found by the walk so far.
	Discovered uint64
	// Measured is the number of files whose metadata was read so far.
	Measured uint64
	// Bytes is the running total with links.
	Bytes uint64
}

// Options configures a scan.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Walker selects the traversal strategy.
	Walker walk.Kind
	// Workers bounds the aggregation goroutines (0 = GOMAXPROCS).
	Workers int
	// Policy selects the dedup policy.
	Policy Policy
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives debug output about skipped entries. Nil discards it.
	Logger *logrus.Entry
}
