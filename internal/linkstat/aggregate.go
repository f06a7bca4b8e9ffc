package linkstat

import (
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/idelchi/linkstat/internal/linkinfo"
	"github.com/idelchi/linkstat/internal/reduce"
	"github.com/idelchi/linkstat/internal/walk"
)

// aggregator maps walk entries to metadata and folds them into Totals.
// fold is called from several workers at once; everything it shares is
// either atomic or a sync.Map.
type aggregator struct {
	policy Policy
	log    *logrus.Entry
	stat   func(string) (linkinfo.Metadata, error)

	// seen holds the identities already counted under CountOnce.
	seen sync.Map

	skipped  atomic.Uint64
	measured atomic.Uint64
	bytes    atomic.Uint64
}

func newAggregator(policy Policy, log *logrus.Entry) *aggregator {
	return &aggregator{
		policy: policy,
		log:    log,
		stat:   linkinfo.Stat,
	}
}

// classify reads the metadata of entry. Files that vanished, became
// unreadable or are no longer regular are dropped.
func (a *aggregator) classify(entry walk.Entry) (linkinfo.Metadata, bool) {
	meta, err := a.stat(entry.Path)
	if err != nil {
		a.skipped.Inc()
		a.log.WithError(err).WithField("path", entry.Path).Debug("skipping file without metadata")

		return linkinfo.Metadata{}, false
	}

	return meta, true
}

// counts reports whether meta contributes to the dedup-aware total.
func (a *aggregator) counts(meta linkinfo.Metadata) bool {
	if !meta.Shared() {
		return true
	}

	if a.policy != CountOnce {
		return false
	}

	_, loaded := a.seen.LoadOrStore(meta.ID, struct{}{})

	return !loaded
}

func (a *aggregator) fold(acc Totals, entry walk.Entry) Totals {
	meta, ok := a.classify(entry)
	if !ok {
		return acc
	}

	a.measured.Inc()
	a.bytes.Add(meta.Size)

	return acc.Add(meta, a.counts(meta))
}

// aggregate folds entries on the given number of workers.
func (a *aggregator) aggregate(entries []walk.Entry, workers int) Totals {
	return reduce.Reduce(entries, workers, func() Totals { return Totals{} }, a.fold, Merge)
}
