package linkstat

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/linkstat/internal/linkinfo"
	"github.com/idelchi/linkstat/internal/reduce"
	"github.com/idelchi/linkstat/internal/walk"
)

var errGone = errors.New("file vanished")

// fakeTree maps entry paths to metadata; paths missing from the map fail to stat.
type fakeTree map[string]linkinfo.Metadata

func (f fakeTree) stat(path string) (linkinfo.Metadata, error) {
	meta, ok := f[path]
	if !ok {
		return linkinfo.Metadata{}, errGone
	}

	return meta, nil
}

// randomTree builds n files; roughly a third belong to hard-link groups of two or three.
func randomTree(seed uint64, n int) (fakeTree, []walk.Entry) {
	rng := rand.New(rand.NewPCG(seed, seed))
	tree := fakeTree{}
	entries := make([]walk.Entry, 0, n)

	for i := 0; len(entries) < n; i++ {
		meta := linkinfo.Metadata{
			Size:  rng.Uint64N(1 << 30),
			Links: 1,
			ID:    linkinfo.ID{Dev: 1, Ino: uint64(i)},
		}

		if rng.IntN(3) == 0 {
			meta.Links = uint64(2 + rng.IntN(2))
		}

		for link := range meta.Links {
			path := fmt.Sprintf("f%d-%d", i, link)
			tree[path] = meta
			entries = append(entries, walk.Entry{Path: path})
		}
	}

	return tree, entries
}

func newTestAggregator(policy Policy, tree fakeTree) *aggregator {
	agg := newAggregator(policy, discardLogger())
	agg.stat = tree.stat

	return agg
}

func TestTotalsMergeIsAssociativeAndCommutative(t *testing.T) {
	tree, entries := randomTree(1, 300)
	metas := lo.Map(entries, func(e walk.Entry, _ int) linkinfo.Metadata { return tree[e.Path] })

	add := func(acc Totals, m linkinfo.Metadata) Totals { return acc.Add(m, !m.Shared()) }
	zero := func() Totals { return Totals{} }

	a := reduce.Sequential(metas[:100], zero, add)
	b := reduce.Sequential(metas[100:200], zero, add)
	c := reduce.Sequential(metas[200:], zero, add)

	assert.Equal(t, Merge(Merge(a, b), c), Merge(a, Merge(b, c)))
	assert.Equal(t, Merge(a, b), Merge(b, a))
	assert.Equal(t, a, Merge(a, Totals{}))
	assert.Equal(t, reduce.Sequential(metas, zero, add), Merge(Merge(a, b), c))
}

func TestAggregateIsInvariantUnderPartition(t *testing.T) {
	for _, policy := range Policies {
		t.Run(string(policy), func(t *testing.T) {
			tree, entries := randomTree(2, 2_000)
			expected := newTestAggregator(policy, tree).aggregate(entries, 1)

			for workers := 2; workers <= 16; workers++ {
				actual := newTestAggregator(policy, tree).aggregate(entries, workers)
				assert.Equal(t, expected, actual, "workers=%d", workers)
			}
		})
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	for _, policy := range Policies {
		t.Run(string(policy), func(t *testing.T) {
			tree, entries := randomTree(3, 1_000)
			expected := newTestAggregator(policy, tree).aggregate(entries, 4)

			for range 10 {
				shuffled := lo.Shuffle(append([]walk.Entry(nil), entries...))
				assert.Equal(t, expected, newTestAggregator(policy, tree).aggregate(shuffled, 4))
			}
		})
	}
}

func TestAggregateDominance(t *testing.T) {
	for seed := range uint64(20) {
		tree, entries := randomTree(seed, 200)

		excluded := newTestAggregator(ExcludeShared, tree).aggregate(entries, 4)
		once := newTestAggregator(CountOnce, tree).aggregate(entries, 4)

		assert.LessOrEqual(t, excluded.WithoutDuplicateLinks, once.WithoutDuplicateLinks)
		assert.LessOrEqual(t, once.WithoutDuplicateLinks, once.WithLinks)
		assert.Equal(t, excluded.WithLinks, once.WithLinks)

		if excluded.SharedFiles == 0 {
			assert.Equal(t, excluded.WithLinks, excluded.WithoutDuplicateLinks)
		}
	}
}

func TestAggregateWithoutSharedFilesTotalsAreEqual(t *testing.T) {
	tree := fakeTree{}
	entries := make([]walk.Entry, 0, 100)

	for i := range 100 {
		path := fmt.Sprintf("f%d", i)
		tree[path] = linkinfo.Metadata{Size: uint64(i * 10), Links: 1, ID: linkinfo.ID{Ino: uint64(i)}}
		entries = append(entries, walk.Entry{Path: path})
	}

	for _, policy := range Policies {
		totals := newTestAggregator(policy, tree).aggregate(entries, 8)

		assert.Equal(t, totals.WithLinks, totals.WithoutDuplicateLinks)
		assert.Zero(t, totals.SharedFiles)
	}
}

func TestAggregateSkipsFilesWithoutMetadata(t *testing.T) {
	tree := fakeTree{
		"a.txt": {Size: 100, Links: 1, ID: linkinfo.ID{Ino: 1}},
		"e.txt": {Size: 50, Links: 1, ID: linkinfo.ID{Ino: 2}},
	}
	entries := []walk.Entry{{Path: "a.txt"}, {Path: "vanished.txt"}, {Path: "e.txt"}}

	agg := newTestAggregator(ExcludeShared, tree)
	totals := agg.aggregate(entries, 2)

	assert.Equal(t, Totals{WithLinks: 150, WithoutDuplicateLinks: 150, Files: 2}, totals)
	assert.EqualValues(t, 1, agg.skipped.Load())
	assert.EqualValues(t, 2, agg.measured.Load())
	assert.EqualValues(t, 150, agg.bytes.Load())
}

func TestAggregateConcreteScenario(t *testing.T) {
	shared := linkinfo.Metadata{Size: 200, Links: 2, ID: linkinfo.ID{Ino: 2}}
	tree := fakeTree{
		"a.txt":   {Size: 100, Links: 1, ID: linkinfo.ID{Ino: 1}},
		"b.txt":   shared,
		"c.txt":   shared,
		"d/e.txt": {Size: 50, Links: 1, ID: linkinfo.ID{Ino: 3}},
	}
	entries := lo.Map(lo.Keys(tree), func(p string, _ int) walk.Entry { return walk.Entry{Path: p} })

	type scenario struct {
		policy   Policy
		expected Totals
	}

	scenarios := []scenario{
		{ExcludeShared, Totals{WithLinks: 550, WithoutDuplicateLinks: 150, Files: 4, SharedFiles: 2}},
		{CountOnce, Totals{WithLinks: 550, WithoutDuplicateLinks: 350, Files: 4, SharedFiles: 2}},
	}

	for _, s := range scenarios {
		t.Run(string(s.policy), func(t *testing.T) {
			assert.Equal(t, s.expected, newTestAggregator(s.policy, tree).aggregate(entries, 3))
		})
	}
}

func TestPolicyValidate(t *testing.T) {
	for _, p := range Policies {
		require.NoError(t, p.Validate())
	}

	assert.Error(t, Policy("count-twice").Validate())
}
