package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/linkstat/internal/linkstat"
)

func sampleStats() *linkstat.Stats {
	return &linkstat.Stats{
		Root:                       "/data/osu",
		TotalWithLinks:             550,
		TotalWithoutDuplicateLinks: 150,
		FileCount:                  4,
		SharedCount:                2,
		Policy:                     linkstat.ExcludeShared,
		Elapsed:                    3 * time.Millisecond,
	}
}

func TestPrintTable(t *testing.T) {
	type scenario struct {
		name       string
		mutate     func(*linkstat.Stats)
		contains   []string
		notContain []string
	}

	scenarios := []scenario{
		{
			name:   "plain",
			mutate: func(*linkstat.Stats) {},
			contains: []string{
				"/data/osu",
				"exclude-shared",
				"550 B (550 bytes)",
				"150 B (150 bytes)",
				"400 B (400 bytes)",
				"Hard-linked files:",
			},
			notContain: []string{"Skipped", "Note:"},
		},
		{
			name: "skips and degraded",
			mutate: func(s *linkstat.Stats) {
				s.SkippedDirs = 2
				s.Degraded = true
				s.TotalWithLinks = 3 << 30
			},
			contains: []string{"Skipped directories:", "Skipped files:", "Note:", "3.0 GiB"},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			stats := sampleStats()
			s.mutate(stats)

			var buf bytes.Buffer
			require.NoError(t, PrintTable(stats, &buf))

			for _, want := range s.contains {
				assert.Contains(t, buf.String(), want)
			}

			for _, unwanted := range s.notContain {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(sampleStats(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.EqualValues(t, 550, decoded["total_with_links"])
	assert.EqualValues(t, 150, decoded["total_without_duplicate_links"])
	assert.Equal(t, "exclude-shared", decoded["policy"])
	assert.Equal(t, false, decoded["degraded"])
}
