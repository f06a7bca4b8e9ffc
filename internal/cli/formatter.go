package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/linkstat/internal/linkstat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *linkstat.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// formatSize renders a byte count as "1.2 GiB (1288490188 bytes)".
func formatSize(size uint64) string {
	return fmt.Sprintf("%s (%d bytes)", humanize.IBytes(size), size)
}

// PrintTable outputs statistics in human-readable table format.
func PrintTable(stats *linkstat.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nPath:\t%s\n", stats.Root)
	fmt.Fprintf(w, "Policy:\t%s\n", stats.Policy)

	fmt.Fprintln(w, "\nSizes:\t\t")
	fmt.Fprintf(w, "Total size (with hard links):\t%s\n", formatSize(stats.TotalWithLinks))
	fmt.Fprintf(w, "Actual size (without hard links):\t%s\n", formatSize(stats.TotalWithoutDuplicateLinks))
	fmt.Fprintf(w, "Difference:\t%s\n", formatSize(stats.TotalWithLinks-stats.TotalWithoutDuplicateLinks))

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\n", stats.FileCount)
	fmt.Fprintf(w, "Hard-linked files:\t%d\n", stats.SharedCount)

	if stats.SkippedDirs > 0 || stats.SkippedFiles > 0 {
		fmt.Fprintf(w, "Skipped directories:\t%d\n", stats.SkippedDirs)
		fmt.Fprintf(w, "Skipped files:\t%d\n", stats.SkippedFiles)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)

	if stats.Degraded {
		fmt.Fprintln(w, "\nNote: this platform reports no hard-link counts; every file counts as unshared.")
	}

	return w.Flush()
}
