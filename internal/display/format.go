// Package display renders the run banner and the end-of-run summary.
package display

import (
	"fmt"
	"os"
	"time"

	"github.com/AlexGiov/file-renamer/internal/engine"
	"github.com/AlexGiov/file-renamer/internal/term"
)

// FormatDuration returns a compact human label: "45s", "1m 32s", "1h 2m".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// PrintSummary writes the end-of-run tally to stdout. In dry-run mode the
// renamed count is labeled as pending rather than performed.
func PrintSummary(s engine.Stats, elapsed time.Duration, dryRun bool) {
	renamedLabel := "Renamed"
	if dryRun {
		renamedLabel = "Would rename"
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "%s=== Summary ===%s\n", term.Cyan, term.NC)
	fmt.Fprintf(os.Stdout, "  Files processed: %d\n", s.Total)
	fmt.Fprintf(os.Stdout, "  %s%s: %d%s\n", term.Green, renamedLabel, s.Renamed, term.NC)
	fmt.Fprintf(os.Stdout, "  Already safe:    %d\n", s.AlreadySafe)
	fmt.Fprintf(os.Stdout, "  System files:    %d\n", s.SystemFiles)
	fmt.Fprintf(os.Stdout, "  Duplicates:      %d\n", s.Duplicates)
	if s.Unaudited > 0 {
		fmt.Fprintf(os.Stdout, "  %sUnaudited:       %d%s\n", term.Yellow, s.Unaudited, term.NC)
	}
	if s.Errors > 0 {
		fmt.Fprintf(os.Stdout, "  %sErrors:          %d%s\n", term.Red, s.Errors, term.NC)
	}
	fmt.Fprintf(os.Stdout, "  Elapsed:         %s\n", FormatDuration(elapsed))
}
