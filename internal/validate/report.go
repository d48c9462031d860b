package validate

import (
	"fmt"
	"io"
)

// Fprint writes a human-readable validation report to w. Errors come before
// warnings, each in the order they were recorded.
func (r *Result) Fprint(w io.Writer) {
	status := "PASS"
	if !r.Success {
		status = "FAIL"
	}

	fmt.Fprintf(w, "Validation %s (run %s)\n", status, r.RunID)
	fmt.Fprintf(w, "  Total assets:   %d\n", r.Stats.TotalAssets)
	fmt.Fprintf(w, "  Valid assets:   %d\n", r.Stats.ValidAssets)
	fmt.Fprintf(w, "  Invalid assets: %d\n", r.Stats.InvalidAssets)
	fmt.Fprintf(w, "  Missing files:  %d\n", r.Stats.MissingFiles)
	fmt.Fprintf(w, "  Orphaned files: %d\n", r.Stats.OrphanedFiles)
	fmt.Fprintf(w, "  Elapsed:        %dms\n", r.DurationMillis)

	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(r.Errors))
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(r.Warnings))
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}
