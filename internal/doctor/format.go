package doctor

import (
	"fmt"
	"io"
)

// FormatReport writes one line per result (✓ for a pass, ✗ for a failure
// followed by its suggestion) and a summary count of issues.
func FormatReport(w io.Writer, report Report) {
	issues := 0
	for _, r := range report.Results {
		if r.Passed {
			fmt.Fprintf(w, "✓ %s: OK\n", r.Name)
			continue
		}
		fmt.Fprintf(w, "✗ %s: %s\n", r.Name, r.Details)
		if r.Suggestion != "" {
			fmt.Fprintf(w, "  → %s\n", r.Suggestion)
		}
		issues++
	}

	if len(report.Results) > 0 {
		fmt.Fprint(w, "\n")
	}

	switch issues {
	case 0:
		fmt.Fprint(w, "No issues found.\n")
	case 1:
		fmt.Fprint(w, "1 issue found.\n")
	default:
		fmt.Fprintf(w, "%d issues found.\n", issues)
	}
}

// ExitCode returns 1 when the report has error-severity failures and 0
// otherwise. Warnings alone do not fail the run.
func ExitCode(report Report) int {
	if report.HasErrors() {
		return 1
	}
	return 0
}
