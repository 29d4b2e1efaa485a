package doctor

import (
	"bytes"
	"testing"
)

func TestFormatReport(t *testing.T) {
	t.Run("it prints only the summary for an empty report", func(t *testing.T) {
		var buf bytes.Buffer

		FormatReport(&buf, Report{})

		if got, want := buf.String(), "No issues found.\n"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("it marks passing checks OK", func(t *testing.T) {
		var buf bytes.Buffer

		FormatReport(&buf, Report{Results: []CheckResult{
			{Name: "Dates", Passed: true, Severity: SeverityError},
			{Name: "Duplicates", Passed: true, Severity: SeverityError},
		}})

		want := "✓ Dates: OK\n✓ Duplicates: OK\n\nNo issues found.\n"
		if got := buf.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("it prints failures with suggestions and counts them", func(t *testing.T) {
		var buf bytes.Buffer

		FormatReport(&buf, Report{Results: []CheckResult{
			{Name: "Dates", Severity: SeverityError, Details: "line 1: bad", Suggestion: "Fix it"},
			{Name: "Duplicates", Severity: SeverityWarning, Details: "twice"},
		}})

		want := "✗ Dates: line 1: bad\n  → Fix it\n✗ Duplicates: twice\n\n2 issues found.\n"
		if got := buf.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("it uses the singular for one issue", func(t *testing.T) {
		var buf bytes.Buffer

		FormatReport(&buf, Report{Results: []CheckResult{
			{Name: "Dates", Severity: SeverityError, Details: "bad"},
		}})

		if got, want := buf.String(), "✗ Dates: bad\n\n1 issue found.\n"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
