package doctor

import (
	"context"
	"strings"
	"testing"
)

func TestDateCheck(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		details []string
	}{
		{
			name:  "it passes valid dates",
			lines: []string{"x 2024-01-03 2024-01-01 Call mom", "(A) 2024-02-29 Leap day"},
		},
		{
			name:    "it rejects an impossible creation date",
			lines:   []string{"Buy milk", "2024-02-30 Pay rent"},
			details: []string{"line 2: creation date 2024-02-30 is not a calendar date"},
		},
		{
			name:    "it rejects an impossible completion date",
			lines:   []string{"x 2024-13-01 2024-01-01 Call mom"},
			details: []string{"line 1: completion date 2024-13-01 is not a calendar date"},
		},
		{
			name:    "it rejects a completion date without a creation date",
			lines:   []string{"x 2024-01-03 Call mom"},
			details: []string{"line 1: completion date without a creation date"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := (&DateCheck{}).Run(context.Background(), tt.lines)

			if len(tt.details) == 0 {
				if len(results) != 1 || !results[0].Passed {
					t.Fatalf("results = %+v, want a single pass", results)
				}
				return
			}
			if len(results) != len(tt.details) {
				t.Fatalf("got %d results, want %d: %+v", len(results), len(tt.details), results)
			}
			for i, r := range results {
				if r.Passed || r.Severity != SeverityError {
					t.Errorf("result %d = %+v, want an error", i, r)
				}
				if r.Details != tt.details[i] {
					t.Errorf("details = %q, want %q", r.Details, tt.details[i])
				}
			}
		})
	}
}

func TestCanonicalFormCheck(t *testing.T) {
	t.Run("it passes canonical lines", func(t *testing.T) {
		results := (&CanonicalFormCheck{}).Run(context.Background(), []string{
			"(A) 2024-01-01 Buy milk +errands @shop",
			"x Walk dog",
		})

		if len(results) != 1 || !results[0].Passed {
			t.Errorf("results = %+v, want a single pass", results)
		}
	})

	t.Run("it warns about out-of-order fields", func(t *testing.T) {
		results := (&CanonicalFormCheck{}).Run(context.Background(), []string{
			"Buy milk",
			"Buy bread +errands (B)",
		})

		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		r := results[0]
		if r.Passed || r.Severity != SeverityWarning {
			t.Errorf("result = %+v, want a warning", r)
		}
		if !strings.HasPrefix(r.Details, "line 2") {
			t.Errorf("details = %q, want line 2", r.Details)
		}
		if !strings.Contains(r.Suggestion, `"(B) Buy bread +errands"`) {
			t.Errorf("suggestion = %q, want the canonical line", r.Suggestion)
		}
	})
}

func TestDuplicateCheck(t *testing.T) {
	t.Run("it passes distinct lines", func(t *testing.T) {
		results := (&DuplicateCheck{}).Run(context.Background(), []string{"Buy milk", "Buy bread"})

		if len(results) != 1 || !results[0].Passed {
			t.Errorf("results = %+v, want a single pass", results)
		}
	})

	t.Run("it reports each group of identical lines once", func(t *testing.T) {
		results := (&DuplicateCheck{}).Run(context.Background(), []string{
			"Buy milk", "Walk dog", "Buy milk", "Walk dog", "Buy milk",
		})

		if len(results) != 2 {
			t.Fatalf("got %d results, want 2: %+v", len(results), results)
		}
		if want := `"Buy milk" appears on lines 1, 3, 5`; results[0].Details != want {
			t.Errorf("details = %q, want %q", results[0].Details, want)
		}
		if want := `"Walk dog" appears on lines 2, 4`; results[1].Details != want {
			t.Errorf("details = %q, want %q", results[1].Details, want)
		}
	})
}

func TestDefaultRunner(t *testing.T) {
	t.Run("it checks a healthy file without issues", func(t *testing.T) {
		report := DefaultRunner().RunAll(context.Background(), []string{
			"(A) 2024-01-01 Buy milk +errands",
			"x 2024-01-03 2024-01-01 Call mom @phone",
		})

		if len(report.Results) != 3 {
			t.Fatalf("got %d results, want one per check", len(report.Results))
		}
		if report.ErrorCount()+report.WarningCount() != 0 {
			t.Errorf("report = %+v, want no issues", report)
		}
	})
}
