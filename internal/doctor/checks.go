package doctor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leeovery/jadwal/internal/task"
)

// DateCheck reports dates that are not real calendar days and completion
// dates recorded without a creation date.
type DateCheck struct{}

func (c *DateCheck) Run(_ context.Context, lines []string) []CheckResult {
	const name = "Dates"
	var failures []CheckResult
	fail := func(n int, details, suggestion string) {
		failures = append(failures, CheckResult{
			Name:       name,
			Severity:   SeverityError,
			Details:    fmt.Sprintf("line %d: %s", n, details),
			Suggestion: suggestion,
		})
	}

	for i, line := range lines {
		t := task.Parse(line)
		for _, d := range []struct{ label, value string }{
			{"completion", t.CompletionDate},
			{"creation", t.CreationDate},
		} {
			if d.value == "" {
				continue
			}
			if _, err := time.Parse(task.DateLayout, d.value); err != nil {
				fail(i+1, fmt.Sprintf("%s date %s is not a calendar date", d.label, d.value),
					"Fix it with jadwal update --"+d.label+"-date")
			}
		}
		if t.CompletionDate != "" && t.CreationDate == "" {
			fail(i+1, "completion date without a creation date",
				"Add one with jadwal update --creation-date")
		}
	}

	if len(failures) == 0 {
		return pass(name)
	}
	return failures
}

// CanonicalFormCheck warns about lines whose fields are not in todo.txt
// order. jadwal reads them fine but rewrites them when they are updated.
type CanonicalFormCheck struct{}

func (c *CanonicalFormCheck) Run(_ context.Context, lines []string) []CheckResult {
	const name = "Canonical form"
	var failures []CheckResult
	for i, line := range lines {
		want := task.Parse(line).String()
		if want == line {
			continue
		}
		failures = append(failures, CheckResult{
			Name:       name,
			Severity:   SeverityWarning,
			Details:    fmt.Sprintf("line %d is stored as %q", i+1, line),
			Suggestion: fmt.Sprintf("jadwal will rewrite it as %q", want),
		})
	}
	if len(failures) == 0 {
		return pass(name)
	}
	return failures
}

// DuplicateCheck warns about identical lines. No fragment can tell them
// apart, so update, delete and done always stop at the ambiguity.
type DuplicateCheck struct{}

func (c *DuplicateCheck) Run(_ context.Context, lines []string) []CheckResult {
	const name = "Duplicates"
	seen := make(map[string][]int)
	var order []string
	for i, line := range lines {
		if _, ok := seen[line]; !ok {
			order = append(order, line)
		}
		seen[line] = append(seen[line], i+1)
	}

	var failures []CheckResult
	for _, line := range order {
		nums := seen[line]
		if len(nums) < 2 {
			continue
		}
		failures = append(failures, CheckResult{
			Name:       name,
			Severity:   SeverityWarning,
			Details:    fmt.Sprintf("%q appears on lines %s", line, joinInts(nums)),
			Suggestion: "Remove the extra copies from todo.txt by hand",
		})
	}
	if len(failures) == 0 {
		return pass(name)
	}
	return failures
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
