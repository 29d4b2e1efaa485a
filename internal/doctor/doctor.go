// Package doctor runs read-only diagnostic checks over the lines of a
// todo.txt file. Every registered check runs, even after earlier failures.
package doctor

import "context"

// Severity indicates whether a check failure is an error or a warning.
// Errors affect the exit code; warnings do not.
type Severity string

const (
	// SeverityError marks a line that breaks the todo.txt invariants.
	SeverityError Severity = "error"
	// SeverityWarning marks a suspicious but usable line.
	SeverityWarning Severity = "warning"
)

// CheckResult holds the outcome of a single check. A passing check has Passed
// true and empty Details and Suggestion.
type CheckResult struct {
	// Name is the check's display label (e.g. "Dates").
	Name     string
	Passed   bool
	Severity Severity
	// Details describes what is wrong, including the 1-based line number.
	Details    string
	Suggestion string
}

// Check inspects the lines of a todo file. A passing check returns exactly
// one result with Passed true; a failing check returns one result per
// problem.
type Check interface {
	Run(ctx context.Context, lines []string) []CheckResult
}

// Report collects the results of a diagnostic run in registration order.
type Report struct {
	Results []CheckResult
}

// HasErrors reports whether any error-severity check failed.
func (r *Report) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of failed error-severity results.
func (r *Report) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of failed warning-severity results.
func (r *Report) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Report) count(s Severity) int {
	n := 0
	for _, result := range r.Results {
		if !result.Passed && result.Severity == s {
			n++
		}
	}
	return n
}

// Runner holds an ordered list of checks.
type Runner struct {
	checks []Check
}

// NewRunner returns a Runner with no checks registered.
func NewRunner() *Runner {
	return &Runner{}
}

// DefaultRunner returns a Runner with every built-in check registered.
func DefaultRunner() *Runner {
	r := NewRunner()
	r.Register(&DateCheck{})
	r.Register(&CanonicalFormCheck{})
	r.Register(&DuplicateCheck{})
	return r
}

// Register appends a check.
func (r *Runner) Register(c Check) {
	r.checks = append(r.checks, c)
}

// RunAll executes every registered check against lines.
func (r *Runner) RunAll(ctx context.Context, lines []string) Report {
	var results []CheckResult
	for _, c := range r.checks {
		if ctx.Err() != nil {
			break
		}
		results = append(results, c.Run(ctx, lines)...)
	}
	return Report{Results: results}
}

func pass(name string) []CheckResult {
	return []CheckResult{{Name: name, Passed: true, Severity: SeverityError}}
}
