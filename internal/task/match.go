package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a fragment matches no stored line.
var ErrNotFound = errors.New("no todo found with the given description")

// Match is a stored line that contains the searched fragment.
type Match struct {
	Index int    `json:"index" yaml:"index"`
	Line  string `json:"line" yaml:"line"`
}

// AmbiguousError is returned when a fragment matches more than one line.
// The mutation is aborted and Matches lists the conflicting lines.
type AmbiguousError struct {
	Fragment string
	Matches  []Match
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%d todos match %q, aborted; please refine your search", len(e.Matches), e.Fragment)
}

// FindMatches returns every line containing fragment (case-sensitive), in
// collection order.
func FindMatches(lines []string, fragment string) []Match {
	var matches []Match
	for i, line := range lines {
		if strings.Contains(line, fragment) {
			matches = append(matches, Match{Index: i, Line: line})
		}
	}
	return matches
}

// Resolve locates the single line matching fragment. Zero matches yield
// ErrNotFound and two or more yield an *AmbiguousError.
func Resolve(lines []string, fragment string) (Match, error) {
	matches := FindMatches(lines, fragment)
	switch len(matches) {
	case 0:
		return Match{}, fmt.Errorf("%w: %q", ErrNotFound, fragment)
	case 1:
		return matches[0], nil
	default:
		return Match{}, &AmbiguousError{Fragment: fragment, Matches: matches}
	}
}
