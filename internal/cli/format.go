package cli

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/leeovery/jadwal/internal/storage/sqlite"
	"github.com/leeovery/jadwal/internal/task"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatToon   Format = "toon"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// TaskRow is one listed line. Position is the 1-based line number among the
// stored tasks.
type TaskRow struct {
	Position int
	Line     string
	Task     task.Task
}

// Change describes the outcome of add, update, delete or done.
type Change struct {
	Action  string
	Message string
	Line    string
	Task    task.Task
}

// Formatter renders command output.
type Formatter interface {
	// FormatTaskList renders the result of list.
	FormatTaskList(w io.Writer, rows []TaskRow) error
	// FormatChange renders the line touched by a mutating command.
	FormatChange(w io.Writer, c Change) error
	// FormatStats renders the result of stats.
	FormatStats(w io.Writer, s sqlite.Stats) error
	// FormatMessage renders a plain status message.
	FormatMessage(w io.Writer, msg string) error
}

// DetectTTY reports whether w is a terminal.
func DetectTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ResolveFormat picks the output format from the format flags, falling back
// to pretty on a terminal and TOON otherwise. At most one flag may be set.
func ResolveFormat(toonFlag, prettyFlag, jsonFlag, yamlFlag, isTTY bool) (Format, error) {
	count := 0
	for _, set := range []bool{toonFlag, prettyFlag, jsonFlag, yamlFlag} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", errors.New("cannot specify multiple format flags (--toon, --pretty, --json, --yaml)")
	}

	switch {
	case toonFlag:
		return FormatToon, nil
	case prettyFlag:
		return FormatPretty, nil
	case jsonFlag:
		return FormatJSON, nil
	case yamlFlag:
		return FormatYAML, nil
	case isTTY:
		return FormatPretty, nil
	default:
		return FormatToon, nil
	}
}

// newFormatter returns the Formatter for format. r styles pretty output.
func newFormatter(format Format, r *lipgloss.Renderer) Formatter {
	switch format {
	case FormatPretty:
		return NewPrettyFormatter(r)
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &ToonFormatter{}
	}
}
