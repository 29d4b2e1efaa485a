package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leeovery/jadwal/internal/storage/sqlite"
)

// PrettyFormatter renders human-readable output for terminals. Colour comes
// from the renderer's profile, so an ASCII renderer yields plain text.
type PrettyFormatter struct {
	number    lipgloss.Style
	done      lipgloss.Style
	project   lipgloss.Style
	context   lipgloss.Style
	success   lipgloss.Style
	heading   lipgloss.Style
	priority  map[string]lipgloss.Style
	plainLine lipgloss.Style
}

// NewPrettyFormatter builds a PrettyFormatter whose styles render through r.
func NewPrettyFormatter(r *lipgloss.Renderer) *PrettyFormatter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &PrettyFormatter{
		number:  r.NewStyle().Faint(true),
		done:    r.NewStyle().Faint(true).Strikethrough(true),
		project: r.NewStyle().Foreground(lipgloss.Color("14")),
		context: r.NewStyle().Foreground(lipgloss.Color("13")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		heading: r.NewStyle().Bold(true),
		priority: map[string]lipgloss.Style{
			"A": r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			"B": r.NewStyle().Foreground(lipgloss.Color("11")),
			"C": r.NewStyle().Foreground(lipgloss.Color("10")),
		},
		plainLine: r.NewStyle(),
	}
}

// FormatTaskList prints one numbered line per task. An empty list prints
// "No todos found.".
func (f *PrettyFormatter) FormatTaskList(w io.Writer, rows []TaskRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No todos found.")
		return err
	}

	width := len(fmt.Sprint(rows[len(rows)-1].Position))
	for _, r := range rows {
		num := f.number.Render(fmt.Sprintf("%*d", width, r.Position))
		if _, err := fmt.Fprintf(w, "%s  %s\n", num, f.renderLine(r)); err != nil {
			return err
		}
	}
	return nil
}

// FormatChange prints the success message followed by the affected line.
func (f *PrettyFormatter) FormatChange(w io.Writer, c Change) error {
	if _, err := fmt.Fprintln(w, f.success.Render(c.Message)); err != nil {
		return err
	}
	if c.Line == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "  %s\n", f.renderLine(TaskRow{Line: c.Line, Task: c.Task}))
	return err
}

// FormatStats prints totals, then pending counts per priority and project.
func (f *PrettyFormatter) FormatStats(w io.Writer, s sqlite.Stats) error {
	fmt.Fprintf(w, "%s %d\n", f.heading.Render("Total:  "), s.Total)
	fmt.Fprintf(w, "  Pending: %d\n", s.Pending)
	fmt.Fprintf(w, "  Done:    %d\n", s.Done)

	if len(s.ByPriority) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, f.heading.Render("Pending by priority:"))
		for _, c := range s.ByPriority {
			label := "(" + c.Key + ")"
			fmt.Fprintf(w, "  %-14s %d\n", f.priorityStyle(c.Key).Render(label), c.Count)
		}
	}

	if len(s.ByProject) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, f.heading.Render("Pending by project:"))
		for _, c := range s.ByProject {
			fmt.Fprintf(w, "  %-14s %d\n", f.project.Render("+"+c.Key), c.Count)
		}
	}
	return nil
}

// FormatMessage prints msg.
func (f *PrettyFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func (f *PrettyFormatter) renderLine(r TaskRow) string {
	if r.Task.Done {
		return f.done.Render(r.Line)
	}
	base := f.priorityStyle(r.Task.Priority)
	words := strings.Fields(r.Line)
	for i, word := range words {
		switch {
		case len(word) > 1 && word[0] == '+':
			words[i] = f.project.Render(word)
		case len(word) > 1 && word[0] == '@':
			words[i] = f.context.Render(word)
		default:
			words[i] = base.Render(word)
		}
	}
	return strings.Join(words, " ")
}

func (f *PrettyFormatter) priorityStyle(p string) lipgloss.Style {
	if s, ok := f.priority[p]; ok {
		return s
	}
	return f.plainLine
}
