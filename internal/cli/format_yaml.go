package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/leeovery/jadwal/internal/storage/sqlite"
)

// YAMLFormatter renders YAML documents with the same shape as JSONFormatter.
type YAMLFormatter struct{}

// FormatTaskList renders list output as a YAML sequence.
func (f *YAMLFormatter) FormatTaskList(w io.Writer, rows []TaskRow) error {
	return writeYAML(w, todoList(rows))
}

// FormatChange renders the action and the affected todo.
func (f *YAMLFormatter) FormatChange(w io.Writer, c Change) error {
	return writeYAML(w, changeDoc(c))
}

// FormatStats renders the stats mapping.
func (f *YAMLFormatter) FormatStats(w io.Writer, s sqlite.Stats) error {
	return writeYAML(w, statsDoc(s))
}

// FormatMessage renders message: msg.
func (f *YAMLFormatter) FormatMessage(w io.Writer, msg string) error {
	return writeYAML(w, jsonMessage{Message: msg})
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml marshal error: %w", err)
	}
	return enc.Close()
}
