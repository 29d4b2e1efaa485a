package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leeovery/jadwal/internal/storage/sqlite"
	"github.com/leeovery/jadwal/internal/task"
)

// jsonTodo is the JSON and YAML shape of a todo.
type jsonTodo struct {
	Position int `json:"position,omitempty" yaml:"position,omitempty"`
	task.Task `yaml:",inline"`
	Line      string `json:"line" yaml:"line"`
}

// jsonChange is the JSON and YAML shape of a mutation result.
type jsonChange struct {
	Action  string    `json:"action" yaml:"action"`
	Message string    `json:"message" yaml:"message"`
	Todo    *jsonTodo `json:"todo,omitempty" yaml:"todo,omitempty"`
}

// jsonMessage is the JSON and YAML shape of a plain message.
type jsonMessage struct {
	Message string `json:"message" yaml:"message"`
}

func todoList(rows []TaskRow) []jsonTodo {
	todos := make([]jsonTodo, 0, len(rows))
	for _, r := range rows {
		todos = append(todos, jsonTodo{Position: r.Position, Task: r.Task, Line: r.Line})
	}
	return todos
}

func changeDoc(c Change) jsonChange {
	doc := jsonChange{Action: c.Action, Message: c.Message}
	if c.Line != "" {
		doc.Todo = &jsonTodo{Task: c.Task, Line: c.Line}
	}
	return doc
}

func statsDoc(s sqlite.Stats) sqlite.Stats {
	if s.ByPriority == nil {
		s.ByPriority = []sqlite.Count{}
	}
	if s.ByProject == nil {
		s.ByProject = []sqlite.Count{}
	}
	return s
}

// JSONFormatter renders 2-space indented JSON with snake_case keys. Lists are
// always arrays, never null.
type JSONFormatter struct{}

// FormatTaskList renders list output as a JSON array.
func (f *JSONFormatter) FormatTaskList(w io.Writer, rows []TaskRow) error {
	return writeJSON(w, todoList(rows))
}

// FormatChange renders the action and the affected todo.
func (f *JSONFormatter) FormatChange(w io.Writer, c Change) error {
	return writeJSON(w, changeDoc(c))
}

// FormatStats renders the stats object.
func (f *JSONFormatter) FormatStats(w io.Writer, s sqlite.Stats) error {
	return writeJSON(w, statsDoc(s))
}

// FormatMessage renders {"message": msg}.
func (f *JSONFormatter) FormatMessage(w io.Writer, msg string) error {
	return writeJSON(w, jsonMessage{Message: msg})
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
