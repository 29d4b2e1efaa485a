package cli

import (
	"fmt"
	"io"

	toon "github.com/toon-format/toon-go"

	"github.com/leeovery/jadwal/internal/storage/sqlite"
	"github.com/leeovery/jadwal/internal/task"
)

// todoSchema is the column list of a TOON todo table.
const todoSchema = "{position,done,priority,creation_date,completion_date,description,project,context,special_tag,line}"

// ToonFormatter renders TOON (Token-Oriented Object Notation): compact
// tabular output aimed at scripts and agents.
type ToonFormatter struct{}

// FormatTaskList renders list output as a todos[N] table. An empty list keeps
// its header.
func (f *ToonFormatter) FormatTaskList(w io.Writer, rows []TaskRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "todos[0]"+todoSchema+":")
		return err
	}

	objects := make([]toon.Object, len(rows))
	for i, r := range rows {
		objects[i] = todoObject(r.Position, r.Task, r.Line)
	}
	return writeToon(w, toon.NewObject(toon.Field{Key: "todos", Value: objects}))
}

// FormatChange renders the action and the affected todo.
func (f *ToonFormatter) FormatChange(w io.Writer, c Change) error {
	fields := []toon.Field{
		{Key: "action", Value: c.Action},
		{Key: "message", Value: c.Message},
	}
	if c.Line != "" {
		fields = append(fields, toon.Field{Key: "todo", Value: todoObject(0, c.Task, c.Line)})
	}
	return writeToon(w, toon.NewObject(fields...))
}

// FormatStats renders the totals plus the priority and project tables.
func (f *ToonFormatter) FormatStats(w io.Writer, s sqlite.Stats) error {
	doc := toon.NewObject(
		toon.Field{Key: "stats", Value: toon.NewObject(
			toon.Field{Key: "total", Value: s.Total},
			toon.Field{Key: "pending", Value: s.Pending},
			toon.Field{Key: "done", Value: s.Done},
		)},
		toon.Field{Key: "by_priority", Value: countObjects("priority", s.ByPriority)},
		toon.Field{Key: "by_project", Value: countObjects("project", s.ByProject)},
	)
	return writeToon(w, doc)
}

// FormatMessage renders msg as plain text.
func (f *ToonFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func todoObject(position int, t task.Task, line string) toon.Object {
	fields := []toon.Field{}
	if position > 0 {
		fields = append(fields, toon.Field{Key: "position", Value: position})
	}
	fields = append(fields,
		toon.Field{Key: "done", Value: t.Done},
		toon.Field{Key: "priority", Value: t.Priority},
		toon.Field{Key: "creation_date", Value: t.CreationDate},
		toon.Field{Key: "completion_date", Value: t.CompletionDate},
		toon.Field{Key: "description", Value: t.Description},
		toon.Field{Key: "project", Value: t.Project},
		toon.Field{Key: "context", Value: t.Context},
		toon.Field{Key: "special_tag", Value: t.SpecialTag},
		toon.Field{Key: "line", Value: line},
	)
	return toon.NewObject(fields...)
}

func countObjects(key string, counts []sqlite.Count) []toon.Object {
	objects := make([]toon.Object, len(counts))
	for i, c := range counts {
		objects[i] = toon.NewObject(
			toon.Field{Key: key, Value: c.Key},
			toon.Field{Key: "count", Value: c.Count},
		)
	}
	return objects
}

func writeToon(w io.Writer, doc toon.Object) error {
	out, err := toon.MarshalString(doc)
	if err != nil {
		return fmt.Errorf("toon marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
