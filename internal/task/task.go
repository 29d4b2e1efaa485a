// Package task defines the todo.txt task model: the line codec, input
// validation, field merging and fragment matching used by the jadwal CLI.
package task

import (
	"time"
)

// DateLayout is the todo.txt date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Task is one todo.txt line broken into its fields. An empty string means the
// field is absent from the line.
type Task struct {
	Done           bool   `json:"done" yaml:"done"`
	CompletionDate string `json:"completion_date,omitempty" yaml:"completion_date,omitempty"`
	Priority       string `json:"priority,omitempty" yaml:"priority,omitempty"`
	CreationDate   string `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	Description    string `json:"description" yaml:"description"`
	Project        string `json:"project,omitempty" yaml:"project,omitempty"`
	Context        string `json:"context,omitempty" yaml:"context,omitempty"`
	SpecialTag     string `json:"special_tag,omitempty" yaml:"special_tag,omitempty"`
}

// Fields is a partially specified task, as supplied by add or update.
// A nil pointer means "not set"; a pointer to "" means the field is cleared.
type Fields struct {
	Description    *string
	Priority       *string
	CreationDate   *string
	CompletionDate *string
	Project        *string
	Context        *string
	SpecialTag     *string
}

// IsEmpty reports whether no field is set.
func (f Fields) IsEmpty() bool {
	return f.Description == nil && f.Priority == nil && f.CreationDate == nil &&
		f.CompletionDate == nil && f.Project == nil && f.Context == nil && f.SpecialTag == nil
}

// Today formats t as a todo.txt date in t's location.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// New builds a task for the add path. The description is required; the
// creation date defaults to today and a completion date marks the task done.
func New(f Fields, today string) (Task, error) {
	if f.Description == nil || *f.Description == "" {
		return Task{}, &ValidationError{Field: "description", Msg: "description is mandatory"}
	}

	t := Task{
		Description:    *f.Description,
		Priority:       value(f.Priority),
		CreationDate:   value(f.CreationDate),
		CompletionDate: value(f.CompletionDate),
		Project:        value(f.Project),
		Context:        value(f.Context),
		SpecialTag:     value(f.SpecialTag),
	}
	if t.CreationDate == "" {
		t.CreationDate = today
	}
	if t.CompletionDate != "" {
		t.Done = true
	}
	return t, nil
}

// Complete marks t as done. A completion date of today is recorded only when
// the task carries a creation date. The second return value is false if t was
// already done, in which case t is returned unchanged.
func Complete(t Task, today string) (Task, bool) {
	if t.Done {
		return t, false
	}
	t.Done = true
	if t.CreationDate != "" && t.CompletionDate == "" {
		t.CompletionDate = today
	}
	return t, true
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
