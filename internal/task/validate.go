package task

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Normalize trims user input and applies the lenient forms the CLI accepts:
// lowercase priorities are upper-cased and a leading "+" or "@" on a project
// or context is dropped.
func Normalize(f Fields) Fields {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	f.Description = trim(f.Description)
	f.CreationDate = trim(f.CreationDate)
	f.CompletionDate = trim(f.CompletionDate)
	f.SpecialTag = trim(f.SpecialTag)

	if p := trim(f.Priority); p != nil {
		v := strings.ToUpper(strings.Trim(*p, "()"))
		f.Priority = &v
	}
	if p := trim(f.Project); p != nil {
		v := strings.TrimPrefix(*p, "+")
		f.Project = &v
	}
	if p := trim(f.Context); p != nil {
		v := strings.TrimPrefix(*p, "@")
		f.Context = &v
	}
	return f
}

// Validate checks user-supplied fields before they reach the codec. When
// requireDescription is set (the add path) the description is mandatory.
// Fields explicitly cleared to "" are accepted, except the description.
func Validate(f Fields, requireDescription bool) error {
	if f.Description == nil && requireDescription {
		return invalid("description", "description is mandatory")
	}
	if f.Description != nil {
		if err := validateDescription(*f.Description); err != nil {
			return err
		}
	}

	if v := value(f.Priority); v != "" {
		if len(v) != 1 || v[0] < 'A' || v[0] > 'Z' {
			return invalid("priority", "invalid priority %q, please use a single letter A-Z", v)
		}
	}

	if v := value(f.SpecialTag); v != "" {
		if !strings.Contains(v, ":") {
			return invalid("special_tag", "invalid special tag format, please use <tag>:<value>")
		}
		if !isSpecialTagToken(v) || hasSpace(v) {
			return invalid("special_tag", "invalid special tag %q, please use <tag>:<value> without spaces", v)
		}
	}

	if err := validateTag("project", value(f.Project)); err != nil {
		return err
	}
	if err := validateTag("context", value(f.Context)); err != nil {
		return err
	}

	if value(f.CompletionDate) != "" && value(f.CreationDate) == "" {
		return invalid("creation_date", "creation date is mandatory if completion date is present")
	}
	if err := validateDate("completion_date", "completion", value(f.CompletionDate)); err != nil {
		return err
	}
	if err := validateDate("creation_date", "creation", value(f.CreationDate)); err != nil {
		return err
	}
	return nil
}

func validateDate(field, label, v string) error {
	if v == "" {
		return nil
	}
	if !IsDate(v) {
		return invalid(field, "invalid %s date format %q, please use YYYY-MM-DD", label, v)
	}
	if _, err := time.Parse(DateLayout, v); err != nil {
		return invalid(field, "invalid %s date %q: not a calendar date", label, v)
	}
	return nil
}

func validateTag(field, v string) error {
	if v == "" {
		return nil
	}
	if hasSpace(v) {
		return invalid(field, "%s %q must be a single word", field, v)
	}
	return nil
}

// validateDescription rejects words the codec would read back as another
// field, so a stored description always parses into the same description.
func validateDescription(desc string) error {
	if strings.ContainsAny(desc, "\r\n") {
		return invalid("description", "description must not contain newlines")
	}

	words := strings.Fields(desc)
	if len(words) == 0 {
		return invalid("description", "description cannot be empty")
	}
	if words[0] == "x" {
		return invalid("description", "description must not start with %q, it marks a completed todo", "x")
	}
	for _, w := range words {
		var kind string
		switch {
		case isPriorityToken(w):
			kind = "priority"
		case IsDate(w):
			kind = "date"
		case isProjectToken(w):
			kind = "project tag"
		case isContextToken(w):
			kind = "context tag"
		case isSpecialTagToken(w):
			kind = "special tag"
		default:
			continue
		}
		return invalid("description", "description word %q would be read as a %s, use the matching option instead", w, kind)
	}
	return nil
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
