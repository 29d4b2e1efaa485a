package task

import (
	"regexp"
	"strings"
)

var (
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	priorityPattern = regexp.MustCompile(`^\([A-Z]\)$`)
)

// Parse breaks a todo.txt line into its fields. Tokens are classified by shape:
//
//   - "x" as the first token marks the task done; a date right after it is the
//     completion date.
//   - the first "(A)".."(Z)" token is the priority.
//   - the first remaining YYYY-MM-DD token is the creation date.
//   - "+name", "@name" and "key:value" tokens are the project, context and
//     special tag. When several tokens of one kind are present the last one
//     wins and the others stay in the description.
//   - everything else, in order, is the description.
//
// Parse never fails, so any line already in the file survives a rewrite. A
// description word that looks like a date or a tag is read as that field.
func Parse(line string) Task {
	tokens := strings.Fields(line)
	claimed := make([]bool, len(tokens))
	var t Task

	if len(tokens) > 0 && tokens[0] == "x" {
		t.Done = true
		claimed[0] = true
		if len(tokens) > 1 && IsDate(tokens[1]) {
			t.CompletionDate = tokens[1]
			claimed[1] = true
		}
	}

	if i := firstUnclaimed(tokens, claimed, isPriorityToken); i >= 0 {
		t.Priority = tokens[i][1:2]
		claimed[i] = true
	}
	if i := firstUnclaimed(tokens, claimed, IsDate); i >= 0 {
		t.CreationDate = tokens[i]
		claimed[i] = true
	}
	if i := lastUnclaimed(tokens, claimed, isProjectToken); i >= 0 {
		t.Project = tokens[i][1:]
		claimed[i] = true
	}
	if i := lastUnclaimed(tokens, claimed, isContextToken); i >= 0 {
		t.Context = tokens[i][1:]
		claimed[i] = true
	}
	if i := lastUnclaimed(tokens, claimed, isSpecialTagToken); i >= 0 {
		t.SpecialTag = tokens[i]
		claimed[i] = true
	}

	var desc []string
	for i, tok := range tokens {
		if !claimed[i] {
			desc = append(desc, tok)
		}
	}
	t.Description = strings.Join(desc, " ")
	return t
}

// String renders the task as a todo.txt line in canonical field order.
func (t Task) String() string {
	var parts []string
	if t.Done {
		parts = append(parts, "x")
		if t.CompletionDate != "" {
			parts = append(parts, t.CompletionDate)
		}
	}
	if t.Priority != "" {
		parts = append(parts, "("+t.Priority+")")
	}
	if t.CreationDate != "" {
		parts = append(parts, t.CreationDate)
	}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	if t.Project != "" {
		parts = append(parts, "+"+t.Project)
	}
	if t.Context != "" {
		parts = append(parts, "@"+t.Context)
	}
	if t.SpecialTag != "" {
		parts = append(parts, t.SpecialTag)
	}
	return strings.Join(parts, " ")
}

// IsDate reports whether s has the YYYY-MM-DD shape.
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}

func isPriorityToken(s string) bool {
	return priorityPattern.MatchString(s)
}

func isProjectToken(s string) bool {
	return len(s) > 1 && s[0] == '+'
}

func isContextToken(s string) bool {
	return len(s) > 1 && s[0] == '@'
}

func isSpecialTagToken(s string) bool {
	if s == "" || s[0] == '+' || s[0] == '@' {
		return false
	}
	i := strings.IndexByte(s, ':')
	return i > 0 && i < len(s)-1
}

func firstUnclaimed(tokens []string, claimed []bool, match func(string) bool) int {
	for i, tok := range tokens {
		if !claimed[i] && match(tok) {
			return i
		}
	}
	return -1
}

func lastUnclaimed(tokens []string, claimed []bool, match func(string) bool) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !claimed[i] && match(tokens[i]) {
			return i
		}
	}
	return -1
}
