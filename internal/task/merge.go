package task

import "strings"

// Merge overlays the fields set in f onto existing, one field at a time. A
// field set to "" clears it. Setting a completion date also marks the task
// done; the description falls back to the existing one when f leaves it out.
func Merge(existing Task, f Fields) Task {
	merged := existing

	override(&merged.Description, f.Description)
	override(&merged.Priority, f.Priority)
	override(&merged.CreationDate, f.CreationDate)
	override(&merged.Project, f.Project)
	override(&merged.Context, f.Context)
	override(&merged.SpecialTag, f.SpecialTag)

	if f.CompletionDate != nil {
		merged.CompletionDate = *f.CompletionDate
		if merged.CompletionDate != "" {
			merged.Done = true
		}
	}
	return merged
}

// Apply validates f in the light of existing and merges it, for the update
// path. A completion date may only end up on a task that keeps a creation date,
// and the merged task must read back unchanged from its line.
func Apply(existing Task, f Fields) (Task, error) {
	check := f
	if value(f.CompletionDate) != "" && f.CreationDate == nil {
		check.CreationDate = &existing.CreationDate
	}
	if f.CreationDate != nil && *f.CreationDate == "" && f.CompletionDate == nil && existing.CompletionDate != "" {
		return existing, invalid("creation_date", "creation date is mandatory if completion date is present")
	}
	if err := Validate(check, false); err != nil {
		return existing, err
	}

	merged := Merge(existing, f)
	if err := checkStorable(merged); err != nil {
		return existing, err
	}
	return merged, nil
}

// checkStorable rejects a task whose line would parse into a different task.
// Clearing a neighbouring field can leave a date or an "x" where the codec
// claims it for another field.
func checkStorable(t Task) error {
	if Parse(t.String()) == t {
		return nil
	}
	switch {
	case t.Done && t.CompletionDate == "" && t.CreationDate != "" && t.Priority == "":
		return invalid("completion_date", "a completed todo with a creation date needs a completion date, set one instead of clearing it")
	case !t.Done && t.Priority == "" && t.CreationDate == "" && firstWord(t.Description) == "x":
		return invalid("description", "description would start with %q and mark the todo completed, change the description as well", "x")
	}
	return invalid("description", "the updated todo would be read back as %q, change the description as well", Parse(t.String()).String())
}

func override(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func firstWord(s string) string {
	if words := strings.Fields(s); len(words) > 0 {
		return words[0]
	}
	return ""
}
