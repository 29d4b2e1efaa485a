package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/leeovery/jadwal/internal/task"
)

// Field flag names, shared by add and update.
const (
	flagDescription    = "description"
	flagPriority       = "priority"
	flagCreationDate   = "creation-date"
	flagCompletionDate = "completion-date"
	flagProject        = "project"
	flagContext        = "context"
	flagSpecialTag     = "special-tag"
)

// fieldFlags binds the todo field options of add and update.
type fieldFlags struct {
	description    string
	priority       string
	creationDate   string
	completionDate string
	project        string
	context        string
	specialTag     string
	clear          []string
}

func (ff *fieldFlags) register(fs *pflag.FlagSet, descUsage string) {
	fs.StringVarP(&ff.description, flagDescription, "d", "", descUsage)
	fs.StringVarP(&ff.priority, flagPriority, "p", "", "Priority, a single letter A-Z")
	fs.StringVarP(&ff.creationDate, flagCreationDate, "c", "", "Creation date as YYYY-MM-DD (default today)")
	fs.StringVarP(&ff.completionDate, flagCompletionDate, "C", "", "Completion date as YYYY-MM-DD; marks the todo done")
	fs.StringVarP(&ff.project, flagProject, "P", "", "Project tag, without the leading +")
	fs.StringVarP(&ff.context, flagContext, "t", "", "Context tag, without the leading @")
	fs.StringVarP(&ff.specialTag, flagSpecialTag, "s", "", "Special tag as <tag>:<value>")
}

// fields returns the options given on the command line. Flags that were not
// passed stay nil; --clear sets a field to "".
func (ff *fieldFlags) fields(fs *pflag.FlagSet) (task.Fields, error) {
	var f task.Fields
	targets := map[string]struct {
		dst **string
		val string
	}{
		flagDescription:    {&f.Description, ff.description},
		flagPriority:       {&f.Priority, ff.priority},
		flagCreationDate:   {&f.CreationDate, ff.creationDate},
		flagCompletionDate: {&f.CompletionDate, ff.completionDate},
		flagProject:        {&f.Project, ff.project},
		flagContext:        {&f.Context, ff.context},
		flagSpecialTag:     {&f.SpecialTag, ff.specialTag},
	}
	for name, t := range targets {
		if fs.Changed(name) {
			v := t.val
			*t.dst = &v
		}
	}

	for _, name := range ff.clear {
		name = strings.TrimSpace(name)
		t, ok := targets[name]
		if !ok || name == flagDescription {
			return task.Fields{}, fmt.Errorf("cannot clear %q, use one of: %s", name, clearable)
		}
		if fs.Changed(name) {
			return task.Fields{}, fmt.Errorf("cannot both set and clear %s", name)
		}
		empty := ""
		*t.dst = &empty
	}
	return task.Normalize(f), nil
}

var clearable = strings.Join([]string{
	flagPriority, flagCreationDate, flagCompletionDate, flagProject, flagContext, flagSpecialTag,
}, ", ")
