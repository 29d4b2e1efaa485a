package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leeovery/jadwal/internal/storage"
	"github.com/leeovery/jadwal/internal/task"
)

// errChanged is returned when the confirmed line is gone by the time the
// write lock is taken.
var errChanged = errors.New("the todo file changed while waiting for confirmation, nothing was written")

func (a *App) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <description>",
		Short:   "Delete a todo",
		Example: "  jadwal delete \"Buy milk\"\n  jadwal delete milk --yes",
		Args:    fragmentArg("delete"),
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			return a.runDelete(args[0], yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (a *App) doneCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "done <description>",
		Short:   "Mark a todo as done",
		Example: "  jadwal done \"Walk dog\"",
		Args:    fragmentArg("mark as done"),
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			return a.runDone(args[0], yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// fragmentArg requires exactly one non-empty description argument. A missing
// argument is an operation error, not a usage error.
func fragmentArg(verb string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 || args[0] == "" {
			return &opError{err: fmt.Errorf("please provide the description of the todo to %s", verb)}
		}
		return nil
	}
}

func (a *App) runDelete(fragment string, yes bool) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	m, ok, err := a.resolveConfirmed(store, fragment, "Delete todo %q?", yes)
	if err != nil || !ok {
		return err
	}

	err = store.Mutate(func(lines []string) ([]string, error) {
		cur, err := reresolve(lines, fragment, m)
		if err != nil {
			return nil, err
		}
		return slices.Delete(lines, cur.Index, cur.Index+1), nil
	})
	if err != nil {
		return err
	}
	a.logger.Debug("deleted todo", "line", m.Line)

	return a.formatter.FormatChange(a.Stdout, Change{
		Action:  "deleted",
		Message: "Todo deleted successfully.",
		Line:    m.Line,
		Task:    task.Parse(m.Line),
	})
}

func (a *App) runDone(fragment string, yes bool) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}

	m, err := task.Resolve(store.Load(), fragment)
	if err != nil {
		return err
	}
	if current := task.Parse(m.Line); current.Done {
		return a.formatter.FormatChange(a.Stdout, Change{
			Action:  "unchanged",
			Message: "Todo is already done.",
			Line:    m.Line,
			Task:    current,
		})
	}

	ok, err := a.confirm(fmt.Sprintf("Mark todo %q as done?", m.Line), yes)
	if err != nil || !ok {
		return err
	}

	var (
		completed task.Task
		line      string
	)
	err = store.Mutate(func(lines []string) ([]string, error) {
		cur, err := reresolve(lines, fragment, m)
		if err != nil {
			return nil, err
		}
		completed, _ = task.Complete(task.Parse(cur.Line), a.today())
		line = completed.String()
		lines[cur.Index] = line
		return lines, nil
	})
	if err != nil {
		return err
	}
	a.logger.Debug("completed todo", "line", line)

	return a.formatter.FormatChange(a.Stdout, Change{
		Action:  "done",
		Message: "Todo marked as done.",
		Line:    line,
		Task:    completed,
	})
}

// resolveConfirmed resolves fragment against the current file and asks for
// confirmation, formatting prompt with the matched line. ok is false when
// the user declined.
func (a *App) resolveConfirmed(store *storage.Store, fragment, prompt string, yes bool) (task.Match, bool, error) {
	m, err := task.Resolve(store.Load(), fragment)
	if err != nil {
		return task.Match{}, false, err
	}
	ok, err := a.confirm(fmt.Sprintf(prompt, m.Line), yes)
	return m, ok, err
}

// confirm asks prompt unless yes is set and prints "Aborted." on decline.
func (a *App) confirm(prompt string, yes bool) (bool, error) {
	ok, err := a.confirmer(yes).Confirm(prompt)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(a.Stderr, "Aborted.")
	}
	return ok, nil
}

// reresolve repeats the lookup under the write lock and checks that it still
// lands on the confirmed line.
func reresolve(lines []string, fragment string, confirmed task.Match) (task.Match, error) {
	cur, err := task.Resolve(lines, fragment)
	if err != nil {
		return task.Match{}, err
	}
	if cur.Line != confirmed.Line {
		return task.Match{}, errChanged
	}
	return cur, nil
}
