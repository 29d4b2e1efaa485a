package cli

import (
	"github.com/spf13/cobra"

	"github.com/leeovery/jadwal/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a new todo",
		Example: "  jadwal add -d \"Buy milk\" -p A -P errands\n  jadwal add -d \"Call mom\" -t phone -s due:2024-02-01",
		Args:    cobra.NoArgs,
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			f, err := ff.fields(cmd.Flags())
			if err != nil {
				return err
			}
			return a.runAdd(f)
		}),
	}
	ff.register(cmd.Flags(), "Description of the todo (required)")
	return cmd
}

// runAdd validates f, builds the new todo and appends it to the file.
func (a *App) runAdd(f task.Fields) error {
	if err := task.Validate(f, true); err != nil {
		return err
	}
	t, err := task.New(f, a.today())
	if err != nil {
		return err
	}
	line := t.String()

	store, err := a.openStore()
	if err != nil {
		return err
	}
	err = store.Mutate(func(lines []string) ([]string, error) {
		return append(lines, line), nil
	})
	if err != nil {
		return err
	}
	a.logger.Debug("added todo", "line", line)

	return a.formatter.FormatChange(a.Stdout, Change{
		Action:  "added",
		Message: "Todo added successfully.",
		Line:    line,
		Task:    t,
	})
}
