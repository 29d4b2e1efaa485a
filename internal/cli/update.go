package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/leeovery/jadwal/internal/task"
)

func (a *App) updateCmd() *cobra.Command {
	var (
		ff       fieldFlags
		fragment string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing todo",
		Long: "Update the single todo whose line contains the --old-description text. " +
			"Only the options you pass change; --clear removes fields.",
		Example: "  jadwal update -o \"Buy milk\" -p B\n  jadwal update -o \"Buy milk\" --clear project,context",
		Args:    cobra.NoArgs,
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("old-description") || fragment == "" {
				return errors.New("please provide the old description using --old-description or -o")
			}
			f, err := ff.fields(cmd.Flags())
			if err != nil {
				return err
			}
			return a.runUpdate(fragment, f)
		}),
	}
	cmd.Flags().StringVarP(&fragment, "old-description", "o", "", "Text identifying the todo to update (required)")
	ff.register(cmd.Flags(), "New description of the todo")
	cmd.Flags().StringSliceVar(&ff.clear, "clear", nil, "Fields to remove: "+clearable)
	return cmd
}

// runUpdate merges f into the one todo matching fragment.
func (a *App) runUpdate(fragment string, f task.Fields) error {
	if f.IsEmpty() {
		return errors.New("nothing to update, pass at least one field option")
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}

	var (
		updated task.Task
		line    string
	)
	err = store.Mutate(func(lines []string) ([]string, error) {
		m, err := task.Resolve(lines, fragment)
		if err != nil {
			return nil, err
		}
		updated, err = task.Apply(task.Parse(m.Line), f)
		if err != nil {
			return nil, err
		}
		line = updated.String()
		a.logger.Debug("updating todo", "from", m.Line, "to", line)
		lines[m.Index] = line
		return lines, nil
	})
	if err != nil {
		return err
	}

	return a.formatter.FormatChange(a.Stdout, Change{
		Action:  "updated",
		Message: "Todo updated successfully.",
		Line:    line,
		Task:    updated,
	})
}
