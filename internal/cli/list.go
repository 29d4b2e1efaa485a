package cli

import (
	"database/sql"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leeovery/jadwal/internal/storage/sqlite"
	"github.com/leeovery/jadwal/internal/task"
)

// listFlags holds the list filter options.
type listFlags struct {
	project  string
	context  string
	priority string
	done     bool
	pending  bool
}

func (a *App) listCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list [description]",
		Short: "List todos",
		Long:  "List todos in file order. A description argument keeps only lines containing that text; the options narrow further.",
		Example: "  jadwal list\n  jadwal list milk\n  jadwal list --project errands --pending",
		Args:    cobra.MaximumNArgs(1),
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			f := lf.filter()
			if len(args) == 1 {
				f.Fragment = args[0]
			}
			return a.runList(f)
		}),
	}
	cmd.Flags().StringVar(&lf.project, "project", "", "Only todos in this project")
	cmd.Flags().StringVar(&lf.context, "context", "", "Only todos with this context")
	cmd.Flags().StringVar(&lf.priority, "priority", "", "Only todos with this priority")
	cmd.Flags().BoolVar(&lf.done, "done", false, "Only completed todos")
	cmd.Flags().BoolVar(&lf.pending, "pending", false, "Only todos that are not done")
	cmd.MarkFlagsMutuallyExclusive("done", "pending")
	return cmd
}

func (lf listFlags) filter() sqlite.Filter {
	f := sqlite.Filter{
		Project:  strings.TrimPrefix(strings.TrimSpace(lf.project), "+"),
		Context:  strings.TrimPrefix(strings.TrimSpace(lf.context), "@"),
		Priority: strings.ToUpper(strings.Trim(strings.TrimSpace(lf.priority), "()")),
	}
	switch {
	case lf.done:
		done := true
		f.Done = &done
	case lf.pending:
		pending := false
		f.Done = &pending
	}
	return f
}

func (a *App) runList(f sqlite.Filter) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}

	var entries []sqlite.Entry
	err = store.Query(func(db *sql.DB) error {
		var err error
		entries, err = sqlite.List(db, f)
		return err
	})
	if err != nil {
		return err
	}

	rows := make([]TaskRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, TaskRow{Position: e.Index + 1, Line: e.Line, Task: task.Parse(e.Line)})
	}
	return a.formatter.FormatTaskList(a.Stdout, rows)
}

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show todo counts by state, priority and project",
		Args:  cobra.NoArgs,
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			var stats sqlite.Stats
			err = store.Query(func(db *sql.DB) error {
				var err error
				stats, err = sqlite.Summarize(db)
				return err
			})
			if err != nil {
				return err
			}
			return a.formatter.FormatStats(a.Stdout, stats)
		}),
	}
}
