package cli

import (
	"github.com/spf13/cobra"

	"github.com/leeovery/jadwal/internal/doctor"
)

func (a *App) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check todo.txt for invalid dates, non-canonical lines and duplicates",
		Long:  "doctor reads todo.txt without changing it and reports problems. It exits 1 when an error-level problem is found; warnings do not affect the exit code.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return &opError{err: err}
			}
			lines := store.Load()
			report := doctor.DefaultRunner().RunAll(cmd.Context(), lines)
			a.logger.Debug("doctor finished", "lines", len(lines), "errors", report.ErrorCount(), "warnings", report.WarningCount())

			doctor.FormatReport(a.Stdout, report)
			if code := doctor.ExitCode(report); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
}
