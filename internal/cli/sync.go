package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/leeovery/jadwal/internal/gitsync"
)

func (a *App) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync todos with the git remote",
		Long:  "Pull from REMOTE_GIT, then commit and push any changes in LOCAL_REPO.",
		Args:  cobra.NoArgs,
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			if err := a.Config.RequireRemote(); err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}

			c := &gitsync.Coordinator{
				Local:   a.Config.LocalRepo,
				Remote:  a.Config.RemoteGit,
				Branch:  a.Config.Branch,
				Timeout: time.Duration(a.Config.SyncTimeout),
				Runner:  a.Runner,
				Now:     a.Now,
				Logger:  a.logger,
			}

			// Hold the write lock so no jadwal command rewrites todo.txt mid-sync.
			var res gitsync.Result
			err = store.Exclusive(func() error {
				var err error
				res, err = c.Sync(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			if !res.Changed {
				return a.formatter.FormatMessage(a.Stdout, "Already up to date, nothing to commit.")
			}
			a.logger.Debug("pushed commit", "message", res.Message)
			return a.formatter.FormatMessage(a.Stdout, "Synced with git repository.")
		}),
	}
}
