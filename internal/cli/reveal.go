package cli

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
)

// Opener shows a directory to the user.
type Opener interface {
	Open(dir string) error
}

// fileManager opens directories in the platform's file manager.
type fileManager struct{}

// Open starts the file manager without waiting for it to exit.
func (fileManager) Open(dir string) error {
	name := "xdg-open"
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name = "explorer"
	}
	cmd := exec.Command(name, dir)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return cmd.Process.Release()
}

func (a *App) revealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal",
		Short: "Open the todo directory in the file manager",
		Args:  cobra.NoArgs,
		RunE: a.op(func(cmd *cobra.Command, args []string) error {
			dir := a.Config.LocalRepo
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return fmt.Errorf("local repository directory does not exist: %s", dir)
			}

			opener := a.Opener
			if opener == nil {
				opener = fileManager{}
			}
			if err := opener.Open(dir); err != nil {
				return err
			}
			return a.formatter.FormatMessage(a.Stdout, "Opened "+dir)
		}),
	}
}
