// Package cli implements the jadwal command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/leeovery/jadwal/internal/config"
	"github.com/leeovery/jadwal/internal/gitsync"
	"github.com/leeovery/jadwal/internal/storage"
	"github.com/leeovery/jadwal/internal/task"
)

// App is the jadwal CLI application. Zero-valued fields fall back to the
// process streams, the wall clock, the git binary and the OS file manager.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Config  *config.Config
	Version string

	Now       func() time.Time
	Runner    gitsync.Runner
	Opener    Opener
	Confirmer Confirmer
	// IsTTY overrides terminal detection on Stdout.
	IsTTY func() bool

	opts      globalOpts
	formatter Formatter
	renderer  *lipgloss.Renderer
	logger    *log.Logger
}

// globalOpts holds the persistent flags.
type globalOpts struct {
	Verbose bool
	NoColor bool
	Toon    bool
	Pretty  bool
	JSON    bool
	YAML    bool
}

// opError marks a failure inside a command. It is reported but does not
// change the exit code.
type opError struct {
	err error
}

func (e *opError) Error() string { return e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

// exitError ends the run with code after the command has already reported
// its outcome.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Run executes the command line in args; args[0] is the program name. It
// returns the process exit code: 1 for configuration and usage errors, 0
// otherwise. Operation errors are reported on stderr.
func (a *App) Run(args []string) int {
	return a.RunContext(context.Background(), args)
}

// RunContext is Run with a context that cancels blocking git work.
func (a *App) RunContext(ctx context.Context, args []string) int {
	a.defaults()

	root := a.rootCmd()
	if len(args) > 0 {
		root.SetArgs(args[1:])
	}
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	a.reportError(err)
	var op *opError
	if errors.As(err, &op) {
		return 0
	}
	return 1
}

func (a *App) defaults() {
	if a.Stdout == nil {
		a.Stdout = os.Stdout
	}
	if a.Stderr == nil {
		a.Stderr = os.Stderr
	}
	if a.Stdin == nil {
		a.Stdin = os.Stdin
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Version == "" {
		a.Version = "dev"
	}
	a.opts = globalOpts{}
	a.renderer = nil
	a.logger = log.NewWithOptions(a.Stderr, log.Options{Prefix: "jadwal"})
}

func (a *App) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jadwal",
		Short:         "Manage a todo.txt file and sync it with git",
		Long:          "jadwal keeps your todos in a plain todo.txt file inside LOCAL_REPO and syncs that directory with the git remote in REMOTE_GIT.",
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)
	root.SetIn(a.Stdin)

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "Log debug detail to stderr")
	pf.BoolVar(&a.opts.NoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&a.opts.Toon, "toon", false, "Force TOON output")
	pf.BoolVar(&a.opts.Pretty, "pretty", false, "Force human-readable output")
	pf.BoolVar(&a.opts.JSON, "json", false, "Force JSON output")
	pf.BoolVar(&a.opts.YAML, "yaml", false, "Force YAML output")

	root.AddCommand(
		a.addCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.doneCmd(),
		a.listCmd(),
		a.statsCmd(),
		a.syncCmd(),
		a.revealCmd(),
		a.doctorCmd(),
	)
	return root
}

// setup resolves output and logging from the global flags.
func (a *App) setup(cmd *cobra.Command) error {
	isTTY := DetectTTY(a.Stdout)
	if a.IsTTY != nil {
		isTTY = a.IsTTY()
	}

	format, err := ResolveFormat(a.opts.Toon, a.opts.Pretty, a.opts.JSON, a.opts.YAML, isTTY)
	if err != nil {
		return err
	}

	a.renderer = lipgloss.NewRenderer(a.Stdout)
	noColor := a.opts.NoColor || os.Getenv("NO_COLOR") != "" || !isTTY
	if noColor {
		a.renderer.SetColorProfile(termenv.Ascii)
		a.logger.SetColorProfile(termenv.Ascii)
	}
	a.formatter = newFormatter(format, a.renderer)

	if a.opts.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	if a.Config == nil && cmd.Name() != "help" {
		return config.ErrLocalRepoNotSet
	}
	return nil
}

// op wraps a command body so its errors are reported as operation errors.
func (a *App) op(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &opError{err: err}
		}
		return nil
	}
}

func (a *App) openStore() (*storage.Store, error) {
	return storage.NewStore(a.Config.TodoPath(),
		storage.WithLogger(a.logger),
		storage.WithLockTimeout(time.Duration(a.Config.LockTimeout)),
		storage.WithStateDir(a.Config.StateDir),
	)
}

func (a *App) confirmer(yes bool) Confirmer {
	switch {
	case yes:
		return yesConfirmer{}
	case a.Confirmer != nil:
		return a.Confirmer
	default:
		return &PromptConfirmer{In: a.Stdin, Out: a.Stderr}
	}
}

func (a *App) today() string {
	return task.Today(a.Now())
}

// reportError writes "Error: <message>" to stderr. Ambiguous matches also
// list the conflicting lines.
func (a *App) reportError(err error) {
	label := "Error:"
	if a.renderer != nil {
		label = a.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render(label)
	}
	fmt.Fprintf(a.Stderr, "%s %s\n", label, err)

	var amb *task.AmbiguousError
	if errors.As(err, &amb) {
		fmt.Fprintln(a.Stderr, "Matching todos:")
		for _, m := range amb.Matches {
			fmt.Fprintf(a.Stderr, "  %d  %s\n", m.Index+1, m.Line)
		}
	}
}
