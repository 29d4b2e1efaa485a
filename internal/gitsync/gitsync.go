// Package gitsync pushes the todo directory to a remote git repository:
// pull, and when the working tree has changes, stage, commit and push.
package gitsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrRemoteNotConfigured means no remote repository was given.
	ErrRemoteNotConfigured = errors.New("remote git repository is not configured")
	// ErrLocalNotConfigured means no local directory was given.
	ErrLocalNotConfigured = errors.New("local repository directory is not configured")
	// ErrLocalMissing means the local directory does not exist.
	ErrLocalMissing = errors.New("local repository directory does not exist")
)

// Runner executes git in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return strings.TrimSpace(out.String()), err
}

// StepError reports the git step that failed. The remaining steps were skipped.
type StepError struct {
	Step   string
	Output string
	Err    error
}

func (e *StepError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git %s failed: %v: %s", e.Step, e.Err, e.Output)
	}
	return fmt.Sprintf("git %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result describes a completed sync.
type Result struct {
	// Changed is false when the pull left nothing to commit.
	Changed bool
	Message string
}

// Coordinator runs the sync sequence for one local directory.
type Coordinator struct {
	Local   string
	Remote  string
	Branch  string
	Timeout time.Duration

	Runner Runner
	Now    func() time.Time
	Logger *log.Logger
}

// Sync pulls from the remote and, if the working tree then has changes,
// commits them with a timestamped message and pushes. Nothing is retried.
func (c *Coordinator) Sync(ctx context.Context) (Result, error) {
	if strings.TrimSpace(c.Remote) == "" {
		return Result{}, ErrRemoteNotConfigured
	}
	if strings.TrimSpace(c.Local) == "" {
		return Result{}, ErrLocalNotConfigured
	}
	if info, err := os.Stat(c.Local); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrLocalMissing, c.Local)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	branch := c.Branch
	if branch == "" {
		branch = "main"
	}

	if _, err := c.git(ctx, "pull", "pull", c.Remote, branch); err != nil {
		return Result{}, err
	}

	status, err := c.git(ctx, "status", "status", "--porcelain")
	if err != nil {
		return Result{}, err
	}
	if status == "" {
		c.logger().Debug("sync: working tree clean, nothing to commit")
		return Result{Changed: false}, nil
	}

	msg := c.commitMessage()
	steps := [][]string{
		{"add", "add", "-A"},
		{"commit", "commit", "-m", msg},
		{"push", "push", c.Remote, branch},
	}
	for _, step := range steps {
		if _, err := c.git(ctx, step[0], step[1:]...); err != nil {
			return Result{}, err
		}
	}
	return Result{Changed: true, Message: msg}, nil
}

func (c *Coordinator) git(ctx context.Context, step string, args ...string) (string, error) {
	runner := c.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	c.logger().Debug("sync: running git", "step", step, "args", strings.Join(args, " "))
	out, err := runner.Run(ctx, c.Local, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return out, &StepError{Step: step, Output: out, Err: err}
	}
	return out, nil
}

func (c *Coordinator) commitMessage() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return "Update todo.txt: " + now().Format(time.RFC3339)
}

func (c *Coordinator) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
