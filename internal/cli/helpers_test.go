package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leeovery/jadwal/internal/config"
	"github.com/leeovery/jadwal/internal/task"
)

// fixedNow is the clock used by every CLI test.
var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

// testEnv is an App wired to a temp LOCAL_REPO with in-memory streams.
type testEnv struct {
	app    *App
	dir    string
	path   string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv writes content to todo.txt (skipped when empty) and returns an
// App pointing at it.
func newTestEnv(t *testing.T, content string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write todo.txt: %v", err)
		}
	}

	env := &testEnv{
		dir:    dir,
		path:   path,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.app = &App{
		Stdout: env.stdout,
		Stderr: env.stderr,
		Stdin:  strings.NewReader(""),
		Config: &config.Config{
			LocalRepo:   dir,
			Branch:      "main",
			StateDir:    filepath.Join(t.TempDir(), "state"),
			LockTimeout: config.Duration(time.Second),
		},
		Version: "1.2.3",
		Now:     func() time.Time { return fixedNow },
	}
	return env
}

// run executes jadwal with args and returns the exit code.
func (e *testEnv) run(args ...string) int {
	e.stdout.Reset()
	e.stderr.Reset()
	return e.app.Run(append([]string{"jadwal"}, args...))
}

// content returns the todo file, or "<missing>" if it does not exist.
func (e *testEnv) content(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.path)
	if errors.Is(err, os.ErrNotExist) {
		return "<missing>"
	}
	if err != nil {
		t.Fatalf("failed to read todo.txt: %v", err)
	}
	return string(data)
}

// answer makes the confirmation prompt read s.
func (e *testEnv) answer(s string) {
	e.app.Stdin = strings.NewReader(s)
}

// fakeRunner answers git commands from a script keyed by subcommand.
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	fail    map[string]error
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if err := f.fail[args[0]]; err != nil {
		return "fatal: " + args[0] + " failed", err
	}
	return f.outputs[args[0]], nil
}

// fakeOpener records the directories it was asked to open.
type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(dir string) error {
	f.opened = append(f.opened, dir)
	return f.err
}

func mustResolve(t *testing.T, lines []string, fragment string) task.Match {
	t.Helper()
	m, err := task.Resolve(lines, fragment)
	if err != nil {
		t.Fatalf("Resolve(%q) returned error: %v", fragment, err)
	}
	return m
}
