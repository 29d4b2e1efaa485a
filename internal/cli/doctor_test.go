package cli

import (
	"strings"
	"testing"
)

func TestDoctor(t *testing.T) {
	t.Run("it reports a healthy file", func(t *testing.T) {
		env := newTestEnv(t, listFixture)

		if code := env.run("doctor"); code != 0 {
			t.Errorf("exit code = %d, want 0; stdout = %q", code, env.stdout.String())
		}
		if !strings.HasSuffix(env.stdout.String(), "No issues found.\n") {
			t.Errorf("stdout = %q", env.stdout.String())
		}
	})

	t.Run("it exits 1 on an invalid date without touching the file", func(t *testing.T) {
		const original = "2024-02-30 Pay rent\n"
		env := newTestEnv(t, original)

		if code := env.run("doctor"); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.Contains(env.stdout.String(), "✗ Dates: line 1: creation date 2024-02-30 is not a calendar date") {
			t.Errorf("stdout = %q", env.stdout.String())
		}
		if env.stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", env.stderr.String())
		}
		if got := env.content(t); got != original {
			t.Errorf("todo.txt = %q, want it unchanged", got)
		}
	})

	t.Run("it exits 0 on warnings alone", func(t *testing.T) {
		env := newTestEnv(t, "Buy milk\nBuy milk\n")

		if code := env.run("doctor"); code != 0 {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(env.stdout.String(), "1 issue found.") {
			t.Errorf("stdout = %q", env.stdout.String())
		}
	})
}
