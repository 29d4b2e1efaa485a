package cli

import (
	"strings"
	"testing"
)

func TestAdd(t *testing.T) {
	t.Run("it adds a todo with today's creation date to an empty store", func(t *testing.T) {
		env := newTestEnv(t, "")

		if code := env.run("add", "-d", "Buy milk", "-p", "A", "-P", "errands"); code != 0 {
			t.Fatalf("exit code = %d, want 0; stderr = %q", code, env.stderr.String())
		}
		if got, want := env.content(t), "(A) 2026-10-14 Buy milk +errands\n"; got != want {
			t.Errorf("todo.txt = %q, want %q", got, want)
		}
		if env.stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", env.stderr.String())
		}
	})

	t.Run("it appends after existing todos", func(t *testing.T) {
		env := newTestEnv(t, "Walk dog\n")

		env.run("add", "--description", "Call mom", "--context", "phone", "--special-tag", "due:2026-10-20")

		if got, want := env.content(t), "Walk dog\n2026-10-14 Call mom @phone due:2026-10-20\n"; got != want {
			t.Errorf("todo.txt = %q, want %q", got, want)
		}
	})

	t.Run("it keeps an explicit creation date", func(t *testing.T) {
		env := newTestEnv(t, "")

		env.run("add", "-d", "Buy milk", "-c", "2024-01-01")

		if got, want := env.content(t), "2024-01-01 Buy milk\n"; got != want {
			t.Errorf("todo.txt = %q, want %q", got, want)
		}
	})

	t.Run("it adds a completed todo when a completion date is given", func(t *testing.T) {
		env := newTestEnv(t, "")

		env.run("add", "-d", "Buy milk", "-c", "2024-01-01", "-C", "2024-01-02")

		if got, want := env.content(t), "x 2024-01-02 2024-01-01 Buy milk\n"; got != want {
			t.Errorf("todo.txt = %q, want %q", got, want)
		}
	})

	t.Run("it normalizes priority case and tag prefixes", func(t *testing.T) {
		env := newTestEnv(t, "")

		env.run("add", "-d", "Buy milk", "-p", "b", "-P", "+errands", "-t", "@shop")

		if got, want := env.content(t), "(B) 2026-10-14 Buy milk +errands @shop\n"; got != want {
			t.Errorf("todo.txt = %q, want %q", got, want)
		}
	})

	t.Run("it reports validation errors without writing", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			want string
		}{
			{name: "missing description", args: []string{"add", "-p", "A"}, want: "Error: description is mandatory"},
			{name: "bad priority", args: []string{"add", "-d", "Buy milk", "-p", "AA"}, want: "invalid priority"},
			{name: "bad date", args: []string{"add", "-d", "Buy milk", "-c", "01-01-2024"}, want: "please use YYYY-MM-DD"},
			{name: "bad special tag", args: []string{"add", "-d", "Buy milk", "-s", "soon"}, want: "please use <tag>:<value>"},
			{name: "completion without creation", args: []string{"add", "-d", "Buy milk", "-C", "2024-01-02"}, want: "creation date is mandatory"},
			{name: "field-shaped word", args: []string{"add", "-d", "Buy milk +errands"}, want: "would be read as a project tag"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t, "")

				if code := env.run(tt.args...); code != 0 {
					t.Errorf("exit code = %d, want 0 for an operation error", code)
				}
				if !strings.Contains(env.stderr.String(), tt.want) {
					t.Errorf("stderr = %q, want it to contain %q", env.stderr.String(), tt.want)
				}
				if got := env.content(t); got != "<missing>" {
					t.Errorf("todo.txt = %q, want no file written", got)
				}
			})
		}
	})

	t.Run("it rejects positional arguments as a usage error", func(t *testing.T) {
		env := newTestEnv(t, "")

		if code := env.run("add", "Buy milk"); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
	})

	t.Run("it confirms with the added line in pretty output", func(t *testing.T) {
		env := newTestEnv(t, "")

		env.run("--pretty", "add", "-d", "Buy milk")

		out := env.stdout.String()
		if !strings.Contains(out, "Todo added successfully.") {
			t.Errorf("stdout = %q, want success message", out)
		}
		if !strings.Contains(out, "2026-10-14 Buy milk") {
			t.Errorf("stdout = %q, want the added line", out)
		}
	})
}
