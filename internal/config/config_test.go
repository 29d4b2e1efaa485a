package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envMap returns a Getenv backed by m.
func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

// isolated returns Options that never touch the user's real config or .env.
func isolated(t *testing.T, env map[string]string) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		Getenv:     envMap(env),
		ConfigFile: filepath.Join(dir, "config.toml"),
		EnvFile:    filepath.Join(dir, ".env"),
	}
}

func TestLoad_RequiresLocalRepo(t *testing.T) {
	opts := isolated(t, nil)
	require.NoError(t, os.WriteFile(opts.ConfigFile, []byte(`remote_git = "git@example.com:me/todo.git"`), 0644))

	_, err := Load(opts)
	assert.ErrorIs(t, err, ErrLocalRepoNotSet)
}

func TestLoad_FromEnvironment(t *testing.T) {
	opts := isolated(t, map[string]string{
		EnvLocalRepo:   "/data/todo",
		EnvRemoteGit:   "git@example.com:me/todo.git",
		EnvBranch:      "trunk",
		EnvSyncTimeout: "30s",
	})
	require.NoError(t, os.WriteFile(opts.ConfigFile, nil, 0644))

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "/data/todo", cfg.LocalRepo)
	assert.Equal(t, "git@example.com:me/todo.git", cfg.RemoteGit)
	assert.Equal(t, "trunk", cfg.Branch)
	assert.Equal(t, Duration(30*time.Second), cfg.SyncTimeout)
	assert.Equal(t, Duration(5*time.Second), cfg.LockTimeout, "default lock timeout")
	assert.Equal(t, filepath.Join("/data/todo", "todo.txt"), cfg.TodoPath())
}

func TestLoad_Precedence(t *testing.T) {
	opts := isolated(t, map[string]string{EnvLocalRepo: "/from/env"})
	require.NoError(t, os.WriteFile(opts.ConfigFile, []byte(`
local_repo = "/from/toml"
remote_git = "https://example.com/toml.git"
branch = "toml-branch"
lock_timeout = "1s"
`), 0644))
	require.NoError(t, os.WriteFile(opts.EnvFile, []byte("REMOTE_GIT=https://example.com/dotenv.git\n"), 0644))

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.LocalRepo, "environment beats the TOML file")
	assert.Equal(t, "https://example.com/dotenv.git", cfg.RemoteGit, ".env beats the TOML file")
	assert.Equal(t, "toml-branch", cfg.Branch)
	assert.Equal(t, Duration(time.Second), cfg.LockTimeout)
}

func TestLoad_DotenvOnly(t *testing.T) {
	opts := isolated(t, nil)
	require.NoError(t, os.WriteFile(opts.ConfigFile, nil, 0644))
	require.NoError(t, os.WriteFile(opts.EnvFile, []byte("LOCAL_REPO=/from/dotenv\n"), 0644))

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.LocalRepo)
	assert.Error(t, cfg.RequireRemote())
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	opts := isolated(t, map[string]string{EnvLocalRepo: "/data/todo"})

	_, err := Load(opts)
	assert.Error(t, err, "an explicitly named config file must exist")
}

func TestLoad_InvalidDuration(t *testing.T) {
	opts := isolated(t, map[string]string{EnvLocalRepo: "/data/todo", EnvLockTimeout: "soon"})
	require.NoError(t, os.WriteFile(opts.ConfigFile, nil, 0644))

	_, err := Load(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLockTimeout)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	opts := isolated(t, map[string]string{EnvLocalRepo: "~/notes"})
	require.NoError(t, os.WriteFile(opts.ConfigFile, nil, 0644))

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes"), cfg.LocalRepo)
}

func TestRequireRemote(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).RequireRemote(), ErrRemoteNotSet)
	assert.NoError(t, (&Config{RemoteGit: "origin"}).RequireRemote())
}
