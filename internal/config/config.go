// Package config resolves jadwal's settings once at startup. Values come from
// built-in defaults, an optional TOML file, a .env file in the working
// directory and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FileName is the todo file inside the local repository.
const FileName = "todo.txt"

// Environment variable names.
const (
	EnvLocalRepo   = "LOCAL_REPO"
	EnvRemoteGit   = "REMOTE_GIT"
	EnvBranch      = "JADWAL_BRANCH"
	EnvStateDir    = "JADWAL_STATE_DIR"
	EnvLockTimeout = "JADWAL_LOCK_TIMEOUT"
	EnvSyncTimeout = "JADWAL_SYNC_TIMEOUT"
	EnvConfigFile  = "JADWAL_CONFIG"
)

var (
	// ErrLocalRepoNotSet means no local repository is configured. It is fatal.
	ErrLocalRepoNotSet = errors.New("LOCAL_REPO environment variable is not set")
	// ErrRemoteNotSet means sync was requested without a remote. Only sync fails.
	ErrRemoteNotSet = errors.New("REMOTE_GIT environment variable is not set")
)

// Duration is a time.Duration read from strings such as "5s" or "2m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Config is the resolved configuration.
type Config struct {
	LocalRepo   string   `toml:"local_repo"`
	RemoteGit   string   `toml:"remote_git"`
	Branch      string   `toml:"branch"`
	StateDir    string   `toml:"state_dir"`
	LockTimeout Duration `toml:"lock_timeout"`
	SyncTimeout Duration `toml:"sync_timeout"`
}

// Options control where Load looks. Zero values use the real environment.
type Options struct {
	// Getenv looks up environment variables; defaults to os.Getenv.
	Getenv func(string) string
	// ConfigFile overrides the TOML file path.
	ConfigFile string
	// EnvFile overrides the .env path; defaults to ".env" in the working directory.
	EnvFile string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Branch:      "main",
		LockTimeout: Duration(5 * time.Second),
	}
}

// Load resolves the configuration. It fails with ErrLocalRepoNotSet when no
// source names a local repository.
func Load(opts Options) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Defaults()

	path := opts.ConfigFile
	if path == "" {
		path = getenv(EnvConfigFile)
	}
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if path != "" {
		if err := loadFile(&cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}

	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	cfg.LocalRepo = expandHome(cfg.LocalRepo)
	cfg.StateDir = expandHome(cfg.StateDir)
	if cfg.LocalRepo == "" {
		return nil, ErrLocalRepoNotSet
	}
	return &cfg, nil
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/jadwal/config.toml, or "" when
// the user config directory is unknown.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jadwal", "config.toml")
}

// TodoPath returns the path of the todo file.
func (c *Config) TodoPath() string {
	return filepath.Join(c.LocalRepo, FileName)
}

// RequireRemote returns ErrRemoteNotSet when no remote is configured.
func (c *Config) RequireRemote() error {
	if strings.TrimSpace(c.RemoteGit) == "" {
		return ErrRemoteNotSet
	}
	return nil
}

// loadFile decodes the TOML file at path into cfg. A missing file is only an
// error when the path was given explicitly.
func loadFile(cfg *Config, path string, explicit bool) error {
	_, err := toml.DecodeFile(path, cfg)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return fmt.Errorf("loading config %s: %w", path, err)
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	if v := lookup(EnvLocalRepo); v != "" {
		cfg.LocalRepo = v
	}
	if v := lookup(EnvRemoteGit); v != "" {
		cfg.RemoteGit = v
	}
	if v := lookup(EnvBranch); v != "" {
		cfg.Branch = v
	}
	if v := lookup(EnvStateDir); v != "" {
		cfg.StateDir = v
	}
	for key, dst := range map[string]*Duration{
		EnvLockTimeout: &cfg.LockTimeout,
		EnvSyncTimeout: &cfg.SyncTimeout,
	} {
		if v := lookup(key); v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
