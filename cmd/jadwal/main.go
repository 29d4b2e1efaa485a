// Package main is the entry point for the jadwal CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/leeovery/jadwal/internal/cli"
	"github.com/leeovery/jadwal/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil && !errors.Is(err, config.ErrLocalRepoNotSet) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	app := &cli.App{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Config:  cfg,
		Version: version,
	}
	code := app.RunContext(ctx, os.Args)
	stop()
	os.Exit(code)
}
