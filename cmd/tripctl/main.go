// Command tripctl inspects and manages the trip store from the terminal. It
// opens the same storage backend as the API server, configured the same way.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/pkordes/trip-planner/internal/app"
	"github.com/pkordes/trip-planner/internal/cli"
	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/logging"
	"github.com/pkordes/trip-planner/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	var root cli.CLI
	kctx := kong.Parse(&root,
		kong.Name("tripctl"),
		kong.Description("Trip planner store and insights from the terminal"),
		kong.UsageOnError(),
	)

	if err := run(kctx, root); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context, root cli.CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if root.Config != "" {
		os.Setenv("CONFIG_FILE", root.Config)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Diagnostics go to stderr so command output stays pipeable.
	logger, logCloser, err := logging.New(logging.Options{
		Level:  root.LogLevel,
		Format: "text",
		File:   cfg.LogFile,
		Stdout: os.Stderr,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	svcs := app.NewServices(ctx, cfg, storage, logger, metrics.Noop(), nil)

	return kctx.Run(&cli.Context{
		Ctx:      ctx,
		Trips:    svcs.Trips,
		Export:   svcs.Export,
		Out:      os.Stdout,
		Now:      time.Now,
		Report:   svcs.Report,
		Migrated: storage.Migrated,
		RunProgram: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	})
}
