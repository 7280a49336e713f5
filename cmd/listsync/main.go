// Package main is the entry point for the listsync CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"listsync/internal/backend/gdrive"
	"listsync/internal/backend/github"
	"listsync/internal/blobstore"
	"listsync/internal/cli"
	"listsync/internal/commands"
	"listsync/internal/config"
	"listsync/internal/connectivity"
	"listsync/internal/lists"
	"listsync/internal/syncer"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newOrchestrator)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newOrchestrator wires the configured backend and probe into the sync core.
func newOrchestrator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*syncer.Orchestrator, error) {
	var (
		store blobstore.Store
		err   error
	)
	switch cfg.Backend {
	case config.BackendDrive:
		store, err = gdrive.New(ctx, cfg)
	default:
		store, err = github.New(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	probe := connectivity.New(cfg.Probe.URL, cfg.Probe.Timeout, logger)

	return syncer.New(store, probe, syncer.Options{
		TasksPath:   cfg.Paths.Tasks,
		NamesPath:   cfg.Paths.Names,
		Names:       lists.DefaultNames(cfg.Lists.Count),
		Autosave:    cfg.Autosave,
		Credentials: cfg.HasCredentials,
		Logger:      logger,
	}), nil
}
