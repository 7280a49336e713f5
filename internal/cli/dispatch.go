package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"listsync/internal/blobstore"
	"listsync/internal/commands"
	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/logging"
	"listsync/internal/syncer"
)

// SyncFactory builds the orchestrator for a loaded config.
// Used to inject the backend during dispatch.
type SyncFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*syncer.Orchestrator, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  SyncFactory
}

// NewDispatcher creates a new dispatcher with the given registry and sync factory.
func NewDispatcher(registry *commands.Registry, factory SyncFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> show the lists that have tasks
	if len(args) == 0 {
		return d.dispatch(ctx, "show", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leftover dash argument should have been parsed as a flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger, closeLog := logging.New(cfg, errOut)
	defer closeLog()
	logger.Debug("dispatch", "command", cmd.Name(), "backend", cfg.Backend, "config", cfg.Dir)

	var sess *commands.Session
	if cmd.NeedsSync() {
		if !cfg.HasCredentials() {
			printCredentialsHint(errOut, cfg)
			return exitcode.AuthError
		}
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.BackendError
		}
		orch, err := d.factory(ctx, cfg, logger)
		if err != nil {
			if errors.Is(err, blobstore.ErrUnauthorized) {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
		sess = commands.NewSession(orch)
	}

	return cmd.Run(ctx, cfg, sess, positionalArgs, out, errOut)
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if name, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return errStr
}

func printCredentialsHint(w io.Writer, cfg *config.Config) {
	switch cfg.Backend {
	case config.BackendDrive:
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(w, "error: oauth_client.json not found in %s\n", cfg.Dir)
			return
		}
		fmt.Fprintln(w, "error: not logged in (run: listsync login)")
	default:
		fmt.Fprintf(w, "error: github.repo and github.token must be set in %s or via %s_GITHUB_REPO and %s_GITHUB_TOKEN\n",
			cfg.SettingsPath(), config.EnvPrefix, config.EnvPrefix)
	}
}
