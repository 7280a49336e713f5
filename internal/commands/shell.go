package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/syncer"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd runs an interactive session. Each input line is a command from
// the registry, or one of the shell builtins. Between lines a ticker probes
// connectivity and replays offline changes once the remote is back.
type ShellCmd struct {
	in       io.Reader
	registry *Registry
	interval time.Duration
}

// SetInput sets the line source (for testing). Default is os.Stdin.
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

// SetRegistry sets the command registry (for testing).
func (c *ShellCmd) SetRegistry(r *Registry) {
	c.registry = r
}

// SetInterval overrides the probe interval (for testing).
func (c *ShellCmd) SetInterval(d time.Duration) {
	c.interval = d
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"sh"} }
func (c *ShellCmd) Synopsis() string  { return "Interactive session with autosave and offline queue" }
func (c *ShellCmd) Usage() string     { return "listsync shell" }
func (c *ShellCmd) NeedsSync() bool   { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}
	interval := c.interval
	if interval <= 0 {
		interval = cfg.Probe.Interval
	}
	if interval <= 0 {
		interval = config.DefaultSettings().Probe.Interval
	}

	sess.interactive = true
	if res := sess.ensureLoaded(ctx); res != syncer.OutcomeLoaded {
		report(sess.Sync, res, errOut)
	} else if !cfg.Quiet {
		fmt.Fprintln(out, sess.Sync.Status())
	}

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return c.leave(sess, errOut)

		case <-ticker.C:
			c.tick(ctx, cfg, sess, out)

		case line, ok := <-lines:
			if !ok {
				return c.leave(sess, errOut)
			}
			if quit := c.exec(ctx, cfg, sess, registry, line, out, errOut); quit {
				return c.leave(sess, errOut)
			}
		}
	}
}

// readLines feeds lines from r until EOF or until done is closed.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

func (c *ShellCmd) tick(ctx context.Context, cfg *config.Config, sess *Session, out io.Writer) {
	was := sess.Sync.Online()
	res := sess.Sync.Tick(ctx)
	if cfg.Quiet {
		return
	}
	if now := sess.Sync.Online(); now != was {
		if now {
			fmt.Fprintln(out, "online")
		} else {
			fmt.Fprintln(out, "offline, changes will be queued")
		}
	}
	switch res {
	case syncer.OutcomeNoop, syncer.OutcomeBusy:
	default:
		fmt.Fprintln(out, sess.Sync.Status())
	}
}

// exec runs one input line and reports whether the shell should exit.
func (c *ShellCmd) exec(ctx context.Context, cfg *config.Config, sess *Session, registry *Registry, line string, out, errOut io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	if slices.Contains(quitWords, fields[0]) {
		return true
	}
	switch fields[0] {
	case builtinOverwrite:
		c.resolve(cfg, sess, sess.Sync.ResolveOverwrite(ctx), out, errOut)
		return false
	case builtinReload:
		c.resolve(cfg, sess, sess.Sync.ResolveReload(ctx), out, errOut)
		return false
	case builtinAutosave:
		c.autosave(ctx, cfg, sess, fields[1:], out, errOut)
		return false
	}
	if fields[0] == c.Name() || slices.Contains(c.Aliases(), fields[0]) {
		fmt.Fprintln(errOut, "error: already in a shell")
		return false
	}

	cmd, ok := registry.Find(fields[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", fields[0])
		return false
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(fields[1:]); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return false
	}

	cmd.Run(ctx, cfg, sess, fs.Args(), out, errOut)
	if sess.Sync.ConflictPending() {
		fmt.Fprintln(errOut, "conflict: type 'overwrite' to keep your lists or 'reload' to take the remote ones")
	}
	return false
}

func (c *ShellCmd) resolve(cfg *config.Config, sess *Session, res syncer.Outcome, out, errOut io.Writer) {
	if res == syncer.OutcomeNoop {
		fmt.Fprintln(errOut, "error: no conflict to resolve")
		return
	}
	if report(sess.Sync, res, errOut) == exitcode.Success && !cfg.Quiet {
		fmt.Fprintln(out, sess.Sync.Status())
	}
}

func (c *ShellCmd) autosave(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) {
	if len(args) == 0 {
		state := "off"
		if sess.Sync.Autosave() {
			state = "on"
		}
		fmt.Fprintf(out, "autosave %s\n", state)
		return
	}

	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
	default:
		fmt.Fprintf(errOut, "error: autosave takes on or off, got %s\n", args[0])
		return
	}

	res := sess.Sync.SetAutosave(ctx, on)
	if report(sess.Sync, res, errOut) == exitcode.Success && !cfg.Quiet {
		fmt.Fprintf(out, "autosave %s\n", args[0])
	}
}

// leave warns about work that would be lost with the process.
func (c *ShellCmd) leave(sess *Session, errOut io.Writer) int {
	if n := sess.Sync.Pending(); n > 0 || sess.Sync.Unsaved() {
		fmt.Fprintln(errOut, "warning: exiting with unsaved changes")
		return exitcode.Pending
	}
	return exitcode.Success
}
