package commands

import (
	"context"
	"fmt"
	"io"

	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/lists"
	"listsync/internal/syncer"
)

// Session wraps the orchestrator for one CLI invocation or one shell.
//
// A one-shot command loads the remote state first and writes its change
// back before returning. Inside the shell the state is loaded once and
// saving follows the autosave setting.
type Session struct {
	Sync *syncer.Orchestrator

	interactive bool
	loaded      bool
}

// NewSession returns a one-shot session.
func NewSession(orch *syncer.Orchestrator) *Session {
	return &Session{Sync: orch}
}

// Interactive reports whether the session belongs to a shell.
func (s *Session) Interactive() bool { return s.interactive }

// ensureLoaded loads the remote state once per session.
func (s *Session) ensureLoaded(ctx context.Context) syncer.Outcome {
	if s.loaded {
		return syncer.OutcomeNoop
	}
	out := s.Sync.Load(ctx)
	if out == syncer.OutcomeLoaded {
		s.loaded = true
	}
	return out
}

// begin loads the remote state and reports a failure in the usual style.
// It returns false when the command must stop with code.
func (s *Session) begin(ctx context.Context, errOut io.Writer) (code int, ok bool) {
	switch out := s.ensureLoaded(ctx); out {
	case syncer.OutcomeLoaded, syncer.OutcomeNoop:
		return exitcode.Success, true
	default:
		return report(s.Sync, out, errOut), false
	}
}

// mutate applies fn and makes sure a one-shot change reaches the remote.
func (s *Session) mutate(ctx context.Context, cfg *config.Config, fn func(*lists.Collection) (*lists.Collection, error), out, errOut io.Writer) int {
	if code, ok := s.begin(ctx, errOut); !ok {
		return code
	}

	res, err := s.Sync.Mutate(ctx, fn)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return s.settle(ctx, cfg, res, out, errOut)
}

// settle saves a one-shot change that autosave did not write, then reports.
func (s *Session) settle(ctx context.Context, cfg *config.Config, res syncer.Outcome, out, errOut io.Writer) int {
	if res == syncer.OutcomeNoop && !s.interactive && s.Sync.Unsaved() {
		res = s.Sync.Save(ctx, false)
	}
	if code := report(s.Sync, res, errOut); code != exitcode.Success {
		return code
	}
	if !cfg.Quiet {
		if res == syncer.OutcomeNoop {
			fmt.Fprintln(out, "ok (unsaved)")
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}

// report maps an outcome to an exit code, printing the status on failure.
func report(orch *syncer.Orchestrator, res syncer.Outcome, errOut io.Writer) int {
	switch res {
	case syncer.OutcomeSaved, syncer.OutcomeLoaded, syncer.OutcomeNoop:
		return exitcode.Success
	case syncer.OutcomeQueued:
		fmt.Fprintf(errOut, "error: %s\n", orch.Status())
		return exitcode.Pending
	case syncer.OutcomeConflict:
		fmt.Fprintf(errOut, "error: %s\n", orch.Status())
		return exitcode.Conflict
	case syncer.OutcomeCredentialsMissing:
		fmt.Fprintf(errOut, "error: %s\n", orch.Status())
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: %s\n", orch.Status())
		return exitcode.BackendError
	}
}
