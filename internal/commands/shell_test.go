package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"listsync/internal/commands"
	"listsync/internal/exitcode"
	"listsync/internal/syncer"
)

var errBoom = errors.New("boom")

func newShell(script string) *commands.ShellCmd {
	sh := &commands.ShellCmd{}
	sh.SetInput(strings.NewReader(script))
	sh.SetRegistry(commands.DefaultRegistry)
	sh.SetInterval(time.Hour)
	return sh
}

func TestShell_AutosaveToggle(t *testing.T) {
	e := newEnv(t, true)
	sh := newShell("add hello\nautosave off\nadd second\nautosave\nquit\nadd never\n")

	stdout, stderr, code := runCommand(t, sh, e, nil, false)

	if code != exitcode.Pending {
		t.Errorf("expected exit code %d, got %d", exitcode.Pending, code)
	}
	expected := syncer.StatusLoaded + "\n" +
		"ok\n" +
		"autosave off\n" +
		"ok (unsaved)\n" +
		"autosave off\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if stderr != "warning: exiting with unsaved changes\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if n := e.store.PutCount(tasksPath); n != 1 {
		t.Errorf("expected only the autosaved change to be written, got %d writes", n)
	}
	if got := titles(e.orch.Collection().List("list1")); got != "Buy milk|Buy eggs|Call Bob|hello|second" {
		t.Errorf("unexpected list1: %s", got)
	}
}

func TestShell_ConflictThenOverwrite(t *testing.T) {
	e := newEnv(t, true)
	if _, _, code := runCommand(t, &commands.ListsCmd{}, e, nil, true); code != exitcode.Success {
		t.Fatalf("initial load failed with %d", code)
	}
	e.store.Set(tasksPath, strings.Replace(seedTasks, "2024-01-02", "2024-01-05", 1))
	sh := newShell("add mine\noverwrite\n")

	stdout, stderr, code := runCommand(t, sh, e, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	wantErr := "error: " + syncer.StatusConflict + "\n" +
		"conflict: type 'overwrite' to keep your lists or 'reload' to take the remote ones\n"
	if stderr != wantErr {
		t.Errorf("expected %q, got %q", wantErr, stderr)
	}
	if stdout != syncer.StatusSaved+"\n" {
		t.Errorf("expected overwrite to report a save, got %q", stdout)
	}
	if !strings.Contains(e.store.Get(tasksPath), "- mine\n") {
		t.Errorf("local edit should have been forced to the remote:\n%s", e.store.Get(tasksPath))
	}
	if e.orch.ConflictPending() {
		t.Error("conflict should be resolved")
	}
}

func TestShell_Builtins(t *testing.T) {
	e := newEnv(t, true)
	sh := newShell("\nreload\nshell\nsh\nbogus\nautosave maybe\nrm --bogus 1\nexit\n")

	stdout, stderr, code := runCommand(t, sh, e, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
	expected := "error: no conflict to resolve\n" +
		"error: already in a shell\n" +
		"error: already in a shell\n" +
		"error: unknown command: bogus\n" +
		"error: autosave takes on or off, got maybe\n" +
		"error: flag provided but not defined: -bogus\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if len(e.store.Puts()) != 0 {
		t.Error("expected no writes")
	}
}

func TestShell_LoadFailureKeepsRunning(t *testing.T) {
	e := newEnv(t, true)
	e.store.SetFetchErr(namesPath, errBoom)
	sh := newShell("status\n")

	_, stderr, code := runCommand(t, sh, e, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stderr, "error: Error loading: list names: ") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestShell_ZeroIntervalUsesDefault(t *testing.T) {
	e := newEnv(t, true)
	e.cfg.Probe.Interval = 0
	sh := &commands.ShellCmd{}
	sh.SetInput(strings.NewReader("quit\n"))
	sh.SetRegistry(commands.DefaultRegistry)

	_, stderr, code := runCommand(t, sh, e, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
}
