package commands

import (
	"context"
	"flag"
	"io"

	"listsync/internal/config"
	"listsync/internal/output"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd prints the sync state. Outside the shell it loads first, so
// it doubles as a reachability and credentials check.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return nil }
func (c *StatusCmd) Synopsis() string  { return "Print sync status" }
func (c *StatusCmd) Usage() string     { return "listsync status" }
func (c *StatusCmd) NeedsSync() bool   { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	code, _ := sess.begin(ctx, errOut)

	o := sess.Sync
	output.FormatStatus(out, output.Status{
		Backend:    cfg.Backend,
		Online:     o.Online(),
		Unsaved:    o.Unsaved(),
		Autosave:   o.Autosave(),
		Conflict:   o.ConflictPending(),
		Pending:    o.Pending(),
		LastSynced: o.LastSynced(),
		Message:    o.Status(),
	})
	return code
}
