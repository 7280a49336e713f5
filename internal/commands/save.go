package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/syncer"
)

func init() {
	Register(&SaveCmd{})
}

// SaveCmd writes the collection. Outside the shell it rewrites the remote
// state with a fresh timestamp.
type SaveCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *SaveCmd) SetForce(force bool) {
	c.force = force
}

func (c *SaveCmd) Name() string      { return "save" }
func (c *SaveCmd) Aliases() []string { return nil }
func (c *SaveCmd) Synopsis() string  { return "Save lists, --force skips the conflict check" }
func (c *SaveCmd) Usage() string     { return "listsync save [--force]" }
func (c *SaveCmd) NeedsSync() bool   { return true }

func (c *SaveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *SaveCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if code, ok := sess.begin(ctx, errOut); !ok {
		return code
	}

	res := sess.Sync.Save(ctx, c.force)
	if code := report(sess.Sync, res, errOut); code != exitcode.Success {
		return code
	}
	if !cfg.Quiet {
		if res == syncer.OutcomeSaved {
			fmt.Fprintln(out, "ok")
		} else {
			fmt.Fprintln(out, sess.Sync.Status())
		}
	}
	return exitcode.Success
}
