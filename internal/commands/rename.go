package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"listsync/internal/config"
	"listsync/internal/exitcode"
)

func init() {
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command.
type RenameCmd struct{}

func (c *RenameCmd) Name() string      { return "rename" }
func (c *RenameCmd) Aliases() []string { return nil }
func (c *RenameCmd) Synopsis() string  { return "Rename a list" }
func (c *RenameCmd) Usage() string     { return "listsync rename <list> <name...>" }
func (c *RenameCmd) NeedsSync() bool   { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: list and new name required")
		return exitcode.UserError
	}

	if code, ok := sess.begin(ctx, errOut); !ok {
		return code
	}
	id, err := sess.Sync.Names().Resolve(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	res, err := sess.Sync.RenameList(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return sess.settle(ctx, cfg, res, out, errOut)
}
