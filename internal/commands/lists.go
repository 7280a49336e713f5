package commands

import (
	"context"
	"flag"
	"io"

	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/output"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print list keys and names" }
func (c *ListsCmd) Usage() string     { return "listsync lists [common flags]" }
func (c *ListsCmd) NeedsSync() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if code, ok := sess.begin(ctx, errOut); !ok {
		return code
	}

	for _, e := range sess.Sync.Names().Entries() {
		output.FormatListName(out, e)
	}
	return exitcode.Success
}
