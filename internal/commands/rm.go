package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/lists"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	listName string
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "listsync rm [--list <list>] <n...>" }
func (c *RmCmd) NeedsSync() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	pos, err := ParseTaskNums(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if code, ok := sess.begin(ctx, errOut); !ok {
		return code
	}
	id, err := resolveList(sess.Sync.Names(), c.listName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	return sess.mutate(ctx, cfg, func(coll *lists.Collection) (*lists.Collection, error) {
		sel, err := coll.Select(id, pos...)
		if err != nil {
			return nil, err
		}
		return coll.Remove(sel)
	}, out, errOut)
}
