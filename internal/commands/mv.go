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
	Register(&MvCmd{})
	Register(&MoveCmd{up: true})
	Register(&MoveCmd{})
}

// MvCmd moves tasks to another list.
type MvCmd struct {
	listName string
	to       string
}

func (c *MvCmd) Name() string      { return "mv" }
func (c *MvCmd) Aliases() []string { return []string{"move"} }
func (c *MvCmd) Synopsis() string  { return "Move tasks to another list" }
func (c *MvCmd) Usage() string     { return "listsync mv [--list <list>] --to <list> <n...>" }
func (c *MvCmd) NeedsSync() bool   { return true }

func (c *MvCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.to, "to", "", "")
}

func (c *MvCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if c.to == "" {
		fmt.Fprintln(errOut, "error: destination required (--to <list>)")
		return exitcode.UserError
	}
	pos, err := ParseTaskNums(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if code, ok := sess.begin(ctx, errOut); !ok {
		return code
	}
	names := sess.Sync.Names()
	from, err := resolveList(names, c.listName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	to, err := names.Resolve(c.to)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if from == to {
		fmt.Fprintln(errOut, "error: source and destination are the same list")
		return exitcode.UserError
	}

	return sess.mutate(ctx, cfg, func(coll *lists.Collection) (*lists.Collection, error) {
		sel, err := coll.Select(from, pos...)
		if err != nil {
			return nil, err
		}
		return coll.Transfer(sel, to)
	}, out, errOut)
}

// MoveCmd implements up and down.
type MoveCmd struct {
	up       bool
	listName string
}

func (c *MoveCmd) Name() string {
	if c.up {
		return "up"
	}
	return "down"
}
func (c *MoveCmd) Aliases() []string { return nil }
func (c *MoveCmd) Synopsis() string {
	if c.up {
		return "Move a task one place up"
	}
	return "Move a task one place down"
}
func (c *MoveCmd) Usage() string   { return "listsync " + c.Name() + " [--list <list>] <n>" }
func (c *MoveCmd) NeedsSync() bool { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	pos, err := ParseTaskNum(args)
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
		sel, err := coll.Select(id, pos)
		if err != nil {
			return nil, err
		}
		if c.up {
			return coll.MoveUp(sel)
		}
		return coll.MoveDown(sel)
	}, out, errOut)
}
