package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/lists"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields whose flag is absent keep
// their current value.
type EditCmd struct {
	listName string
	title    optString
	desc     optString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *EditCmd) Usage() string {
	return "listsync edit [--list <list>] [--title <text>] [--desc <text>] <n>"
}
func (c *EditCmd) NeedsSync() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title.reset()
	c.desc.reset()
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.desc, "desc", "")
	fs.Var(&c.desc, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	pos, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.desc.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --desc)")
		return exitcode.UserError
	}
	if c.title.set && strings.TrimSpace(c.title.value) == "" {
		fmt.Fprintln(errOut, "error: title required")
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
		task := coll.List(id)[pos]
		if c.title.set {
			task.Title = strings.TrimSpace(c.title.value)
		}
		if c.desc.set {
			task.Description = unescape(c.desc.value)
		}
		return coll.Update(sel, task)
	}, out, errOut)
}
