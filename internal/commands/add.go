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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	listName string
	desc     string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string {
	return "listsync add [--list <list>] [--desc <text>] <title...>"
}
func (c *AddCmd) NeedsSync() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
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

	task := lists.Task{Title: title, Description: unescape(c.desc)}
	return sess.mutate(ctx, cfg, func(coll *lists.Collection) (*lists.Collection, error) {
		return coll.Add(id, task)
	}, out, errOut)
}

// unescape turns a literal "\n" typed on the command line into a newline.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
