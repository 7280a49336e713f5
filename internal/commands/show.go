package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"listsync/internal/config"
	"listsync/internal/exitcode"
	"listsync/internal/lists"
	"listsync/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints lists. With no arguments it prints every list that has
// tasks; named lists are printed even when empty.
type ShowCmd struct {
	all bool
}

// SetAll sets whether empty lists are printed (for testing).
func (c *ShowCmd) SetAll(all bool) {
	c.all = all
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"list", "ls"} }
func (c *ShowCmd) Synopsis() string  { return "Print tasks" }
func (c *ShowCmd) Usage() string     { return "listsync show [--all] [<list>...]" }
func (c *ShowCmd) NeedsSync() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if code, ok := sess.begin(ctx, errOut); !ok {
		return code
	}
	names := sess.Sync.Names()
	coll := sess.Sync.Collection()

	var ids []lists.ID
	for _, ref := range args {
		id, err := names.Resolve(ref)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		if coll.Empty() && !c.all {
			if !cfg.Quiet {
				fmt.Fprintln(out, "no tasks found")
			}
			return exitcode.Success
		}
		for _, id := range names.Keys() {
			if c.all || coll.Len(id) > 0 {
				ids = append(ids, id)
			}
		}
	}

	for _, id := range ids {
		output.FormatList(out, lists.Entry{ID: id, Name: names.Display(id)}, coll.List(id))
	}
	return exitcode.Success
}
