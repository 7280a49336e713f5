package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"listsync/internal/config"
	"listsync/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "listsync help" }
func (c *HelpCmd) NeedsSync() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  listsync                                     Show lists with tasks
  listsync show [common flags] [--all] [<list>...]
  listsync lists [common flags]
  listsync add [common flags] [--list <list>] [--desc <text>] <title...>
  listsync edit [common flags] [--list <list>] [--title <text>] [--desc <text>] <n>
  listsync rm [common flags] [--list <list>] <n...>
  listsync mv [common flags] [--list <list>] --to <list> <n...>
  listsync up [common flags] [--list <list>] <n>
  listsync down [common flags] [--list <list>] <n>
  listsync rename [common flags] <list> <name...>
  listsync save [common flags] [--force]
  listsync status [common flags]
  listsync shell [common flags]
  listsync login [common flags]
  listsync logout [common flags]
  listsync help
  listsync version [--verbose]

Lists are named by key (list1) or display name. Without --list, the first
list is used. Task numbers are 1-based; "1,3" and "2-4" select several.

Shell builtins:
  overwrite        Keep local lists after a conflict
  reload           Take the remote lists after a conflict
  autosave on|off  Toggle saving after every change
  quit             Leave the shell

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Exit codes:
  0 ok, 1 usage, 2 credentials, 3 backend, 4 conflict, 5 pending offline
`
