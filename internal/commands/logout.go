package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"listsync/internal/config"
	"listsync/internal/exitcode"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd forgets the Drive token. oauth_client.json stays so a later
// login needs no setup.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove the stored Google token" }
func (c *LogoutCmd) Usage() string     { return "listsync logout [common flags]" }
func (c *LogoutCmd) NeedsSync() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if cfg.Backend != config.BackendDrive {
		fmt.Fprintf(errOut, "error: logout is only used by the %s backend (current: %s)\n", config.BackendDrive, cfg.Backend)
		fmt.Fprintf(errOut, "To drop GitHub access, remove github.token from %s or unset %s_GITHUB_TOKEN.\n",
			cfg.SettingsPath(), config.EnvPrefix)
		return exitcode.UserError
	}

	err := cfg.RemoveToken()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	case err != nil:
		fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
