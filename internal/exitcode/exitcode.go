// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown list, out of range).
	UserError = 1

	// AuthError indicates missing or rejected credentials.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3

	// Conflict indicates the remote changed since the last sync and nothing
	// was written.
	Conflict = 4

	// Pending indicates the change was queued because the remote was
	// unreachable.
	Pending = 5
)
