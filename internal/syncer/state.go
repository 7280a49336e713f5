package syncer

// State is the orchestrator's position in the request state machine.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateCheckingConflict
	StateSaving
	// StateConflictPending outlives the request that entered it: it holds
	// until ResolveOverwrite, ResolveReload or a Load clears it.
	StateConflictPending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateCheckingConflict:
		return "checking-conflict"
	case StateSaving:
		return "saving"
	case StateConflictPending:
		return "conflict-pending"
	default:
		return "unknown"
	}
}

// Outcome is the result of one orchestrator operation.
type Outcome int

const (
	OutcomeNoop Outcome = iota
	OutcomeSaved
	OutcomeLoaded
	// OutcomeQueued means the snapshot went to the offline queue.
	OutcomeQueued
	// OutcomeConflict means a human has to choose overwrite or reload.
	OutcomeConflict
	OutcomeFailed
	OutcomeCredentialsMissing
	// OutcomeBusy means another operation was in flight; the request was dropped.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeSaved:
		return "saved"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeQueued:
		return "queued"
	case OutcomeConflict:
		return "conflict"
	case OutcomeFailed:
		return "failed"
	case OutcomeCredentialsMissing:
		return "credentials-missing"
	case OutcomeBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Status messages published through Orchestrator.Status.
const (
	StatusSaved              = "Changes saved"
	StatusLoaded             = "Loaded lists from remote"
	StatusLoadedEmpty        = "No saved lists found, starting empty"
	StatusPendingOffline     = "Changes pending offline"
	StatusPendingNetwork     = "Changes pending - network error"
	StatusConflict           = "Conflict: remote lists changed since last sync (overwrite or reload)"
	StatusCredentialsMissing = "Remote credentials missing, fill them in to sync"
	StatusBusy               = "Sync already in progress"
	StatusReplaying          = "Syncing changes after coming back online"
	StatusNamesSaved         = "List names saved"
)
