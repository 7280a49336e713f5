// Package syncer keeps a local list collection in step with a remote blob
// store. It owns the conflict check, the offline queue and the request state
// machine; callers feed it discrete events and read its observers.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"listsync/internal/blobstore"
	"listsync/internal/listfile"
	"listsync/internal/lists"
)

// Prober reports whether the remote is reachable.
type Prober interface {
	Probe(ctx context.Context) bool
}

// Options configures an Orchestrator.
type Options struct {
	// TasksPath and NamesPath locate the two blobs in the store.
	TasksPath string
	NamesPath string

	// Names is the starting list configuration. Zero means the default ten lists.
	Names lists.Names

	Autosave bool

	// Credentials reports whether the store can be used at all.
	// Nil means credentials are always present.
	Credentials func() bool

	Now    func() time.Time
	Logger *slog.Logger
}

// Orchestrator serializes load and save requests against one store.
//
// Operations that touch the network hold a non-blocking in-flight guard; a
// second request arriving meanwhile returns OutcomeBusy. Observers read
// under a separate lock and never block on the network.
type Orchestrator struct {
	store  blobstore.Store
	probe  Prober
	queue  *Queue
	logger *slog.Logger

	tasksPath   string
	namesPath   string
	credentials func() bool
	now         func() time.Time

	inflight sync.Mutex

	mu         sync.RWMutex
	names      lists.Names
	coll       *lists.Collection
	lastSynced string
	unsaved    bool
	namesDirty bool
	online     bool
	autosave   bool
	state      State
	status     string
}

// New returns an idle orchestrator holding an empty collection.
func New(store blobstore.Store, probe Prober, opts Options) *Orchestrator {
	if opts.Names.Len() == 0 {
		opts.Names = lists.DefaultNames(lists.DefaultCount)
	}
	if opts.Credentials == nil {
		opts.Credentials = func() bool { return true }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		store:       store,
		probe:       probe,
		queue:       NewQueue(opts.Now),
		logger:      opts.Logger,
		tasksPath:   opts.TasksPath,
		namesPath:   opts.NamesPath,
		credentials: opts.Credentials,
		now:         opts.Now,
		names:       opts.Names,
		coll:        lists.NewCollection(opts.Names),
		online:      true,
		autosave:    opts.Autosave,
	}
}

// Save writes the current collection. A non-forced save first checks the
// remote timestamp and stops in ConflictPending when someone else wrote
// since the last sync.
func (o *Orchestrator) Save(ctx context.Context, force bool) Outcome {
	if !o.inflight.TryLock() {
		return o.busy("save")
	}
	defer o.inflight.Unlock()
	return o.save(ctx, force)
}

// Load replaces the collection with the remote one, discarding local edits
// and anything in the offline queue.
func (o *Orchestrator) Load(ctx context.Context) Outcome {
	if !o.inflight.TryLock() {
		return o.busy("load")
	}
	defer o.inflight.Unlock()
	return o.load(ctx)
}

// ResolveOverwrite settles a conflict by force-saving the local collection.
func (o *Orchestrator) ResolveOverwrite(ctx context.Context) Outcome {
	if !o.inflight.TryLock() {
		return o.busy("overwrite")
	}
	defer o.inflight.Unlock()
	if !o.ConflictPending() {
		return OutcomeNoop
	}
	return o.save(ctx, true)
}

// ResolveReload settles a conflict by adopting the remote collection.
func (o *Orchestrator) ResolveReload(ctx context.Context) Outcome {
	if !o.inflight.TryLock() {
		return o.busy("reload")
	}
	defer o.inflight.Unlock()
	if !o.ConflictPending() {
		return OutcomeNoop
	}
	return o.load(ctx)
}

// Mutate applies fn to the current collection and marks it unsaved. The
// returned error comes from fn; when it is non-nil nothing changes.
//
// The edit is kept even when another request is in flight. In that case the
// outcome is OutcomeBusy and the change stays unsaved until the next save.
func (o *Orchestrator) Mutate(ctx context.Context, fn func(*lists.Collection) (*lists.Collection, error)) (Outcome, error) {
	o.mu.Lock()
	next, err := fn(o.coll)
	if err != nil {
		o.mu.Unlock()
		return OutcomeNoop, err
	}
	o.coll = next
	o.unsaved = true
	autosave := o.autosave
	o.mu.Unlock()

	if !autosave {
		return OutcomeNoop, nil
	}
	if !o.inflight.TryLock() {
		return o.busy("autosave"), nil
	}
	defer o.inflight.Unlock()
	return o.save(ctx, false), nil
}

// SetAutosave toggles autosave. Turning it on with unsaved changes saves
// right away.
func (o *Orchestrator) SetAutosave(ctx context.Context, on bool) Outcome {
	o.mu.Lock()
	o.autosave = on
	pending := o.unsaved
	o.mu.Unlock()

	if !on || !pending {
		return OutcomeNoop
	}
	if !o.inflight.TryLock() {
		return o.busy("autosave")
	}
	defer o.inflight.Unlock()
	return o.save(ctx, false)
}

// Tick handles one connectivity event. Coming back online with queued
// snapshots replaces the collection with the newest one and saves it.
// A tick that finds another request in flight is dropped without touching
// the status.
func (o *Orchestrator) Tick(ctx context.Context) Outcome {
	if !o.inflight.TryLock() {
		return OutcomeBusy
	}
	defer o.inflight.Unlock()

	online := o.probe.Probe(ctx)
	o.mu.Lock()
	was := o.online
	o.online = online
	o.mu.Unlock()

	if was != online {
		o.logger.Info("connectivity changed", "online", online)
	}
	if !online {
		return OutcomeNoop
	}

	p, ok := o.queue.DrainLatest()
	if !ok {
		return OutcomeNoop
	}
	o.logger.Info("replaying offline snapshot", "id", p.ID, "captured", p.Captured, "force", p.Force)

	o.mu.Lock()
	o.coll = p.Collection
	o.unsaved = true
	o.status = StatusReplaying
	o.mu.Unlock()

	return o.save(ctx, p.Force)
}

// RenameList gives list id a new display name. The names blob is written at
// once when the remote is reachable; the task blob follows through the
// usual autosave path, since its section headers carry display names.
func (o *Orchestrator) RenameList(ctx context.Context, id lists.ID, name string) (Outcome, error) {
	o.mu.Lock()
	next, err := o.names.Rename(id, name)
	if err != nil {
		o.mu.Unlock()
		return OutcomeNoop, err
	}
	o.names = next
	o.namesDirty = true
	o.unsaved = true
	autosave := o.autosave
	o.mu.Unlock()

	if !o.inflight.TryLock() {
		return o.busy("rename"), nil
	}
	defer o.inflight.Unlock()

	if autosave {
		// save writes the names blob first while it is dirty.
		return o.save(ctx, false), nil
	}
	if !o.credentials() {
		return OutcomeNoop, nil
	}
	if !o.setOnline(o.probe.Probe(ctx)) {
		return OutcomeNoop, nil
	}
	if err := o.writeNames(ctx, next); err != nil {
		o.logger.Warn("writing list names failed", "err", err)
		o.setStatus("Error saving list names: " + err.Error())
		return OutcomeFailed, nil
	}
	o.setStatus(StatusNamesSaved)
	return OutcomeSaved, nil
}

func (o *Orchestrator) save(ctx context.Context, force bool) Outcome {
	if !o.credentials() {
		o.setStatus(StatusCredentialsMissing)
		return OutcomeCredentialsMissing
	}

	o.mu.RLock()
	snap, names, lastSynced, prev := o.coll, o.names, o.lastSynced, o.state
	namesDirty := o.namesDirty
	o.mu.RUnlock()

	if !o.setOnline(o.probe.Probe(ctx)) {
		p := o.queue.Enqueue(snap, force)
		o.logger.Info("offline, snapshot queued", "id", p.ID, "force", force, "queued", o.queue.Len())
		o.setStatus(StatusPendingOffline)
		return OutcomeQueued
	}

	var revision string
	if force {
		// No timestamp check, but the write still names the revision it
		// replaces so stores that compare revisions accept it.
		b, err := o.store.Fetch(ctx, o.tasksPath)
		switch {
		case errors.Is(err, blobstore.ErrNotFound):
		case err != nil:
			return o.saveFailed(snap, prev, force, err)
		default:
			revision = b.Revision
		}
	} else {
		o.setState(StateCheckingConflict)
		b, err := o.store.Fetch(ctx, o.tasksPath)
		switch {
		case errors.Is(err, blobstore.ErrNotFound):
		case err != nil:
			return o.saveFailed(snap, prev, force, err)
		default:
			revision = b.Revision
			remote := listfile.ReadMetadata(b.Content).LastUpdated
			if HasConflict(remote, lastSynced) {
				o.logger.Info("remote changed since last sync", "remote", remote, "local", lastSynced)
				o.enterConflict()
				return OutcomeConflict
			}
		}
	}

	o.setState(StateSaving)
	if namesDirty {
		if err := o.writeNames(ctx, names); err != nil {
			return o.saveFailed(snap, prev, force, err)
		}
	}

	ts := o.now().UTC().Format(time.RFC3339)
	content := listfile.Encode(names, snap, listfile.Metadata{LastUpdated: ts})
	rev, err := o.store.Put(ctx, o.tasksPath, content, revision)
	if errors.Is(err, blobstore.ErrConflict) {
		o.logger.Info("remote revision moved during save", "path", o.tasksPath)
		o.enterConflict()
		return OutcomeConflict
	}
	if err != nil {
		return o.saveFailed(snap, prev, force, err)
	}

	o.mu.Lock()
	o.lastSynced = ts
	if o.coll == snap {
		o.unsaved = false
	}
	o.state = StateIdle
	o.status = StatusSaved
	o.mu.Unlock()

	o.logger.Info("saved", "path", o.tasksPath, "revision", rev, "last_updated", ts)
	return OutcomeSaved
}

// writeNames puts the names blob over whatever revision is current and
// clears namesDirty when names is still the live value.
func (o *Orchestrator) writeNames(ctx context.Context, names lists.Names) error {
	var revision string
	b, err := o.store.Fetch(ctx, o.namesPath)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
	case err != nil:
		return err
	default:
		revision = b.Revision
	}

	if _, err := o.store.Put(ctx, o.namesPath, listfile.EncodeNames(names), revision); err != nil {
		return err
	}

	o.mu.Lock()
	if o.names.Equal(names) {
		o.namesDirty = false
	}
	o.mu.Unlock()
	o.logger.Info("saved list names", "path", o.namesPath)
	return nil
}

func (o *Orchestrator) saveFailed(snap *lists.Collection, prev State, force bool, err error) Outcome {
	if prev != StateConflictPending {
		prev = StateIdle
	}

	if blobstore.IsTransient(err) {
		p := o.queue.Enqueue(snap, force)
		o.logger.Warn("save failed, snapshot queued", "id", p.ID, "force", force, "err", err)
		o.mu.Lock()
		o.online = false
		o.state = prev
		o.status = StatusPendingNetwork
		o.mu.Unlock()
		return OutcomeQueued
	}

	o.logger.Error("save failed", "err", err)
	o.mu.Lock()
	o.state = prev
	o.status = "Error saving: " + err.Error()
	o.mu.Unlock()
	return OutcomeFailed
}

func (o *Orchestrator) load(ctx context.Context) Outcome {
	if !o.credentials() {
		o.setStatus(StatusCredentialsMissing)
		return OutcomeCredentialsMissing
	}

	o.mu.Lock()
	prev := o.state
	base := o.names
	o.state = StateLoading
	o.mu.Unlock()

	names := base
	b, err := o.store.Fetch(ctx, o.namesPath)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
	case err != nil:
		return o.loadFailed(prev, fmt.Errorf("list names: %w", err))
	default:
		names = listfile.DecodeNames(base, b.Content)
	}

	var (
		coll   *lists.Collection
		meta   listfile.Metadata
		status = StatusLoaded
	)
	b, err = o.store.Fetch(ctx, o.tasksPath)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		coll = lists.NewCollection(names)
		status = StatusLoadedEmpty
	case err != nil:
		return o.loadFailed(prev, fmt.Errorf("task lists: %w", err))
	default:
		coll, meta = listfile.Decode(names, b.Content)
	}

	o.queue.Clear()
	o.mu.Lock()
	o.names = names
	o.coll = coll
	o.lastSynced = meta.LastUpdated
	o.unsaved = false
	o.namesDirty = false
	o.online = true
	o.state = StateIdle
	o.status = status
	o.mu.Unlock()

	o.logger.Info("loaded", "path", o.tasksPath, "last_updated", meta.LastUpdated)
	return OutcomeLoaded
}

func (o *Orchestrator) loadFailed(prev State, err error) Outcome {
	if prev != StateConflictPending {
		prev = StateIdle
	}
	o.logger.Error("load failed", "err", err)

	o.mu.Lock()
	if blobstore.IsTransient(err) {
		o.online = false
	}
	o.state = prev
	o.status = "Error loading: " + err.Error()
	o.mu.Unlock()
	return OutcomeFailed
}

func (o *Orchestrator) busy(op string) Outcome {
	o.logger.Debug("request dropped, another is in flight", "op", op)
	o.setStatus(StatusBusy)
	return OutcomeBusy
}

func (o *Orchestrator) enterConflict() {
	o.mu.Lock()
	o.state = StateConflictPending
	o.status = StatusConflict
	o.mu.Unlock()
}

func (o *Orchestrator) setOnline(online bool) bool {
	o.mu.Lock()
	o.online = online
	o.mu.Unlock()
	return online
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) setStatus(s string) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// Unsaved reports whether the collection has changes not yet written.
func (o *Orchestrator) Unsaved() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.unsaved
}

// Online reports the result of the latest probe.
func (o *Orchestrator) Online() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.online
}

// ConflictPending reports whether a human has to choose overwrite or reload.
func (o *Orchestrator) ConflictPending() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state == StateConflictPending
}

func (o *Orchestrator) Status() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// LastSynced is the timestamp of the last load or save, empty before either.
func (o *Orchestrator) LastSynced() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastSynced
}

// Collection returns the live snapshot. It is never mutated in place.
func (o *Orchestrator) Collection() *lists.Collection {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.coll
}

func (o *Orchestrator) Names() lists.Names {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.names
}

func (o *Orchestrator) Autosave() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.autosave
}

// Pending returns the number of queued offline snapshots.
func (o *Orchestrator) Pending() int {
	return o.queue.Len()
}
