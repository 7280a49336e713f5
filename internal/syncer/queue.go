package syncer

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"listsync/internal/lists"
)

// Pending is a full snapshot captured while the remote was unreachable.
type Pending struct {
	ID         string
	Captured   time.Time
	Collection *lists.Collection
	// Force skips the conflict check on replay.
	Force bool
}

// Queue buffers offline snapshots. Each entry is a complete copy, so only
// the newest one is ever replayed; older entries are dropped on drain.
type Queue struct {
	mu      sync.Mutex
	entries []Pending
	now     func() time.Time
}

// NewQueue returns an empty queue stamping entries with now.
func NewQueue(now func() time.Time) *Queue {
	if now == nil {
		now = time.Now
	}
	return &Queue{now: now}
}

// Enqueue stores a copy of c and returns the new entry. force records that
// the user already chose to overwrite the remote.
func (q *Queue) Enqueue(c *lists.Collection, force bool) Pending {
	q.mu.Lock()
	defer q.mu.Unlock()

	p := Pending{
		ID:         uuid.NewString(),
		Captured:   q.now(),
		Collection: c.Clone(),
		Force:      force,
	}
	q.entries = append(q.entries, p)
	return p
}

// DrainLatest removes every entry and returns the newest one. The result is
// forced when any drained entry was, so edits made after an offline
// overwrite keep that decision.
func (q *Queue) DrainLatest() (Pending, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return Pending{}, false
	}
	latest := q.entries[len(q.entries)-1]
	for _, p := range q.entries {
		latest.Force = latest.Force || p.Force
	}
	q.entries = nil
	return latest, true
}

// Clear drops every entry.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = nil
}

// Len returns the number of buffered snapshots.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
