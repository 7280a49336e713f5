package syncer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"listsync/internal/lists"
	"listsync/internal/syncer"
)

func TestHasConflict(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		local  string
		want   bool
	}{
		{"same", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z", false},
		{"remote empty", "", "2024-01-01T00:00:00Z", false},
		{"local empty", "2024-01-01T00:00:00Z", "", false},
		{"both empty", "", "", false},
		{"older remote", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", true},
		{"newer remote", "2024-01-03T00:00:00Z", "2024-01-02T00:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, syncer.HasConflict(tt.remote, tt.local))
		})
	}
}

func TestHasConflict_Symmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")

		if syncer.HasConflict(a, a) {
			t.Fatalf("HasConflict(%q, %q) = true", a, a)
		}
		if syncer.HasConflict("", b) || syncer.HasConflict(a, "") {
			t.Fatalf("empty side reported a conflict")
		}
		want := a != "" && b != "" && a != b
		if got := syncer.HasConflict(a, b); got != want {
			t.Fatalf("HasConflict(%q, %q) = %v, want %v", a, b, got, want)
		}
		if syncer.HasConflict(a, b) != syncer.HasConflict(b, a) {
			t.Fatalf("HasConflict not symmetric for %q, %q", a, b)
		}
	})
}

func TestQueue_DrainLatest(t *testing.T) {
	names := lists.DefaultNames(2)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := syncer.NewQueue(func() time.Time { return at })

	s1, err := lists.NewCollection(names).Add("list1", lists.Task{Title: "one"})
	assert.NoError(t, err)
	s2, err := s1.Add("list1", lists.Task{Title: "two"})
	assert.NoError(t, err)

	p1 := q.Enqueue(s1, false)
	p2 := q.Enqueue(s2, false)
	assert.NotEqual(t, p1.ID, p2.ID)
	assert.Equal(t, 2, q.Len())

	got, ok := q.DrainLatest()
	assert.True(t, ok)
	assert.Equal(t, p2.ID, got.ID)
	assert.Equal(t, at, got.Captured)
	assert.True(t, s2.Equal(got.Collection))
	assert.False(t, got.Force)
	assert.Equal(t, 0, q.Len())

	_, ok = q.DrainLatest()
	assert.False(t, ok)
}

func TestQueue_DrainLatestKeepsForce(t *testing.T) {
	names := lists.DefaultNames(1)
	q := syncer.NewQueue(nil)

	s1 := lists.NewCollection(names)
	s2, err := s1.Add("list1", lists.Task{Title: "after overwrite"})
	assert.NoError(t, err)

	q.Enqueue(s1, true)
	q.Enqueue(s2, false)

	got, ok := q.DrainLatest()
	assert.True(t, ok)
	assert.True(t, s2.Equal(got.Collection))
	assert.True(t, got.Force)
}

func TestQueue_StoresCopies(t *testing.T) {
	q := syncer.NewQueue(nil)
	c := lists.NewCollection(lists.DefaultNames(1))

	p := q.Enqueue(c, false)

	assert.NotSame(t, c, p.Collection)
	assert.True(t, c.Equal(p.Collection))
	q.Clear()
	assert.Equal(t, 0, q.Len())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "conflict-pending", syncer.StateConflictPending.String())
	assert.Equal(t, "credentials-missing", syncer.OutcomeCredentialsMissing.String())
	assert.Equal(t, "unknown", syncer.Outcome(99).String())
}
