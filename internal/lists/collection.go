package lists

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
)

var (
	// ErrStaleSelection is returned when a selection is used against a
	// collection other than the one it was taken from.
	ErrStaleSelection = errors.New("selection is stale, re-select after every change")

	// ErrOutOfRange is returned for positions outside a list.
	ErrOutOfRange = errors.New("task number out of range")

	// ErrSingleSelection is returned when an operation needs exactly one task.
	ErrSingleSelection = errors.New("select exactly one task")

	// ErrEmptyTitle is returned when adding or editing a task with no title.
	ErrEmptyTitle = errors.New("title required")
)

// Task is one entry of a list. Its identity is its position.
type Task struct {
	Title       string
	Description string
}

// List is an ordered sequence of tasks.
type List []Task

// generation hands out a unique stamp to every collection value.
var generation atomic.Uint64

// Collection is a snapshot of every configured list. It is never modified
// after construction: mutations return a new Collection with a new stamp.
type Collection struct {
	keys  []ID
	lists map[ID]List
	stamp uint64
}

// NewCollection returns a collection with an empty list for every key in names.
func NewCollection(names Names) *Collection {
	return FromLists(names, nil)
}

// FromLists builds a collection for names, taking the tasks of each
// configured key from data. Keys in data that are not configured are ignored.
func FromLists(names Names, data map[ID]List) *Collection {
	keys := names.Keys()
	lists := make(map[ID]List, len(keys))
	for _, id := range keys {
		lists[id] = slices.Clone(data[id])
	}
	return &Collection{keys: keys, lists: lists, stamp: generation.Add(1)}
}

// Keys returns the list keys in configuration order.
func (c *Collection) Keys() []ID {
	return slices.Clone(c.keys)
}

// List returns a copy of the tasks of id.
func (c *Collection) List(id ID) List {
	return slices.Clone(c.lists[id])
}

// Len returns the number of tasks in id.
func (c *Collection) Len(id ID) int {
	return len(c.lists[id])
}

// Lists returns a deep copy of all lists keyed by ID.
func (c *Collection) Lists() map[ID]List {
	out := make(map[ID]List, len(c.lists))
	for id, l := range c.lists {
		out[id] = slices.Clone(l)
	}
	return out
}

// Clone returns an independent copy carrying a fresh stamp.
func (c *Collection) Clone() *Collection {
	return c.derive(c.lists)
}

// Equal compares keys and tasks, ignoring stamps.
func (c *Collection) Equal(o *Collection) bool {
	if c == nil || o == nil {
		return c == o
	}
	if !slices.Equal(c.keys, o.keys) {
		return false
	}
	for _, id := range c.keys {
		if !slices.Equal(c.lists[id], o.lists[id]) {
			return false
		}
	}
	return true
}

// Empty reports whether no list holds a task.
func (c *Collection) Empty() bool {
	for _, l := range c.lists {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

// Selection identifies tasks by position within one list of one snapshot.
type Selection struct {
	List      ID
	Positions []int // 0-based, ascending, unique
	stamp     uint64
}

// Select binds 0-based positions in list id to this snapshot.
func (c *Collection) Select(id ID, positions ...int) (Selection, error) {
	l, ok := c.lists[id]
	if !ok {
		return Selection{}, fmt.Errorf("%w: %s", ErrUnknownList, id)
	}
	if len(positions) == 0 {
		return Selection{}, fmt.Errorf("%w: nothing selected", ErrOutOfRange)
	}
	pos := slices.Clone(positions)
	slices.Sort(pos)
	pos = slices.Compact(pos)
	for _, p := range pos {
		if p < 0 || p >= len(l) {
			return Selection{}, fmt.Errorf("%w: %d", ErrOutOfRange, p+1)
		}
	}
	return Selection{List: id, Positions: pos, stamp: c.stamp}, nil
}

// Add appends a task to list id.
func (c *Collection) Add(id ID, t Task) (*Collection, error) {
	if _, ok := c.lists[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, id)
	}
	t, err := cleanTitle(t)
	if err != nil {
		return nil, err
	}
	next := c.Lists()
	next[id] = append(next[id], t)
	return c.derive(next), nil
}

// Update replaces the single selected task.
func (c *Collection) Update(sel Selection, t Task) (*Collection, error) {
	if err := c.checkSingle(sel); err != nil {
		return nil, err
	}
	t, err := cleanTitle(t)
	if err != nil {
		return nil, err
	}
	next := c.Lists()
	next[sel.List][sel.Positions[0]] = t
	return c.derive(next), nil
}

// cleanTitle trims surrounding whitespace from the title, which the list
// file cannot carry, and rejects what is left if it is blank.
func cleanTitle(t Task) (Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return Task{}, ErrEmptyTitle
	}
	return t, nil
}

// Remove deletes every selected task.
func (c *Collection) Remove(sel Selection) (*Collection, error) {
	if err := c.check(sel); err != nil {
		return nil, err
	}
	next := c.Lists()
	next[sel.List] = without(next[sel.List], sel.Positions)
	return c.derive(next), nil
}

// MoveUp swaps the single selected task with its predecessor.
// Moving the first task is a no-op that still yields a new snapshot.
func (c *Collection) MoveUp(sel Selection) (*Collection, error) {
	return c.swap(sel, -1)
}

// MoveDown swaps the single selected task with its successor.
func (c *Collection) MoveDown(sel Selection) (*Collection, error) {
	return c.swap(sel, 1)
}

// Transfer appends the selected tasks to list to, keeping their order, and
// removes them from the source list.
func (c *Collection) Transfer(sel Selection, to ID) (*Collection, error) {
	if err := c.check(sel); err != nil {
		return nil, err
	}
	if _, ok := c.lists[to]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, to)
	}
	if to == sel.List {
		return nil, fmt.Errorf("cannot move tasks to the same list")
	}
	next := c.Lists()
	for _, p := range sel.Positions {
		next[to] = append(next[to], next[sel.List][p])
	}
	next[sel.List] = without(next[sel.List], sel.Positions)
	return c.derive(next), nil
}

func (c *Collection) swap(sel Selection, delta int) (*Collection, error) {
	if err := c.checkSingle(sel); err != nil {
		return nil, err
	}
	next := c.Lists()
	l := next[sel.List]
	i, j := sel.Positions[0], sel.Positions[0]+delta
	if j >= 0 && j < len(l) {
		l[i], l[j] = l[j], l[i]
	}
	return c.derive(next), nil
}

func (c *Collection) check(sel Selection) error {
	if sel.stamp != c.stamp {
		return ErrStaleSelection
	}
	return nil
}

func (c *Collection) checkSingle(sel Selection) error {
	if err := c.check(sel); err != nil {
		return err
	}
	if len(sel.Positions) != 1 {
		return ErrSingleSelection
	}
	return nil
}

func (c *Collection) derive(lists map[ID]List) *Collection {
	out := make(map[ID]List, len(c.keys))
	for _, id := range c.keys {
		out[id] = slices.Clone(lists[id])
	}
	return &Collection{keys: slices.Clone(c.keys), lists: out, stamp: generation.Add(1)}
}

// without returns l minus the ascending positions in drop.
func without(l List, drop []int) List {
	out := make(List, 0, len(l))
	d := 0
	for i, t := range l {
		if d < len(drop) && drop[d] == i {
			d++
			continue
		}
		out = append(out, t)
	}
	return out
}
