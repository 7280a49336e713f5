// Package lists defines the in-memory list collection that is synchronized
// with the remote store.
package lists

import (
	"errors"
	"fmt"
	"strings"
)

// ID is the stable key of a configured list (e.g. "list1").
type ID string

// DefaultCount is the number of lists configured out of the box.
const DefaultCount = 10

// ErrUnknownList is returned when an ID is not part of the configuration.
var ErrUnknownList = errors.New("unknown list")

// Entry pairs a list key with its human-readable display name.
type Entry struct {
	ID   ID
	Name string
}

// Names is the ordered list configuration. Values are immutable: Rename
// returns a new Names and leaves the receiver untouched.
type Names struct {
	entries []Entry
}

// DefaultNames returns n lists keyed list1..listN and named "List 1".."List N".
func DefaultNames(n int) Names {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			ID:   ID(fmt.Sprintf("list%d", i+1)),
			Name: fmt.Sprintf("List %d", i+1),
		}
	}
	return Names{entries: entries}
}

// NewNames builds a configuration from explicit entries.
// Keys must be non-empty and unique.
func NewNames(entries ...Entry) (Names, error) {
	seen := make(map[ID]bool, len(entries))
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return Names{}, fmt.Errorf("entry %d: empty list key", i)
		}
		if seen[e.ID] {
			return Names{}, fmt.Errorf("duplicate list key: %s", e.ID)
		}
		seen[e.ID] = true
		out[i] = e
	}
	return Names{entries: out}, nil
}

// Len returns the number of configured lists.
func (n Names) Len() int { return len(n.entries) }

// Entries returns a copy of the configured entries in order.
func (n Names) Entries() []Entry {
	out := make([]Entry, len(n.entries))
	copy(out, n.entries)
	return out
}

// Keys returns the list keys in configuration order.
func (n Names) Keys() []ID {
	out := make([]ID, len(n.entries))
	for i, e := range n.entries {
		out[i] = e.ID
	}
	return out
}

// Has reports whether id is configured.
func (n Names) Has(id ID) bool {
	return n.index(id) >= 0
}

// Display returns the display name for id, or "" if id is unknown.
func (n Names) Display(id ID) string {
	if i := n.index(id); i >= 0 {
		return n.entries[i].Name
	}
	return ""
}

// Lookup returns the first key whose display name is exactly name.
// Two lists sharing a display name both resolve to the earlier one.
func (n Names) Lookup(name string) (ID, bool) {
	for _, e := range n.entries {
		if e.Name == name {
			return e.ID, true
		}
	}
	return "", false
}

// Resolve finds a list by key or by display name (case-insensitive, trimmed).
// Unlike Lookup it refuses to guess when display names collide.
func (n Names) Resolve(ref string) (ID, error) {
	ref = strings.TrimSpace(ref)
	if n.Has(ID(ref)) {
		return ID(ref), nil
	}

	refLower := strings.ToLower(ref)
	var matches []ID
	for _, e := range n.entries {
		if strings.ToLower(strings.TrimSpace(e.Name)) == refLower {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("list not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous list name: %s", ref)
	}
}

// Rename returns a copy of n with id's display name replaced.
func (n Names) Rename(id ID, name string) (Names, error) {
	i := n.index(id)
	if i < 0 {
		return n, fmt.Errorf("%w: %s", ErrUnknownList, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return n, fmt.Errorf("empty name for list %s", id)
	}
	out := n.Entries()
	out[i].Name = name
	return Names{entries: out}, nil
}

// Equal reports whether both configurations hold the same entries in order.
func (n Names) Equal(o Names) bool {
	if len(n.entries) != len(o.entries) {
		return false
	}
	for i := range n.entries {
		if n.entries[i] != o.entries[i] {
			return false
		}
	}
	return true
}

func (n Names) index(id ID) int {
	for i, e := range n.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
