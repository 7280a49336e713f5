package commands

import (
	"listsync/internal/lists"
)

// resolveList maps a --list value to a key. Empty means the first list.
func resolveList(names lists.Names, ref string) (lists.ID, error) {
	if ref == "" {
		return names.Keys()[0], nil
	}
	return names.Resolve(ref)
}

// optString is a string flag that remembers whether it was given, so that
// "--desc ''" can clear a value while an absent flag keeps it.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

func (o *optString) reset() { *o = optString{} }
