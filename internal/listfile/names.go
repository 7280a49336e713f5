package listfile

import (
	"bytes"
	"strings"

	"listsync/internal/lists"
)

// EncodeNames renders one "<key>:<display name>" line per configured list.
func EncodeNames(names lists.Names) []byte {
	var b bytes.Buffer
	for i, e := range names.Entries() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(e.ID) + ":" + e.Name)
	}
	return b.Bytes()
}

// DecodeNames applies the names found in data on top of base. Lines without
// a colon, unknown keys and blank names are ignored, so the key set of the
// result is always that of base.
func DecodeNames(base lists.Names, data []byte) lists.Names {
	out := base
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		key, name, ok := strings.Cut(strings.TrimRight(line, "\r"), ":")
		if !ok {
			continue
		}
		renamed, err := out.Rename(lists.ID(key), name)
		if err != nil {
			continue
		}
		out = renamed
	}
	return out
}
