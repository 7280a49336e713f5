// Package listfile encodes list collections to the line-oriented text format
// stored remotely, and decodes them back.
//
// Task blob layout:
//
//	--- METADATA ---
//	Last updated: 2024-01-02T00:00:00Z
//	--- END METADATA ---
//
//	=== List 1 ===
//	- Buy milk
//	  |Get 2% and oat
//
// Section headers carry display names, not keys. Decoding routes a section to
// the first configured list with that display name, so two lists sharing a
// name will have their tasks merged into the first one on the next load.
package listfile

import (
	"bufio"
	"bytes"
	"strings"

	"listsync/internal/lists"
)

const (
	metadataStart = "--- METADATA ---"
	metadataEnd   = "--- END METADATA ---"
	updatedPrefix = "Last updated: "

	headerFence = "==="
	taskPrefix  = "- "
	descPrefix  = "  |"
)

// Metadata travels with the task blob.
type Metadata struct {
	// LastUpdated is the timestamp written by the last successful save.
	// Empty when the payload predates metadata.
	LastUpdated string
}

// Encode renders c in names order, preceded by the metadata block.
func Encode(names lists.Names, c *lists.Collection, meta Metadata) []byte {
	var b bytes.Buffer

	b.WriteString(metadataStart + "\n")
	b.WriteString(updatedPrefix + meta.LastUpdated + "\n")
	b.WriteString(metadataEnd + "\n\n")

	for _, e := range names.Entries() {
		b.WriteString(headerFence + " " + e.Name + " " + headerFence + "\n")
		for _, t := range c.List(e.ID) {
			b.WriteString(taskPrefix + t.Title + "\n")
			if strings.TrimSpace(t.Description) == "" {
				continue
			}
			for _, line := range strings.Split(t.Description, "\n") {
				b.WriteString(descPrefix + line + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}

// Decode parses a task blob. It never fails: unrecognized lines are skipped,
// tasks outside a known section are dropped, and a missing metadata block
// yields an empty timestamp.
func Decode(names lists.Names, data []byte) (*lists.Collection, Metadata) {
	var meta Metadata
	out := make(map[lists.ID]lists.List)

	var (
		current   lists.ID
		inSection bool
		inMeta    bool
		seenHead  bool
		lastTask  = -1
		descLines int
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")

		if inMeta {
			// An unterminated block ends at the first section header.
			if !isHeader(line) {
				switch {
				case line == metadataEnd:
					inMeta = false
				case strings.HasPrefix(line, updatedPrefix):
					meta.LastUpdated = strings.TrimSpace(strings.TrimPrefix(line, updatedPrefix))
				}
				continue
			}
			inMeta = false
		}

		switch {
		case line == "":
			// Blank lines end a description run but not a section.
			lastTask = -1

		case line == metadataStart && !seenHead:
			inMeta = true
			lastTask = -1

		case isHeader(line):
			current, inSection = names.Lookup(headerName(line))
			seenHead = true
			lastTask = -1

		case strings.HasPrefix(line, taskPrefix):
			if !inSection {
				lastTask = -1
				continue
			}
			out[current] = append(out[current], lists.Task{Title: strings.TrimPrefix(line, taskPrefix)})
			lastTask = len(out[current]) - 1
			descLines = 0

		case strings.HasPrefix(line, descPrefix):
			if !inSection || lastTask < 0 {
				continue
			}
			t := &out[current][lastTask]
			desc := strings.TrimPrefix(line, descPrefix)
			if descLines == 0 {
				t.Description = desc
			} else {
				t.Description += "\n" + desc
			}
			descLines++

		default:
			lastTask = -1
		}
	}

	return lists.FromLists(names, out), meta
}

// ReadMetadata returns only the metadata of a task blob, stopping at the
// first section header.
func ReadMetadata(data []byte) Metadata {
	var meta Metadata
	inMeta := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		switch {
		case line == metadataStart:
			inMeta = true
		case line == metadataEnd:
			inMeta = false
		case inMeta && strings.HasPrefix(line, updatedPrefix):
			meta.LastUpdated = strings.TrimSpace(strings.TrimPrefix(line, updatedPrefix))
		case isHeader(line):
			return meta
		}
	}
	return meta
}

func isHeader(line string) bool {
	return len(line) >= 2*len(headerFence) &&
		strings.HasPrefix(line, headerFence) &&
		strings.HasSuffix(line, headerFence)
}

func headerName(line string) string {
	name := strings.TrimPrefix(line, headerFence)
	name = strings.TrimSuffix(name, headerFence)
	return strings.TrimSpace(name)
}
