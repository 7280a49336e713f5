// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"listsync/internal/lists"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	descIndent = "        | "
)

// FormatTask formats a task line and its description.
// Format: "{N:>4}  {TITLE}\n" followed by one "        | {LINE}\n" per
// description line.
func FormatTask(w io.Writer, num int, task lists.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeTitle(task.Title))
	if strings.TrimSpace(task.Description) == "" {
		return
	}
	for _, line := range strings.Split(task.Description, "\n") {
		fmt.Fprintln(w, strings.TrimRight(descIndent+line, " "))
	}
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, e lists.Entry) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%s)\n", normalizeListTitle(e.Name), e.ID)
	fmt.Fprintln(w, ListSeparator)
}

// FormatList formats a whole section. Empty lists print "(empty)".
func FormatList(w io.Writer, e lists.Entry, l lists.List) {
	FormatListHeader(w, e)
	if len(l) == 0 {
		fmt.Fprintln(w, "      (empty)")
		return
	}
	for i, t := range l {
		FormatTask(w, i+1, t)
	}
}

// FormatListName formats a list for the lists command: "key: name".
func FormatListName(w io.Writer, e lists.Entry) {
	fmt.Fprintf(w, "%s: %s\n", e.ID, normalizeListTitle(e.Name))
}

// Status is the snapshot printed by the status command.
type Status struct {
	Backend    string
	Online     bool
	Unsaved    bool
	Autosave   bool
	Conflict   bool
	Pending    int
	LastSynced string
	Message    string
}

// FormatStatus prints one "key: value" line per field.
func FormatStatus(w io.Writer, s Status) {
	synced := s.LastSynced
	if synced == "" {
		synced = "never"
	}
	fmt.Fprintf(w, "backend:     %s\n", s.Backend)
	fmt.Fprintf(w, "online:      %s\n", yesNo(s.Online))
	fmt.Fprintf(w, "autosave:    %s\n", onOff(s.Autosave))
	fmt.Fprintf(w, "unsaved:     %s\n", yesNo(s.Unsaved))
	fmt.Fprintf(w, "conflict:    %s\n", yesNo(s.Conflict))
	fmt.Fprintf(w, "pending:     %d\n", s.Pending)
	fmt.Fprintf(w, "last synced: %s\n", synced)
	if s.Message != "" {
		fmt.Fprintf(w, "status:      %s\n", s.Message)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
