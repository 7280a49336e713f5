package output_test

import (
	"bytes"
	"testing"

	"listsync/internal/lists"
	"listsync/internal/output"
)

func TestFormatList(t *testing.T) {
	var buf bytes.Buffer
	output.FormatList(&buf, lists.Entry{ID: "list1", Name: "Groceries"}, lists.List{
		{Title: "Buy milk", Description: "Get 2% and oat\n\nor soy"},
		{Title: "  "},
	})

	expected := "------------\n" +
		"Groceries (list1)\n" +
		"------------\n" +
		"   1  Buy milk\n" +
		"        | Get 2% and oat\n" +
		"        |\n" +
		"        | or soy\n" +
		"   2  (untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatList_Empty(t *testing.T) {
	var buf bytes.Buffer
	output.FormatList(&buf, lists.Entry{ID: "list2", Name: ""}, nil)

	expected := "------------\n(untitled) (list2)\n------------\n      (empty)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatStatus(t *testing.T) {
	var buf bytes.Buffer
	output.FormatStatus(&buf, output.Status{
		Backend:  "github",
		Online:   true,
		Autosave: true,
		Pending:  2,
		Message:  "Changes saved",
	})

	expected := "backend:     github\n" +
		"online:      yes\n" +
		"autosave:    on\n" +
		"unsaved:     no\n" +
		"conflict:    no\n" +
		"pending:     2\n" +
		"last synced: never\n" +
		"status:      Changes saved\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
