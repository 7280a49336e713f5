package commands

import (
	"reflect"
	"testing"
)

func TestParseTaskNums_Single(t *testing.T) {
	got, err := ParseTaskNums([]string{"3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("expected [2], got %v", got)
	}
}

func TestParseTaskNums_Mixed(t *testing.T) {
	got, err := ParseTaskNums([]string{"1,4", "6-8", "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 3, 5, 6, 7, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseTaskNums_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskNums(nil)
	if err != ErrTaskNumRequired {
		t.Errorf("expected ErrTaskNumRequired, got %v", err)
	}

	_, err = ParseTaskNums([]string{","})
	if err != ErrTaskNumRequired {
		t.Errorf("expected ErrTaskNumRequired for empty group, got %v", err)
	}
}

func TestParseTaskNums_Invalid_Error(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"0", "invalid task number: 0"},
		{"a1", "invalid task number: a1"},
		{"-3", "invalid task number: -3"},
		{"5-2", "invalid task range: 5-2"},
		{"2-x", "invalid task number: 2-x"},
	}

	for _, tt := range tests {
		_, err := ParseTaskNums([]string{tt.arg})
		if err == nil {
			t.Errorf("%s: expected error, got nil", tt.arg)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.arg, tt.want, err.Error())
		}
	}
}

func TestParseTaskNum(t *testing.T) {
	got, err := ParseTaskNum([]string{"12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 11 {
		t.Errorf("expected 11, got %d", got)
	}

	if _, err := ParseTaskNum([]string{"1", "2"}); err == nil {
		t.Error("expected error for two numbers")
	}
	if _, err := ParseTaskNum(nil); err != ErrTaskNumRequired {
		t.Errorf("expected ErrTaskNumRequired, got %v", err)
	}
}
