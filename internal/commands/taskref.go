package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTaskNumRequired indicates no task number was provided.
var ErrTaskNumRequired = errors.New("task number required")

// ParseTaskNums parses 1-based task numbers from args and returns them as
// 0-based positions, in the order given.
//
// Each arg is a number ("3") or a comma-separated group ("1,4"). Ranges
// ("2-5") expand inclusively.
func ParseTaskNums(args []string) ([]int, error) {
	var out []int
	for _, arg := range args {
		for _, tok := range strings.Split(arg, ",") {
			if tok == "" {
				continue
			}
			lo, hi, isRange := strings.Cut(tok, "-")
			if !isRange {
				hi = lo
			}
			a, err := parseTaskNum(lo, tok)
			if err != nil {
				return nil, err
			}
			b, err := parseTaskNum(hi, tok)
			if err != nil {
				return nil, err
			}
			if b < a {
				return nil, fmt.Errorf("invalid task range: %s", tok)
			}
			for n := a; n <= b; n++ {
				out = append(out, n-1)
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrTaskNumRequired
	}
	return out, nil
}

// ParseTaskNum parses exactly one task number.
func ParseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskNumRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected one task number, got %d", len(args))
	}
	n, err := parseTaskNum(args[0], args[0])
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func parseTaskNum(s, tok string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid task number: %s", tok)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number: %s", tok)
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
