// Package episode parses the compact selector notation used to choose which
// episodes a batch run processes, and discovers episode numbers from the
// subtitle directory when the selector defers the choice.
package episode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// All is the selector literal that defers episode discovery to the caller.
const All = "all"

// ParseError describes a malformed selector expression. The offending token
// is preserved so the CLI can surface it verbatim.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("episode selector: %s: %q", e.Reason, e.Token)
}

// Parse expands a selector expression into the ascending list of episode
// numbers it denotes. Accepted forms: a single number ("3"), a
// comma-separated list ("1,3,5"), an inclusive range ("1-5"), any mix of the
// above, or the literal "all". "all" yields a nil slice: the caller is
// expected to resolve concrete numbers externally, typically via Discover.
// Duplicate numbers across items are preserved through the sort.
func Parse(expr string) ([]int, error) {
	if strings.TrimSpace(expr) == All {
		return nil, nil
	}

	var episodes []int
	for _, item := range strings.Split(expr, ",") {
		item = strings.TrimSpace(item)
		if strings.Contains(item, "-") {
			start, end, err := parseRange(item)
			if err != nil {
				return nil, err
			}
			for ep := start; ep <= end; ep++ {
				episodes = append(episodes, ep)
			}
			continue
		}
		ep, ok := parseNumber(item)
		if !ok {
			return nil, &ParseError{Token: item, Reason: "invalid episode number"}
		}
		episodes = append(episodes, ep)
	}

	sort.Ints(episodes)
	return episodes, nil
}

func parseRange(item string) (int, int, error) {
	parts := strings.Split(item, "-")
	if len(parts) != 2 {
		return 0, 0, &ParseError{Token: item, Reason: "invalid episode range"}
	}
	start, okStart := parseNumber(strings.TrimSpace(parts[0]))
	end, okEnd := parseNumber(strings.TrimSpace(parts[1]))
	if !okStart || !okEnd {
		return 0, 0, &ParseError{Token: item, Reason: "invalid episode range"}
	}
	if start > end {
		return 0, 0, &ParseError{Token: item, Reason: "invalid episode range (start > end)"}
	}
	return start, end, nil
}

// parseNumber accepts only pure non-negative decimal digits. strconv.Atoi
// alone would admit signs and surrounding junk like "+3".
func parseNumber(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
