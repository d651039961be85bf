// Package core holds the domain types and pure logic of the ledger bot:
// amount parsing, the category set, and report aggregation.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts a shorthand amount token into an exact integer
// currency unit.
//
// Accepted forms:
//
//	"50000"  -> 50000
//	"50k"    -> 50000    (×1,000)
//	"2tr"    -> 2000000  (×1,000,000)
//	"2m"     -> 2000000  (×1,000,000)
//
// The suffix is stripped and the remainder must be a plain integer literal,
// so decimal shorthands like "1.2m" are rejected with ErrInvalidAmount even
// though the help text advertises them. Known limitation; callers must not
// paper over it.
func ParseAmount(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidAmount
	}

	mult := int64(1)
	switch {
	case strings.HasSuffix(s, "tr"):
		s, mult = s[:len(s)-2], 1_000_000
	case strings.HasSuffix(s, "m"):
		s, mult = s[:len(s)-1], 1_000_000
	case strings.HasSuffix(s, "k"):
		s, mult = s[:len(s)-1], 1_000
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return n * mult, nil
}
