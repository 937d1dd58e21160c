package parser

import (
	"strconv"
	"strings"
)

// ParseMinutes reads a duration in minutes. Anything that is not a
// non-negative whole number becomes 0 rather than an error.
func ParseMinutes(input string) int {
	s := strings.TrimSpace(strings.ToLower(input))
	s = strings.TrimSuffix(s, "min")
	s = strings.TrimSuffix(s, "m")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseCount reads a positive count, falling back to def on bad input.
func ParseCount(input string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		return def
	}
	return n
}
