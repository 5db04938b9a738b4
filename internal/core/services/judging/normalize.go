package judging

import "strings"

// Normalize trims leading and trailing whitespace and collapses every run of
// internal whitespace to a single space. The comparison is insensitive to
// trailing newlines and incidental spacing from different runtimes' print
// statements, but still catches substantive output differences.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
