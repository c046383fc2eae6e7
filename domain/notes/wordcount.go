package notes

import "strings"

// WordCount returns the number of whitespace-delimited non-empty tokens
// in s. The stored word_count is computed with this at save time and is
// not re-derived on read.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
