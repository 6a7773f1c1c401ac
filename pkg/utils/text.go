// Package utils provides shared utilities for text, math, and logging.
package utils

// Truncate caps s at maxLen bytes, replacing the tail with "..." when it is
// cut. The result never exceeds maxLen, so truncated strings stay inside
// fixed-width columns. maxLen <= 3 or a short enough s returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
