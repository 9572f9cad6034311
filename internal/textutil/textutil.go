package textutil

import (
	"regexp"
	"strings"
)

// annotationRE matches a parenthesized annotation together with any
// whitespace immediately before it. Matching is non-greedy per pair,
// left to right; nested parentheses are not specially handled.
var annotationRE = regexp.MustCompile(`\s*\([^)]*\)`)

// StripAnnotations removes every parenthesized annotation from s and
// trims the surrounding whitespace.
func StripAnnotations(s string) string {
	return strings.TrimSpace(annotationRE.ReplaceAllString(s, ""))
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
