// Package strings holds string helpers shared across packages
package strings

import (
	std "strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// IfEmpty returns def when in is empty
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes a mount path to a single leading slash and no trailing
// slash; it panics on an empty path
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Deref returns "" for nil
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// Fold turns free text (subreddits, search queries) into a grouping key:
// trimmed, NFC normalized and case folded, so "AskReddit" and "askreddit" collapse
// A fresh caser per call keeps this safe for concurrent use
func Fold(s string) string {
	s = std.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}
