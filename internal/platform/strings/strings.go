// Package strings carries the string and slice helpers shared across modules
package strings

import stdstrings "strings"

// IfEmpty substitutes def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString returns s unless it is blank, in which case it panics naming
// the missing value
func MustString(s, name string) string {
	if stdstrings.TrimSpace(s) == "" {
		panic(name + " must not be blank")
	}
	return s
}

// MustPrefix normalizes a mount path like /images or /stats to exactly one
// leading slash and no trailing one. Panics when nothing is left after
// trimming; a module cannot mount at the bare root
func MustPrefix(s string) string {
	p := "/" + stdstrings.Trim(stdstrings.TrimSpace(s), " /")
	if p == "/" {
		panic("mount prefix is empty")
	}
	return p
}
