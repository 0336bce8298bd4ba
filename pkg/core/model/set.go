package model

import (
	"sort"
	"strings"
)

// Set is an insertion-ordered collection of unique, non-empty strings.
// It backs member tags, boat memberships, outing covers and event crews.
type Set []string

// NewSet builds a Set from items, trimming whitespace and dropping blanks and duplicates
func NewSet(items ...string) Set {
	out := make(Set, 0, len(items))
	for _, item := range items {
		out = out.Add(item)
	}
	return out
}

// Has reports whether item is in the set
func (s Set) Has(item string) bool {
	item = strings.TrimSpace(item)
	for _, existing := range s {
		if existing == item {
			return true
		}
	}
	return false
}

// Add returns the set with item appended if it is not already present
func (s Set) Add(item string) Set {
	item = strings.TrimSpace(item)
	if item == "" || s.Has(item) {
		return s
	}
	return append(s, item)
}

// Remove returns a copy of the set without item
func (s Set) Remove(item string) Set {
	item = strings.TrimSpace(item)
	out := make(Set, 0, len(s))
	for _, existing := range s {
		if existing != item {
			out = append(out, existing)
		}
	}
	return out
}

// Intersects reports whether the two sets share at least one item
func (s Set) Intersects(other Set) bool {
	for _, item := range s {
		if other.Has(item) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same items, ignoring order
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for _, item := range s {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// Sorted returns a sorted copy of the set
func (s Set) Sorted() Set {
	out := make(Set, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}
