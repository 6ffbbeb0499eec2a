// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package dn

import "sort"

// Set is a collection of canonical DN strings. Membership is keyed on
// the normalized form, so duplicates collapse and comparison is
// order-independent.
type Set map[string]struct{}

// NewSet builds a Set from canonical DN strings.
func NewSet(dns ...string) Set {
	s := make(Set, len(dns))
	for _, d := range dns {
		s[d] = struct{}{}
	}
	return s
}

// Add inserts a canonical DN into the set.
func (s Set) Add(d string) { s[d] = struct{}{} }

// Contains reports whether the canonical DN is a member of the set.
func (s Set) Contains(d string) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Difference returns a new set with the members of s that are not in
// other. The receiver is left untouched.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for d := range s {
		if !other.Contains(d) {
			out.Add(d)
		}
	}
	return out
}

// Intersect returns a new set with the members of s that are also in
// other. The receiver is left untouched.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for d := range s {
		if other.Contains(d) {
			out.Add(d)
		}
	}
	return out
}

// Without returns a new set with the listed DNs removed.
func (s Set) Without(dns ...string) Set {
	return s.Difference(NewSet(dns...))
}

// Sorted returns the members in lexical order, for deterministic
// diagnostics.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
