package planner

import (
	"cmp"
	"slices"
)

// Set is an immutable set of comparable values. The zero value is an empty
// set. Mutating operations return a new set and leave the receiver intact.
type Set[T comparable] struct {
	items map[T]struct{}
}

// NewSet builds a set from the given values.
func NewSet[T comparable](values ...T) Set[T] {
	items := make(map[T]struct{}, len(values))
	for _, v := range values {
		items[v] = struct{}{}
	}
	return Set[T]{items: items}
}

// Has reports whether v is a member of the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no members.
func (s Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Toggle returns a copy of the set with v added if it was absent or removed
// if it was present.
func (s Set[T]) Toggle(v T) Set[T] {
	next := s.clone()
	if _, ok := next.items[v]; ok {
		delete(next.items, v)
	} else {
		next.items[v] = struct{}{}
	}
	return next
}

// With returns a copy of the set that includes v.
func (s Set[T]) With(v T) Set[T] {
	next := s.clone()
	next.items[v] = struct{}{}
	return next
}

// Values returns the members in unspecified order.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	return out
}

func (s Set[T]) clone() Set[T] {
	items := make(map[T]struct{}, len(s.items)+1)
	for v := range s.items {
		items[v] = struct{}{}
	}
	return Set[T]{items: items}
}

// ToggleMembership flips the membership of value in set. It is the single
// toggle used for every filter facet and for the completed-course checklist.
func ToggleMembership[T comparable](set Set[T], value T) Set[T] {
	return set.Toggle(value)
}

// Sorted returns the members of an ordered set in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	out := s.Values()
	slices.Sort(out)
	return out
}
