package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_ZeroValueIsEmpty(t *testing.T) {
	var s Set[string]

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("CS 141"))
	assert.Empty(t, s.Values())
}

func TestToggleMembership(t *testing.T) {
	original := NewSet(100, 200)

	added := ToggleMembership(original, 300)
	removed := ToggleMembership(original, 100)

	assert.Equal(t, []int{100, 200}, Sorted(original), "receiver must not change")
	assert.Equal(t, []int{100, 200, 300}, Sorted(added))
	assert.Equal(t, []int{200}, Sorted(removed))
}

func TestSet_ToggleTwiceRestores(t *testing.T) {
	s := NewSet("CS 141")

	assert.Equal(t, Sorted(s), Sorted(s.Toggle("CS 151").Toggle("CS 151")))
	assert.Equal(t, Sorted(s), Sorted(s.Toggle("CS 141").Toggle("CS 141")))
}

func TestSet_With(t *testing.T) {
	s := NewSet("a")
	next := s.With("a").With("b")

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"a", "b"}, Sorted(next))
}
