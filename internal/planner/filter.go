package planner

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
)

// FilterState holds the free-text search and the three attribute facets.
// An empty facet imposes no constraint; values inside a facet are ORed and
// facets are ANDed together.
type FilterState struct {
	Search       string
	Levels       Set[int]
	Difficulties Set[model.Difficulty]
	Credits      Set[int]
}

// WithSearch returns a copy of the filter with a new search string.
func (f FilterState) WithSearch(search string) FilterState {
	f.Search = search
	return f
}

// ToggleLevel flips a level value in the level facet.
func (f FilterState) ToggleLevel(level int) FilterState {
	f.Levels = ToggleMembership(f.Levels, level)
	return f
}

// ToggleDifficulty flips a difficulty value in the difficulty facet.
func (f FilterState) ToggleDifficulty(d model.Difficulty) FilterState {
	f.Difficulties = ToggleMembership(f.Difficulties, d)
	return f
}

// ToggleCredits flips a credit count in the credits facet.
func (f FilterState) ToggleCredits(credits int) FilterState {
	f.Credits = ToggleMembership(f.Credits, credits)
	return f
}

// Clear drops the search string and every facet value.
func (f FilterState) Clear() FilterState {
	return FilterState{}
}

// IsEmpty reports whether the filter lets every course through.
func (f FilterState) IsEmpty() bool {
	return f.Search == "" && f.Levels.IsEmpty() && f.Difficulties.IsEmpty() && f.Credits.IsEmpty()
}

// Describe summarizes the active constraints for headers and logs.
func (f FilterState) Describe() string {
	if f.IsEmpty() {
		return "no filters"
	}

	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Search))
	}
	if !f.Levels.IsEmpty() {
		parts = append(parts, "level "+joinInts(Sorted(f.Levels)))
	}
	if !f.Difficulties.IsEmpty() {
		names := make([]string, 0, f.Difficulties.Len())
		for _, d := range model.Difficulties {
			if f.Difficulties.Has(d) {
				names = append(names, string(d))
			}
		}
		parts = append(parts, "difficulty "+strings.Join(names, "|"))
	}
	if !f.Credits.IsEmpty() {
		parts = append(parts, "credits "+joinInts(Sorted(f.Credits)))
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether a course passes the search and every facet.
func Matches(c model.Course, f FilterState) bool {
	return searchHit(c, f.Search) &&
		facetHit(f.Levels, c.Level) &&
		facetHit(f.Difficulties, c.Difficulty) &&
		facetHit(f.Credits, c.Credits)
}

// Filter returns the courses matching f, preserving catalog order.
func Filter(catalog []model.Course, f FilterState) []model.Course {
	out := make([]model.Course, 0, len(catalog))
	for _, c := range catalog {
		if Matches(c, f) {
			out = append(out, c)
		}
	}
	return out
}

func searchHit(c model.Course, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return slices.ContainsFunc([]string{c.Code, c.Title, c.Description}, func(field string) bool {
		return strings.Contains(strings.ToLower(field), q)
	})
}

func facetHit[T comparable](facet Set[T], v T) bool {
	return facet.IsEmpty() || facet.Has(v)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "|")
}
