package planner

import (
	"testing"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/stretchr/testify/assert"
)

func testCourse(code, title string, level, credits int, d model.Difficulty, prereqs ...string) model.Course {
	return model.Course{
		ID:            model.CourseID(code),
		Code:          code,
		Title:         title,
		Description:   title + " course description",
		Level:         level,
		Credits:       credits,
		Difficulty:    d,
		Prerequisites: prereqs,
	}
}

func codes(courses []model.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Code
	}
	return out
}

func testCatalog() []model.Course {
	return []model.Course{
		testCourse("CS 101", "Intro to Programming", 100, 3, model.DifficultyEasy),
		testCourse("CS 201", "Data Structures", 200, 4, model.DifficultyModerate, "CS 101"),
		testCourse("CS 301", "Algorithms", 300, 3, model.DifficultyChallenging, "CS 201", "MATH 180"),
		testCourse("MATH 180", "Calculus I", 100, 4, model.DifficultyModerate),
		testCourse("CS 401", "Compilers", 400, 3, model.DifficultyChallenging, "CS 301"),
	}
}

func TestMatches_Search(t *testing.T) {
	ds := testCourse("CS 251", "Data Structures", 200, 4, model.DifficultyModerate)
	algo := testCourse("CS 401", "Algorithms", 400, 3, model.DifficultyChallenging)
	algo.Description = "Design and analysis"

	tests := []struct {
		name   string
		search string
		course model.Course
		want   bool
	}{
		{name: "empty search matches", search: "", course: algo, want: true},
		{name: "title substring", search: "data", course: ds, want: true},
		{name: "case insensitive", search: "DATA", course: ds, want: true},
		{name: "no match in any field", search: "data", course: algo, want: false},
		{name: "code match", search: "cs 40", course: algo, want: true},
		{name: "description match", search: "analysis", course: algo, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.course, FilterState{Search: tt.search}))
		})
	}
}

func TestMatches_Facets(t *testing.T) {
	c := testCourse("CS 201", "Data Structures", 200, 4, model.DifficultyModerate)

	tests := []struct {
		name   string
		filter FilterState
		want   bool
	}{
		{name: "no facets", filter: FilterState{}, want: true},
		{name: "level hit", filter: FilterState{Levels: NewSet(100, 200)}, want: true},
		{name: "level miss", filter: FilterState{Levels: NewSet(300)}, want: false},
		{name: "difficulty hit", filter: FilterState{Difficulties: NewSet(model.DifficultyModerate)}, want: true},
		{name: "difficulty miss", filter: FilterState{Difficulties: NewSet(model.DifficultyEasy)}, want: false},
		{name: "credits hit", filter: FilterState{Credits: NewSet(3, 4)}, want: true},
		{name: "credits miss", filter: FilterState{Credits: NewSet(3)}, want: false},
		{
			name: "all facets must hold",
			filter: FilterState{
				Levels:       NewSet(200),
				Difficulties: NewSet(model.DifficultyModerate),
				Credits:      NewSet(3),
			},
			want: false,
		},
		{
			name:   "search and facet combine",
			filter: FilterState{Search: "structures", Levels: NewSet(200)},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(c, tt.filter))
		})
	}
}

func TestFilter_PreservesOrderAndSubset(t *testing.T) {
	catalog := testCatalog()
	f := FilterState{}.ToggleCredits(3)

	got := Filter(catalog, f)

	assert.Equal(t, []string{"CS 101", "CS 301", "CS 401"}, codes(got))
	for _, c := range got {
		assert.Contains(t, catalog, c)
	}
}

func TestFilter_EmptyCatalog(t *testing.T) {
	assert.Empty(t, Filter(nil, FilterState{Search: "cs"}))
}

func TestFilterState_FacetIndependence(t *testing.T) {
	catalog := testCatalog()
	base := FilterState{}.ToggleDifficulty(model.DifficultyModerate).ToggleCredits(4)

	before := Filter(catalog, base)
	withLevel := Filter(catalog, base.ToggleLevel(100))

	// Toggling a level only narrows by level; the difficulty and credits
	// verdicts for the survivors are unchanged.
	assert.Equal(t, []string{"CS 201", "MATH 180"}, codes(before))
	assert.Equal(t, []string{"MATH 180"}, codes(withLevel))
	for _, c := range withLevel {
		assert.True(t, base.Difficulties.Has(c.Difficulty))
		assert.True(t, base.Credits.Has(c.Credits))
	}

	// Toggling the level off again restores the previous result.
	assert.Equal(t, codes(before), codes(Filter(catalog, base.ToggleLevel(100).ToggleLevel(100))))
}

func TestFilterState_Describe(t *testing.T) {
	assert.Equal(t, "no filters", FilterState{}.Describe())

	f := FilterState{}.
		WithSearch("data").
		ToggleLevel(300).
		ToggleLevel(100).
		ToggleDifficulty(model.DifficultyChallenging).
		ToggleDifficulty(model.DifficultyEasy).
		ToggleCredits(4)

	assert.Equal(t, `search "data", level 100|300, difficulty Easy|Challenging, credits 4`, f.Describe())
	assert.True(t, f.Clear().IsEmpty())
}
