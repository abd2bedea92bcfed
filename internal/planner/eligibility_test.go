package planner

import (
	"testing"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEligible_UnestablishedBypassesGating(t *testing.T) {
	catalog := testCatalog()
	plan := NewPlan(catalog[0])

	got := Eligible(catalog, Unestablished(), plan)

	assert.Equal(t, codes(catalog), codes(got))
}

func TestEligible_Scenario(t *testing.T) {
	cs101 := model.Course{ID: "cs101", Code: "CS101", Credits: 3, Difficulty: model.DifficultyEasy}
	cs201 := model.Course{ID: "cs201", Code: "CS201", Credits: 4, Difficulty: model.DifficultyModerate, Prerequisites: []string{"CS101"}}
	catalog := []model.Course{cs101, cs201}

	got := Eligible(catalog, Established(NewSet[string]()), Plan{})
	assert.Equal(t, []string{"CS101"}, codes(got))

	completed := Established(NewSet("CS101"))
	got = Eligible(catalog, completed, Plan{})
	assert.Equal(t, []string{"CS201"}, codes(got))

	plan := Plan{}.Add(cs201)
	got = Eligible(catalog, completed, plan)
	assert.Empty(t, got)
}

func TestEligible_UniversalPrerequisiteRule(t *testing.T) {
	c := testCourse("CS 301", "Algorithms", 300, 3, model.DifficultyChallenging, "CS 201", "MATH 180")
	catalog := []model.Course{c}

	tests := []struct {
		name      string
		completed []string
		want      bool
	}{
		{name: "none completed", completed: nil, want: false},
		{name: "short by one", completed: []string{"CS 201"}, want: false},
		{name: "short by the other", completed: []string{"MATH 180"}, want: false},
		{name: "all completed", completed: []string{"CS 201", "MATH 180"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eligible(catalog, Established(NewSet(tt.completed...)), Plan{})
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestEligible_VacuousEligibility(t *testing.T) {
	c := testCourse("CS 111", "Program Design", 100, 3, model.DifficultyEasy)

	for _, completed := range [][]string{nil, {"CS 999"}, {"MATH 180", "CS 201"}} {
		got := Eligible([]model.Course{c}, Established(NewSet(completed...)), Plan{})
		assert.Equal(t, []string{"CS 111"}, codes(got), "completed %v", completed)
	}
}

func TestEligible_ExcludesCompletedAndPlanned(t *testing.T) {
	catalog := testCatalog()
	completion := Established(NewSet("CS 101", "MATH 180"))
	plan := NewPlan(catalog[1]) // CS 201

	got := Eligible(catalog, completion, plan)

	assert.Empty(t, got, "CS 101/MATH 180 completed, CS 201 planned, the rest gated")
}

func TestEligible_PreservesOrder(t *testing.T) {
	catalog := []model.Course{
		testCourse("CS 342", "Software Design", 300, 3, model.DifficultyModerate),
		testCourse("CS 111", "Program Design", 100, 3, model.DifficultyEasy),
		testCourse("CS 211", "Program Design II", 200, 3, model.DifficultyEasy),
	}

	got := Eligible(catalog, Established(NewSet[string]()), Plan{})

	assert.Equal(t, []string{"CS 342", "CS 111", "CS 211"}, codes(got))
}

func TestEligible_MonotonicPlanAddition(t *testing.T) {
	catalog := testCatalog()
	completion := Established(NewSet("CS 101"))
	plan := Plan{}

	for _, c := range Eligible(catalog, completion, plan) {
		plan = plan.Add(c)
		assert.NotContains(t, codes(Eligible(catalog, completion, plan)), c.Code)
	}
	assert.Empty(t, Eligible(catalog, completion, plan))
}

func TestEligible_SubsetLaw(t *testing.T) {
	catalog := testCatalog()
	filters := []FilterState{
		{},
		{Search: "cs"},
		FilterState{}.ToggleLevel(100).ToggleLevel(200),
		FilterState{}.ToggleDifficulty(model.DifficultyChallenging),
	}
	completions := []Completion{
		Unestablished(),
		Established(NewSet[string]()),
		Established(NewSet("CS 101", "CS 201", "MATH 180")),
	}
	plans := []Plan{{}, NewPlan(catalog[0], catalog[3])}

	for _, f := range filters {
		filtered := Filter(catalog, f)
		for _, completion := range completions {
			for _, plan := range plans {
				eligible := Eligible(filtered, completion, plan)
				for _, c := range eligible {
					assert.Contains(t, filtered, c)
				}
				for _, c := range filtered {
					assert.Contains(t, catalog, c)
				}
				if completion.IsEstablished() {
					for _, c := range eligible {
						assert.False(t, plan.Contains(c.ID), "%s planned and eligible", c.Code)
						assert.False(t, completion.Has(c.Code), "%s completed and eligible", c.Code)
					}
				}
			}
		}
	}
}

func TestEligible_DanglingPrerequisiteBlocks(t *testing.T) {
	c := testCourse("CS 499", "Senior Design", 400, 3, model.DifficultyChallenging, "CS 000")
	catalog := []model.Course{c}

	assert.Empty(t, Eligible(catalog, Established(NewSet("CS 101")), Plan{}))
	assert.Equal(t, map[string][]string{"CS 499": {"CS 000"}}, DanglingPrerequisites(catalog))

	// Marking the dangling code completed unblocks the course.
	assert.Len(t, Eligible(catalog, Established(NewSet("CS 000")), Plan{}), 1)
}

func TestClassifyAndMissingPrerequisites(t *testing.T) {
	catalog := testCatalog()
	completion := Established(NewSet("CS 101"))
	plan := NewPlan(catalog[3]) // MATH 180

	assert.Equal(t, ReasonCompleted, Classify(catalog[0], completion, plan))
	assert.Equal(t, ReasonEligible, Classify(catalog[1], completion, plan))
	assert.Equal(t, ReasonMissingPrerequisites, Classify(catalog[2], completion, plan))
	assert.Equal(t, ReasonPlanned, Classify(catalog[3], completion, plan))
	assert.Equal(t, ReasonUnestablished, Classify(catalog[2], Unestablished(), plan))

	assert.Equal(t, []string{"CS 201", "MATH 180"}, MissingPrerequisites(catalog[2], completion))
	assert.Nil(t, MissingPrerequisites(catalog[0], completion))
	assert.Equal(t, "missing prerequisites", ReasonMissingPrerequisites.String())
}

func TestCompletion(t *testing.T) {
	u := Unestablished()
	assert.False(t, u.IsEstablished())
	assert.False(t, u.Has("CS 101"))

	empty := Established(NewSet[string]())
	assert.True(t, empty.IsEstablished())
	assert.Equal(t, 0, empty.Codes().Len())
}
