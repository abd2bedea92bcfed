package planner

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(nil)
	s.SetCatalog(testCatalog())
	s.SetMajors([]model.Major{
		{ID: 1, Name: "Computer Science", Concentration: "Software Engineering"},
		{ID: 2, Name: "Data Science"},
	})
	return s
}

func TestSession_EmptyCatalog(t *testing.T) {
	s := NewSession(nil)
	s.SetCatalog(nil)

	assert.True(t, s.CatalogLoaded())
	assert.Empty(t, s.Filtered())
	assert.Empty(t, s.Eligible())
	require.NoError(t, s.ConfirmCompleted())
	assert.Empty(t, s.Eligible())
}

func TestSession_CatalogFailed(t *testing.T) {
	s := newTestSession(t)

	s.CatalogFailed(errors.New("connection refused"))

	assert.False(t, s.CatalogLoaded())
	assert.Empty(t, s.Catalog())
	require.Error(t, s.LastError())
	assert.Contains(t, s.LastError().Error(), "connection refused")

	s.SetCatalog(testCatalog())
	assert.NoError(t, s.LastError())
}

func TestSession_CatalogFailedLogsOnlyTheFailure(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(slog.New(slog.NewTextHandler(&buf, nil)))
	s.SetCatalog(testCatalog())
	buf.Reset()

	s.CatalogFailed(errors.New("connection refused"))

	assert.NotContains(t, buf.String(), "catalog loaded")
	assert.Contains(t, buf.String(), "catalog retrieval failed")
	_, ok := s.Course("cs101")
	assert.False(t, ok)
}

func TestSession_EligibleBeforeAndAfterOnboarding(t *testing.T) {
	s := newTestSession(t)
	s.SelectMajor(s.Majors()[0])

	assert.Len(t, s.Eligible(), len(testCatalog()), "no gating before confirmation")

	require.NoError(t, s.ToggleCompleted("CS 101"))
	assert.Len(t, s.Eligible(), len(testCatalog()), "draft is not visible")

	require.NoError(t, s.ConfirmCompleted())
	assert.Equal(t, []string{"CS 201", "MATH 180"}, codes(s.Eligible()))
}

func TestSession_AddToPlan(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ConfirmCompleted())

	changed, err := s.AddToPlan("math180")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.AddToPlan("math180")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, s.Plan().Len())
	assert.Equal(t, []string{"CS 101"}, codes(s.Eligible()))

	_, err = s.AddToPlan("bogus999")
	assert.ErrorIs(t, err, ErrUnknownCourse)

	s.RemoveFromPlan("math180")
	assert.Equal(t, 0, s.Plan().Len())
}

func TestSession_SelectSameMajorKeepsState(t *testing.T) {
	s := newTestSession(t)
	major := s.Majors()[0]
	s.SelectMajor(major)
	require.NoError(t, s.ConfirmCompleted())
	_, err := s.AddToPlan("cs101")
	require.NoError(t, err)

	s.SelectMajor(major)

	assert.Equal(t, Confirmed, s.Onboarding().State())
	assert.Equal(t, 1, s.Plan().Len())
}

func TestSession_ChangeMajorResets(t *testing.T) {
	s := newTestSession(t)
	s.SelectMajor(s.Majors()[0])
	s.SetRequirements([]model.RequiredCourse{{RequirementType: "core", Course: testCatalog()[0]}})
	s.SetSearch("data")
	require.NoError(t, s.ToggleCompleted("CS 101"))
	require.NoError(t, s.ConfirmCompleted())
	_, err := s.AddToPlan("math180")
	require.NoError(t, err)

	s.ChangeMajor()

	_, ok := s.Major()
	assert.False(t, ok)
	assert.Equal(t, NotStarted, s.Onboarding().State())
	assert.False(t, s.Completion().IsEstablished())
	assert.Equal(t, 0, s.Plan().Len())
	assert.Empty(t, s.Requirements())
	assert.Equal(t, "data", s.Filters().Search, "filters survive a major change")
}

func TestSession_SelectDifferentMajorResets(t *testing.T) {
	s := newTestSession(t)
	s.SelectMajor(s.Majors()[0])
	require.NoError(t, s.ConfirmCompleted())
	_, err := s.AddToPlan("cs101")
	require.NoError(t, err)

	s.SelectMajor(s.Majors()[1])

	m, ok := s.Major()
	require.True(t, ok)
	assert.Equal(t, 2, m.ID)
	assert.Equal(t, NotStarted, s.Onboarding().State())
	assert.Equal(t, 0, s.Plan().Len())
}

func TestSession_ChecklistSortedByNumber(t *testing.T) {
	s := newTestSession(t)
	catalog := testCatalog()
	s.SetRequirements([]model.RequiredCourse{
		{RequirementType: "core", Course: catalog[2]}, // CS 301
		{RequirementType: "math", Course: catalog[3]}, // MATH 180
		{RequirementType: "core", Course: catalog[0]}, // CS 101
		{RequirementType: "core", Course: catalog[1]}, // CS 201
	})

	assert.Equal(t, []string{"CS 101", "MATH 180", "CS 201", "CS 301"}, requiredCodes(s.Checklist()))
	assert.Equal(t, "CS 301", s.Requirements()[0].Code, "load order kept")
}

func TestSession_FiltersFeedEligibility(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ToggleCompleted("CS 101"))
	require.NoError(t, s.ConfirmCompleted())

	s.ToggleLevel(200)
	assert.Equal(t, []string{"CS 201"}, codes(s.Eligible()))

	s.ToggleLevel(200)
	s.ToggleDifficulty(model.DifficultyModerate)
	s.ToggleCredits(4)
	assert.Equal(t, []string{"CS 201", "MATH 180"}, codes(s.Eligible()))

	s.SetSearch("CALC")
	assert.Equal(t, []string{"MATH 180"}, codes(s.Eligible()))

	s.ClearFilters()
	assert.True(t, s.Filters().IsEmpty())
}

func TestSession_EditCompleted(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ToggleCompleted("CS 101"))
	require.NoError(t, s.ConfirmCompleted())

	assert.ErrorIs(t, s.ToggleCompleted("CS 201"), ErrChecklistLocked)
	assert.ErrorIs(t, s.ConfirmCompleted(), ErrInvalidTransition)

	require.NoError(t, s.EditCompleted())
	require.NoError(t, s.ToggleCompleted("CS 201"))
	require.NoError(t, s.ConfirmCompleted())

	assert.Equal(t, []string{"CS 101", "CS 201"}, Sorted(s.Completion().Codes()))
	assert.Equal(t, []string{"MATH 180"}, codes(s.Eligible()))
}

func TestSession_Explain(t *testing.T) {
	s := newTestSession(t)

	reason, missing, err := s.Explain("cs301")
	require.NoError(t, err)
	assert.Equal(t, ReasonUnestablished, reason)
	assert.Nil(t, missing)

	require.NoError(t, s.ToggleCompleted("CS 101"))
	require.NoError(t, s.ConfirmCompleted())

	reason, missing, err = s.Explain("cs301")
	require.NoError(t, err)
	assert.Equal(t, ReasonMissingPrerequisites, reason)
	assert.Equal(t, []string{"CS 201", "MATH 180"}, missing)

	_, _, err = s.Explain("nope")
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestSession_Facets(t *testing.T) {
	s := newTestSession(t)

	f := s.Facets()

	assert.Equal(t, []int{100, 200, 300, 400}, f.Levels)
	assert.Equal(t, []int{3, 4}, f.Credits)
	assert.Equal(t, model.Difficulties, f.Difficulties)
}

func requiredCodes(courses []model.RequiredCourse) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Code
	}
	return out
}
