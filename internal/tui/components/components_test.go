package components

import (
	"strings"
	"testing"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func course(code string, level int, prereqs ...string) model.Course {
	return model.Course{
		ID:            model.CourseID(code),
		Code:          code,
		Title:         code + " title",
		Credits:       3,
		Level:         level,
		Difficulty:    model.EstimateDifficulty(level),
		Prerequisites: prereqs,
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		cursor int
		n      int
		want   int
	}{
		{name: "down", key: "j", cursor: 0, n: 3, want: 1},
		{name: "down stops at end", key: "down", cursor: 2, n: 3, want: 2},
		{name: "up stops at start", key: "k", cursor: 0, n: 3, want: 0},
		{name: "end", key: "G", cursor: 0, n: 3, want: 2},
		{name: "home", key: "g", cursor: 2, n: 3, want: 0},
		{name: "empty list", key: "j", cursor: 4, n: 0, want: 0},
		{name: "other key", key: "x", cursor: 1, n: 3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moveCursor(tt.key, tt.cursor, tt.n))
		})
	}
}

func TestWindow(t *testing.T) {
	start, end := window(0, 5, 10)
	assert.Equal(t, [2]int{0, 5}, [2]int{start, end})

	start, end = window(10, 20, 6)
	assert.Equal(t, [2]int{7, 13}, [2]int{start, end})

	start, end = window(19, 20, 6)
	assert.Equal(t, [2]int{14, 20}, [2]int{start, end})
}

func TestMajorList(t *testing.T) {
	majors := []model.Major{
		{ID: 1, Name: "Computer Science", Concentration: "Software Engineering"},
		{ID: 2, Name: "Data Science"},
	}
	m := NewMajorList(majors, themes.Default)

	got, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)

	m, _ = m.Update(keyMsg("down"))
	got, _ = m.Selected()
	assert.Equal(t, 2, got.ID)

	m.Select(1)
	got, _ = m.Selected()
	assert.Equal(t, 1, got.ID)
	assert.Contains(t, m.View(), "Computer Science – Software Engineering")

	m.SetMajors(nil)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No majors")
}

func TestChecklist(t *testing.T) {
	items := []model.RequiredCourse{
		{RequirementType: "Core CS", Course: course("CS 111", 100)},
		{RequirementType: "Math", Course: course("MATH 180", 100)},
	}
	m := NewChecklist(themes.Default)
	m.SetLoading(true)
	assert.Contains(t, m.View(), "Loading requirements")

	m.SetItems(items)
	ob, err := planner.Onboarding{}.Toggle("MATH 180")
	require.NoError(t, err)
	m.SetOnboarding(ob)

	m, _ = m.Update(keyMsg("down"))
	code, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "MATH 180", code)

	view := m.View()
	assert.Contains(t, view, "[ ] CS 111")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "1 of 2 checked")

	m.SetItems(nil)
	assert.Contains(t, m.View(), "No required courses")
}

func TestCourseList_KeepsSelection(t *testing.T) {
	m := NewCourseList(themes.Default)
	m.SetCourses([]model.Course{course("CS 111", 100), course("CS 141", 100), course("MATH 180", 100)})

	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down"))
	got, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "MATH 180", got.Code)

	// MATH 180 moves to the front; the cursor follows it.
	m.SetCourses([]model.Course{course("MATH 180", 100), course("CS 211", 200)})
	got, _ = m.Selected()
	assert.Equal(t, "MATH 180", got.Code)

	m.SetCourses([]model.Course{course("CS 251", 200)})
	got, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "CS 251", got.Code)

	m.SetCourses(nil)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No courses match")
}

func TestCourseList_BlurIgnoresKeys(t *testing.T) {
	m := NewCourseList(themes.Default)
	m.SetCourses([]model.Course{course("CS 111", 100), course("CS 141", 100)})
	m.Blur()
	assert.False(t, m.Focused())

	m, _ = m.Update(keyMsg("down"))
	got, _ := m.Selected()
	assert.Equal(t, "CS 111", got.Code)
}

func TestPlanSummary(t *testing.T) {
	m := NewPlanSummary(themes.Default)
	assert.Contains(t, m.View(), "No courses yet")

	m.SetPlan(planner.NewPlan(course("CS 111", 100), course("CS 301", 300)))
	view := m.View()
	assert.Contains(t, view, "Total credits: 6")
	assert.Contains(t, view, "0 challenging / 1 moderate / 1 easy")

	// Keys are ignored until focused.
	m, _ = m.Update(keyMsg("down"))
	got, _ := m.Selected()
	assert.Equal(t, "CS 111", got.Code)

	m.Focus()
	m, _ = m.Update(keyMsg("down"))
	got, _ = m.Selected()
	assert.Equal(t, "CS 301", got.Code)

	m.SetPlan(planner.NewPlan(course("CS 111", 100)))
	got, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "CS 111", got.Code)
}

func TestFilterBar_Sync(t *testing.T) {
	m := NewFilterBar(themes.Default)
	facets := planner.Facets{
		Levels:       []int{100, 200},
		Difficulties: []model.Difficulty{model.DifficultyEasy},
		Credits:      []int{3},
	}
	fs := planner.FilterState{}.ToggleLevel(200).WithSearch("data")
	m.Sync(facets, fs)

	chips := m.Chips()
	require.Len(t, chips, 4)
	assert.Equal(t, []bool{false, true, false, false}, []bool{chips[0].Active, chips[1].Active, chips[2].Active, chips[3].Active})
	assert.Equal(t, FacetDifficulty, chips[2].Kind)
	assert.Equal(t, "3 cr", chips[3].Label)
	assert.Equal(t, "data", m.Query())

	m.FocusChips()
	m, _ = m.Update(keyMsg("right"))
	m, _ = m.Update(keyMsg("right"))
	chip, ok := m.SelectedChip()
	require.True(t, ok)
	assert.Equal(t, model.DifficultyEasy, chip.Difficulty)
	assert.Contains(t, m.View(), "‹Easy›")
}

func TestFilterBar_SearchInput(t *testing.T) {
	m := NewFilterBar(themes.Default)
	assert.Contains(t, m.View(), "/ to search")

	m.FocusSearch()
	assert.True(t, m.SearchFocused())
	for _, r := range "cs" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "cs", m.Query())

	m.Blur()
	assert.False(t, m.SearchFocused())
	assert.False(t, m.ChipsFocused())
}

func TestCourseDetail(t *testing.T) {
	tests := []struct {
		name    string
		reason  planner.Reason
		missing []string
		want    string
	}{
		{name: "eligible", reason: planner.ReasonEligible, want: "Eligible"},
		{name: "completed", reason: planner.ReasonCompleted, want: "Completed"},
		{name: "planned", reason: planner.ReasonPlanned, want: "In plan"},
		{name: "missing", reason: planner.ReasonMissingPrerequisites, missing: []string{"CS 251", "MATH 180"}, want: "Missing: CS 251, MATH 180"},
		{name: "unestablished", reason: planner.ReasonUnestablished, want: "Confirm completed courses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCourseDetail(themes.Default)
			assert.Contains(t, m.View(), "No course selected")

			m.SetCourse(course("CS 301", 300, "CS 251", "MATH 180"), tt.reason, tt.missing)
			view := m.View()
			assert.Contains(t, view, "CS 301 · CS 301 title")
			assert.Contains(t, view, "Prerequisites: CS 251 → MATH 180")
			assert.True(t, strings.Contains(view, tt.want), view)

			m.Clear()
			assert.Contains(t, m.View(), "No course selected")
		})
	}
}
