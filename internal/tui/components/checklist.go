package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// ChecklistModel renders the completed-course checklist for onboarding.
// Ticks are read from the onboarding state; the model only owns the cursor.
type ChecklistModel struct {
	theme      themes.Theme
	onboarding planner.Onboarding
	items      []model.RequiredCourse
	cursor     int
	height     int
	width      int
	loading    bool
}

// NewChecklist creates an empty checklist.
func NewChecklist(theme themes.Theme) ChecklistModel {
	return ChecklistModel{theme: theme, height: 15}
}

// SetItems replaces the required courses shown.
func (m *ChecklistModel) SetItems(items []model.RequiredCourse) {
	m.items = items
	m.cursor = clamp(m.cursor, len(items))
	m.loading = false
}

// SetLoading marks the requirement fetch as in flight.
func (m *ChecklistModel) SetLoading(loading bool) {
	m.loading = loading
}

// SetOnboarding syncs the tick marks.
func (m *ChecklistModel) SetOnboarding(o planner.Onboarding) {
	m.onboarding = o
}

// Selected returns the course code under the cursor.
func (m ChecklistModel) Selected() (string, bool) {
	if len(m.items) == 0 {
		return "", false
	}
	return m.items[m.cursor].Code, true
}

// Resize sets the visible window.
func (m *ChecklistModel) Resize(width, height int) {
	m.width = width
	m.height = max(height, 3)
}

// Update moves the cursor.
func (m ChecklistModel) Update(msg tea.Msg) (ChecklistModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.cursor = moveCursor(msg.String(), m.cursor, len(m.items))
	}
	return m, nil
}

// View renders the checklist.
func (m ChecklistModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Which required courses have you completed?"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.theme.StatusPending.Render("Loading requirements..."))
		return b.String()
	case len(m.items) == 0:
		b.WriteString(m.theme.StatusPending.Render("No required courses found. Press enter to continue."))
		return b.String()
	}

	start, end := window(m.cursor, len(m.items), m.height)
	for i := start; i < end; i++ {
		item := m.items[i]
		box := "[ ]"
		if m.onboarding.IsChecked(item.Code) {
			box = m.theme.StatusSuccess.Render("[x]")
		}
		line := fmt.Sprintf("%s %-9s %s", box, item.Code, item.Title)
		if item.RequirementType != "" {
			line += m.theme.Subtitle.Render("  " + item.RequirementType)
		}
		if i == m.cursor {
			line = m.theme.Highlighted.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s", m.theme.Subtitle.Render(
		fmt.Sprintf("%d of %d checked", m.onboarding.Draft().Len(), len(m.items))))
	return b.String()
}

// window returns the slice bounds of a scrolling window of size height that
// keeps cursor visible.
func window(cursor, n, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(start, 0)
	start = min(start, n-height)
	return start, start + height
}
