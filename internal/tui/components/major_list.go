package components

import (
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// MajorListModel is a single-select list of majors.
type MajorListModel struct {
	theme  themes.Theme
	majors []model.Major
	cursor int
	width  int
}

// NewMajorList creates a major picker.
func NewMajorList(majors []model.Major, theme themes.Theme) MajorListModel {
	return MajorListModel{majors: majors, theme: theme}
}

// SetMajors replaces the list, keeping the cursor in range.
func (m *MajorListModel) SetMajors(majors []model.Major) {
	m.majors = majors
	m.cursor = clamp(m.cursor, len(majors))
}

// Select moves the cursor to the major with the given id.
func (m *MajorListModel) Select(id int) {
	for i, major := range m.majors {
		if major.ID == id {
			m.cursor = i
			return
		}
	}
}

// Selected returns the major under the cursor.
func (m MajorListModel) Selected() (model.Major, bool) {
	if len(m.majors) == 0 {
		return model.Major{}, false
	}
	return m.majors[m.cursor], true
}

// Resize sets the render width.
func (m *MajorListModel) Resize(width int) {
	m.width = width
}

// Update moves the cursor.
func (m MajorListModel) Update(msg tea.Msg) (MajorListModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.cursor = moveCursor(msg.String(), m.cursor, len(m.majors))
	}
	return m, nil
}

// View renders the list.
func (m MajorListModel) View() string {
	if len(m.majors) == 0 {
		return m.theme.StatusPending.Render("No majors in the catalog. Run `planner catalog import --default`.")
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Select your major"))
	b.WriteString("\n")
	for i, major := range m.majors {
		line := "  " + major.DisplayName()
		if i == m.cursor {
			line = m.theme.Selected.Render("▸ " + major.DisplayName())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func moveCursor(key string, cursor, n int) int {
	if n == 0 {
		return 0
	}
	switch key {
	case "up", "k":
		cursor--
	case "down", "j":
		cursor++
	case "home", "g":
		cursor = 0
	case "end", "G":
		cursor = n - 1
	}
	return clamp(cursor, n)
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
