package components

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CourseListModel shows the eligible courses in a table.
type CourseListModel struct {
	theme   themes.Theme
	title   string
	courses []model.Course
	table   table.Model
	width   int
	height  int
}

// NewCourseList creates the course table.
func NewCourseList(theme themes.Theme) CourseListModel {
	t := table.New(
		table.WithColumns(courseColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return CourseListModel{theme: theme, table: t, title: "Available courses", width: 80, height: 15}
}

func courseColumns(width int) []table.Column {
	const fixed = 9 + 3 + 5 + 11 + 18 + 12
	titleWidth := max(width-fixed, 16)
	return []table.Column{
		{Title: "Code", Width: 9},
		{Title: "Title", Width: titleWidth},
		{Title: "Cr", Width: 3},
		{Title: "Lvl", Width: 5},
		{Title: "Difficulty", Width: 11},
		{Title: "Prerequisites", Width: 18},
	}
}

// SetTitle changes the panel heading.
func (m *CourseListModel) SetTitle(title string) {
	m.title = title
}

// SetCourses replaces the rows. The cursor stays on the same course when it
// is still listed.
func (m *CourseListModel) SetCourses(courses []model.Course) {
	current, hadCurrent := m.Selected()

	rows := make([]table.Row, len(courses))
	for i, c := range courses {
		rows[i] = table.Row{
			c.Code,
			c.Title,
			strconv.Itoa(c.Credits),
			strconv.Itoa(c.Level),
			string(c.Difficulty),
			c.PrereqChain(),
		}
	}
	m.courses = courses
	m.table.SetRows(rows)

	cursor := clamp(m.table.Cursor(), len(courses))
	if hadCurrent {
		for i, c := range courses {
			if c.ID == current.ID {
				cursor = i
				break
			}
		}
	}
	m.table.SetCursor(cursor)
}

// Courses returns the listed courses.
func (m CourseListModel) Courses() []model.Course {
	return m.courses
}

// Selected returns the course under the cursor.
func (m CourseListModel) Selected() (model.Course, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.courses) {
		return model.Course{}, false
	}
	return m.courses[idx], true
}

// Focus gives the table keyboard focus.
func (m *CourseListModel) Focus() {
	m.table.Focus()
}

// Blur removes keyboard focus.
func (m *CourseListModel) Blur() {
	m.table.Blur()
}

// Focused reports whether the table has focus.
func (m CourseListModel) Focused() bool {
	return m.table.Focused()
}

// Resize fits the table to the panel.
func (m *CourseListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(courseColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-3, 3))
}

// Update forwards navigation keys to the table.
func (m CourseListModel) Update(msg tea.Msg) (CourseListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m CourseListModel) View() string {
	header := m.theme.Bold.Render(fmt.Sprintf("%s (%d)", m.title, len(m.courses)))
	if len(m.courses) == 0 {
		return header + "\n" + m.theme.StatusPending.Render("No courses match. Adjust filters or your completed courses.")
	}
	return header + "\n" + m.table.View()
}
