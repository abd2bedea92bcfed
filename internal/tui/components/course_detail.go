package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// CourseDetailModel shows the highlighted course and why it is or is not
// eligible.
type CourseDetailModel struct {
	theme   themes.Theme
	course  *model.Course
	missing []string
	reason  planner.Reason
	width   int
}

// NewCourseDetail creates an empty detail pane.
func NewCourseDetail(theme themes.Theme) CourseDetailModel {
	return CourseDetailModel{theme: theme, width: 36}
}

// SetCourse shows c with its eligibility reason.
func (m *CourseDetailModel) SetCourse(c model.Course, reason planner.Reason, missing []string) {
	m.course = &c
	m.reason = reason
	m.missing = missing
}

// Clear empties the pane.
func (m *CourseDetailModel) Clear() {
	m.course = nil
	m.missing = nil
}

// Resize sets the render width.
func (m *CourseDetailModel) Resize(width int) {
	m.width = width
}

// View renders the pane.
func (m CourseDetailModel) View() string {
	if m.course == nil {
		return m.theme.StatusPending.Render("No course selected")
	}
	c := m.course

	var b strings.Builder
	b.WriteString(m.theme.Bold.Render(c.Code + " · " + c.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d credits · level %d · %s\n", c.Credits, c.Level, m.theme.Difficulty(c.Difficulty))
	fmt.Fprintf(&b, "Prerequisites: %s\n", c.PrereqChain())
	b.WriteString(m.status())

	if c.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(c.Description))
	}
	return b.String()
}

func (m CourseDetailModel) status() string {
	switch m.reason {
	case planner.ReasonEligible:
		return m.theme.StatusSuccess.Render("Eligible")
	case planner.ReasonCompleted:
		return m.theme.StatusInfo.Render("Completed")
	case planner.ReasonPlanned:
		return m.theme.StatusInfo.Render("In plan")
	case planner.ReasonMissingPrerequisites:
		return m.theme.StatusWarning.Render("Missing: " + strings.Join(m.missing, ", "))
	default:
		return m.theme.StatusPending.Render("Confirm completed courses to check prerequisites")
	}
}
