package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// PlanSummaryModel lists the planned courses with their credit total and
// workload balance.
type PlanSummaryModel struct {
	theme   themes.Theme
	plan    planner.Plan
	cursor  int
	width   int
	focused bool
}

// NewPlanSummary creates an empty plan panel.
func NewPlanSummary(theme themes.Theme) PlanSummaryModel {
	return PlanSummaryModel{theme: theme, width: 36}
}

// SetPlan syncs the panel with the session plan.
func (m *PlanSummaryModel) SetPlan(p planner.Plan) {
	m.plan = p
	m.cursor = clamp(m.cursor, p.Len())
}

// Selected returns the planned course under the cursor.
func (m PlanSummaryModel) Selected() (model.Course, bool) {
	courses := m.plan.Courses()
	if len(courses) == 0 {
		return model.Course{}, false
	}
	return courses[m.cursor], true
}

// Focus gives the panel keyboard focus.
func (m *PlanSummaryModel) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *PlanSummaryModel) Blur() { m.focused = false }

// Focused reports whether the panel has focus.
func (m PlanSummaryModel) Focused() bool { return m.focused }

// Resize sets the render width.
func (m *PlanSummaryModel) Resize(width int) {
	m.width = width
}

// Update moves the cursor while focused.
func (m PlanSummaryModel) Update(msg tea.Msg) (PlanSummaryModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.cursor = moveCursor(msg.String(), m.cursor, m.plan.Len())
	}
	return m, nil
}

// View renders the panel.
func (m PlanSummaryModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Semester plan"))
	b.WriteString("\n")

	if m.plan.Len() == 0 {
		b.WriteString(m.theme.StatusPending.Render("No courses yet. Press a to add one."))
		return b.String()
	}

	for i, c := range m.plan.Courses() {
		line := fmt.Sprintf("%-9s %2d cr  %s", c.Code, c.Credits, m.theme.Difficulty(c.Difficulty))
		if m.focused && i == m.cursor {
			line = m.theme.Highlighted.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s %d\n", m.theme.Bold.Render("Total credits:"), m.plan.TotalCredits())
	fmt.Fprintf(&b, "%s %s", m.theme.Bold.Render("Workload:"), m.plan.WorkloadBalance())
	return b.String()
}
