package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateLoading:
		return m.renderLoading()
	case StateError:
		return m.renderError()
	case StateHelp:
		body = m.renderHelp()
	case StateMajorSelect:
		body = m.theme.RoundedBox.Render(m.majorList.View())
	case StateOnboarding:
		body = m.theme.RoundedBox.Render(m.checklist.View())
	default:
		body = m.renderBrowse()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatusBar())
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("🎓 Semester Planner"),
		m.spinner.View()+" Loading course catalog...",
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderError shows the catalog failure and the retry hint.
func (m Model) renderError() string {
	msg := "unknown error"
	if err := m.session.LastError(); err != nil {
		msg = err.Error()
	}
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.StatusError.Render("Could not load the course catalog"),
		"",
		lipgloss.NewStyle().Width(max(m.width/2, 40)).Render(msg),
		"",
		m.help.ShortHelpView(m.keymap.stateHelp(StateError)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.theme.RoundedBox.BorderForeground(m.theme.Error).Render(content))
}

func (m Model) renderHeader() string {
	title := m.theme.Title.UnsetMargins().Render("🎓 Semester Planner")

	major := m.theme.Subtitle.Render("no major selected")
	if selected, ok := m.session.Major(); ok {
		major = m.theme.Bold.Render(selected.DisplayName())
	}

	completion := m.theme.StatusPending.Render("completed courses not confirmed")
	if c := m.session.Completion(); c.IsEstablished() {
		completion = m.theme.StatusSuccess.Render(fmt.Sprintf("%d completed", c.Codes().Len()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", major, "  ", completion)
}

func (m Model) renderBrowse() string {
	filters := m.theme.Box(m.state == StateSearch || m.focus == focusFacets).
		Width(max(m.width-2, 20)).
		Render(m.filterBar.View())

	courses := m.theme.Box(m.state == StateBrowse && m.focus == focusCourses).Render(m.courseList.View())
	plan := m.theme.Box(m.focus == focusPlan).Render(m.planSummary.View())
	detail := m.theme.RoundedBox.Render(m.detail.View())

	var main string
	if m.wide() {
		side := lipgloss.JoinVertical(lipgloss.Left, plan, detail)
		main = lipgloss.JoinHorizontal(lipgloss.Top, courses, side)
	} else {
		main = lipgloss.JoinVertical(lipgloss.Left, courses, plan, detail)
	}
	return lipgloss.JoinVertical(lipgloss.Left, filters, main)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Keyboard shortcuts"),
		h.View(m.keymap),
	))
}

func (m Model) renderStatusBar() string {
	hints := m.help.ShortHelpView(m.keymap.stateHelp(m.state))
	if m.status == "" {
		return hints
	}
	status := m.theme.StatusInfo.Render(m.status)
	if m.statusErr {
		status = m.theme.StatusError.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, hints)
}
