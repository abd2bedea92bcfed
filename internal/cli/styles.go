// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5B8DEF")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	PlannerIcon = "🎓"
)

var difficultyColors = map[model.Difficulty]lipgloss.Color{
	model.DifficultyEasy:        SuccessColor,
	model.DifficultyModerate:    WarningColor,
	model.DifficultyChallenging: ErrorColor,
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the planner icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(PlannerIcon + " " + title)
}

// FormatDifficulty colors a difficulty label by tier.
func FormatDifficulty(d model.Difficulty) string {
	color, ok := difficultyColors[d]
	if !ok {
		return string(d)
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(d))
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// RenderCourseDetail renders every field of a course for `catalog show`.
func RenderCourseDetail(c model.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d\n", BoldStyle.Render("Credits:"), c.Credits)
	fmt.Fprintf(&b, "%s    %d\n", BoldStyle.Render("Level:"), c.Level)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Workload:"), FormatDifficulty(c.Difficulty))
	fmt.Fprintf(&b, "%s  %s", BoldStyle.Render("Prereqs:"), c.PrereqChain())
	if c.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(72).Render(c.Description))
	}
	return RenderBox(c.Code+" · "+c.Title, b.String())
}

// StyleSubtle formats text as secondary information.
func StyleSubtle(text string) string {
	return SubtleStyle.Render(text)
}
