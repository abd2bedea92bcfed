package themes

import (
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Chip          lipgloss.Style
	ChipActive    lipgloss.Style
	RoundedBox    lipgloss.Style
	FocusedBox    lipgloss.Style
	Highlighted   lipgloss.Style
	Secondary     lipgloss.Color
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

func newTheme(primary, secondary, success, warning, errColor, fg, border, muted, selectedFg, highlight lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Secondary:  secondary,
		Success:    success,
		Warning:    warning,
		Error:      errColor,
		Foreground: fg,
		Border:     border,
		Muted:      muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(selectedFg).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(highlight).
			Foreground(fg),
		Chip: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		ChipActive: lipgloss.NewStyle().
			Foreground(selectedFg).
			Background(secondary).
			Padding(0, 1),

		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		FocusedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = newTheme(
	"#5B8DEF", // primary
	"#95E1D3", // secondary
	"#10b981", // success
	"#f59e0b", // warning
	"#ef4444", // error
	"#fafafa", // foreground
	"#404040", // border
	"#737373", // muted
	"#fafafa", // selected foreground
	"#262626", // highlight
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	"#cba6f7",
	"#89dceb",
	"#a6e3a1",
	"#f9e2af",
	"#f38ba8",
	"#cdd6f4",
	"#45475a",
	"#6c7086",
	"#1e1e2e",
	"#313244",
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Difficulty colors a difficulty label by workload tier.
func (t Theme) Difficulty(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return lipgloss.NewStyle().Foreground(t.Success).Render(string(d))
	case model.DifficultyModerate:
		return lipgloss.NewStyle().Foreground(t.Warning).Render(string(d))
	case model.DifficultyChallenging:
		return lipgloss.NewStyle().Foreground(t.Error).Render(string(d))
	default:
		return string(d)
	}
}

// Box returns the panel border style for a focused or unfocused panel.
func (t Theme) Box(focused bool) lipgloss.Style {
	if focused {
		return t.FocusedBox
	}
	return t.RoundedBox
}
