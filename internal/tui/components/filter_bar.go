package components

import (
	"strconv"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FacetKind identifies which facet a chip toggles.
type FacetKind int

// Facet kinds.
const (
	FacetLevel FacetKind = iota
	FacetDifficulty
	FacetCredits
)

// Chip is one toggleable facet value.
type Chip struct {
	Label      string
	Difficulty model.Difficulty
	Kind       FacetKind
	Value      int
	Active     bool
}

// FilterBarModel holds the search input and the facet chips.
type FilterBarModel struct {
	theme       themes.Theme
	chips       []Chip
	input       textinput.Model
	cursor      int
	width       int
	chipsActive bool
}

// NewFilterBar creates the filter bar.
func NewFilterBar(theme themes.Theme) FilterBarModel {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "search code, title or description"
	input.CharLimit = 64

	return FilterBarModel{theme: theme, input: input, width: 80}
}

// Sync rebuilds the chips from the offered facets and the active filters.
func (m *FilterBarModel) Sync(facets planner.Facets, fs planner.FilterState) {
	chips := make([]Chip, 0, len(facets.Levels)+len(facets.Difficulties)+len(facets.Credits))
	for _, l := range facets.Levels {
		chips = append(chips, Chip{Kind: FacetLevel, Value: l, Label: strconv.Itoa(l), Active: fs.Levels.Has(l)})
	}
	for _, d := range facets.Difficulties {
		chips = append(chips, Chip{Kind: FacetDifficulty, Difficulty: d, Label: string(d), Active: fs.Difficulties.Has(d)})
	}
	for _, c := range facets.Credits {
		chips = append(chips, Chip{Kind: FacetCredits, Value: c, Label: strconv.Itoa(c) + " cr", Active: fs.Credits.Has(c)})
	}
	m.chips = chips
	m.cursor = clamp(m.cursor, len(chips))
	if m.input.Value() != fs.Search {
		m.input.SetValue(fs.Search)
	}
}

// Chips returns the current facet chips.
func (m FilterBarModel) Chips() []Chip {
	return m.chips
}

// SelectedChip returns the chip under the cursor.
func (m FilterBarModel) SelectedChip() (Chip, bool) {
	if len(m.chips) == 0 {
		return Chip{}, false
	}
	return m.chips[m.cursor], true
}

// FocusSearch puts the cursor in the search input.
func (m *FilterBarModel) FocusSearch() tea.Cmd {
	m.chipsActive = false
	return m.input.Focus()
}

// FocusChips activates chip navigation.
func (m *FilterBarModel) FocusChips() {
	m.input.Blur()
	m.chipsActive = true
}

// Blur releases both the input and the chips.
func (m *FilterBarModel) Blur() {
	m.input.Blur()
	m.chipsActive = false
}

// SearchFocused reports whether the search input has focus.
func (m FilterBarModel) SearchFocused() bool {
	return m.input.Focused()
}

// ChipsFocused reports whether chip navigation is active.
func (m FilterBarModel) ChipsFocused() bool {
	return m.chipsActive
}

// Query returns the search input text.
func (m FilterBarModel) Query() string {
	return m.input.Value()
}

// Resize sets the render width.
func (m *FilterBarModel) Resize(width int) {
	m.width = width
	m.input.Width = max(width-4, 10)
}

// Update edits the query or moves between chips.
func (m FilterBarModel) Update(msg tea.Msg) (FilterBarModel, tea.Cmd) {
	if m.chipsActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "left", "h", "shift+tab":
				m.cursor = clamp(m.cursor-1, len(m.chips))
			case "right", "l", "tab":
				m.cursor = clamp(m.cursor+1, len(m.chips))
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the search line and the chip row.
func (m FilterBarModel) View() string {
	search := m.input.View()
	if !m.input.Focused() && m.input.Value() == "" {
		search = m.theme.Subtitle.Render("/ to search")
	}

	chips := make([]string, 0, len(m.chips)+1)
	chips = append(chips, m.theme.Subtitle.Render("facets:"))
	for i, c := range m.chips {
		style := m.theme.Chip
		if c.Active {
			style = m.theme.ChipActive
		}
		label := c.Label
		if m.chipsActive && i == m.cursor {
			label = "‹" + label + "›"
		}
		chips = append(chips, style.Render(label))
	}

	return lipgloss.JoinVertical(lipgloss.Left, search, strings.Join(chips, " "))
}
