package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextPane key.Binding

	// Actions
	Select       key.Binding
	Toggle       key.Binding
	Add          key.Binding
	Remove       key.Binding
	Skip         key.Binding
	EditComplete key.Binding
	ChangeMajor  key.Binding
	Retry        key.Binding

	// Filtering
	Search       key.Binding
	Facets       key.Binding
	ClearFilters key.Binding

	// Application
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous facet"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next facet"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "courses/plan"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select/confirm"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "toggle"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to plan"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove from plan"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip checklist"),
		),
		EditComplete: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit completed"),
		),
		ChangeMajor: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "change major"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Facets: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "facets"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),

		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Select, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPane, k.Select},
		{k.Toggle, k.Add, k.Remove, k.Skip},
		{k.Search, k.Facets, k.Left, k.Right, k.ClearFilters},
		{k.EditComplete, k.ChangeMajor, k.Retry},
		{k.Back, k.Help, k.Quit, k.ForceQuit},
	}
}

// stateHelp returns the bindings worth showing in the status bar for s.
func (k KeyMap) stateHelp(s State) []key.Binding {
	switch s {
	case StateLoading:
		return []key.Binding{k.Quit}
	case StateError:
		return []key.Binding{k.Retry, k.Quit}
	case StateMajorSelect:
		return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
	case StateOnboarding:
		return []key.Binding{k.Toggle, k.Select, k.Skip, k.ChangeMajor, k.Help}
	case StateSearch:
		return []key.Binding{k.Select, k.Back}
	case StateHelp:
		return []key.Binding{k.Back}
	default:
		return []key.Binding{k.Add, k.Remove, k.NextPane, k.Search, k.Facets, k.EditComplete, k.Help, k.Quit}
	}
}
