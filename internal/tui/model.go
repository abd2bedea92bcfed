// Package tui implements the interactive semester planner on Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/tui/components"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current screen of the TUI.
type State int

const (
	StateLoading State = iota
	StateMajorSelect
	StateOnboarding
	StateBrowse
	StateSearch
	StateHelp
	StateError
)

// focus is the browse pane receiving navigation keys.
type focus int

const (
	focusCourses focus = iota
	focusPlan
	focusFacets
)

// Model holds the main TUI state. All planning state lives in the session;
// the components only render it and track cursors.
type Model struct {
	theme       themes.Theme
	session     *planner.Session
	status      string
	config      Config
	keymap      KeyMap
	help        help.Model
	spinner     spinner.Model
	majorList   components.MajorListModel
	checklist   components.ChecklistModel
	courseList  components.CourseListModel
	planSummary components.PlanSummaryModel
	filterBar   components.FilterBarModel
	detail      components.CourseDetailModel
	width       int
	height      int
	state       State
	prevState   State
	focus       focus
	statusErr   bool
	loadingReqs bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		state:       StateLoading,
		config:      cfg,
		keymap:      DefaultKeyMap(),
		theme:       cfg.Theme,
		session:     planner.NewSession(cfg.Logger),
		help:        help.New(),
		spinner:     sp,
		majorList:   components.NewMajorList(nil, cfg.Theme),
		checklist:   components.NewChecklist(cfg.Theme),
		courseList:  components.NewCourseList(cfg.Theme),
		planSummary: components.NewPlanSummary(cfg.Theme),
		filterBar:   components.NewFilterBar(cfg.Theme),
		detail:      components.NewCourseDetail(cfg.Theme),
		width:       cfg.Width,
		height:      cfg.Height,
	}
	m.resize()
	return m
}

// Session exposes the planning state, used to report the plan on exit.
func (m Model) Session() *planner.Session {
	return m.session
}

// State returns the current screen.
func (m Model) State() State {
	return m.state
}

// Init starts the catalog fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading && !m.loadingReqs {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)

	case requirementsLoadedMsg:
		m.handleRequirementsLoaded(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.session.CatalogFailed(msg.err)
		m.state = StateError
		return m, nil
	}

	m.session.SetCatalog(msg.courses)
	m.session.SetMajors(msg.majors)
	m.majorList.SetMajors(msg.majors)
	m.refresh()

	majors := m.session.Majors()
	if m.config.MajorID != 0 {
		for _, major := range majors {
			if major.ID == m.config.MajorID {
				return m.selectMajor(major)
			}
		}
		m.setError(fmt.Errorf("major %d not found", m.config.MajorID))
	}
	if len(majors) == 1 {
		return m.selectMajor(majors[0])
	}
	m.state = StateMajorSelect
	return m, nil
}

func (m Model) selectMajor(major model.Major) (tea.Model, tea.Cmd) {
	m.session.SelectMajor(major)
	m.majorList.Select(major.ID)
	m.state = StateOnboarding
	m.loadingReqs = true
	m.checklist.SetLoading(true)
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.loadRequirements(major.ID))
}

func (m *Model) handleRequirementsLoaded(msg requirementsLoadedMsg) {
	major, ok := m.session.Major()
	if !ok || major.ID != msg.majorID {
		return
	}
	m.loadingReqs = false

	if msg.err != nil {
		m.session.RequirementsFailed(msg.err)
		m.setError(fmt.Errorf("could not load requirements: %w", msg.err))
	} else {
		m.session.SetRequirements(msg.courses)
	}

	if m.session.Onboarding().State() == planner.NotStarted {
		completed, unknown := model.ResolveCodes(m.session.Catalog(), m.config.Completed)
		if len(unknown) > 0 && msg.err == nil {
			m.setStatus("Not in the catalog: " + strings.Join(unknown, ", "))
		}
		for _, code := range completed {
			if m.session.Onboarding().IsChecked(code) {
				continue
			}
			if err := m.session.ToggleCompleted(code); err != nil {
				m.setError(err)
			}
		}
	}

	m.checklist.SetItems(m.session.Checklist())
	m.refresh()
}

// handleKey routes a key press by state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m.quit()
	}

	switch m.state {
	case StateSearch:
		return m.updateSearch(msg)
	case StateHelp:
		if key.Matches(msg, m.keymap.Help, m.keymap.Back, m.keymap.Quit) {
			m.state = m.prevState
		}
		return m, nil
	}

	if key.Matches(msg, m.keymap.Quit) {
		return m.quit()
	}

	switch m.state {
	case StateLoading:
		return m, nil
	case StateError:
		if key.Matches(msg, m.keymap.Retry) {
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, m.loadCatalog())
		}
		return m, nil
	}

	if key.Matches(msg, m.keymap.Help) {
		m.prevState = m.state
		m.state = StateHelp
		return m, nil
	}

	switch m.state {
	case StateMajorSelect:
		return m.updateMajorSelect(msg)
	case StateOnboarding:
		return m.updateOnboarding(msg)
	case StateBrowse:
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateMajorSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Select) {
		if major, ok := m.majorList.Selected(); ok {
			return m.selectMajor(major)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.majorList, cmd = m.majorList.Update(msg)
	return m, cmd
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Toggle):
		if code, ok := m.checklist.Selected(); ok {
			if err := m.session.ToggleCompleted(code); err != nil {
				m.setError(err)
			}
		}
	case key.Matches(msg, m.keymap.Select):
		if m.loadingReqs {
			return m, nil
		}
		if err := m.session.ConfirmCompleted(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%d completed courses confirmed", m.session.Completion().Codes().Len()))
		m.state = StateBrowse
	case key.Matches(msg, m.keymap.Skip, m.keymap.Back):
		m.state = StateBrowse
	case key.Matches(msg, m.keymap.ChangeMajor):
		m.session.ChangeMajor()
		m.state = StateMajorSelect
	default:
		var cmd tea.Cmd
		m.checklist, cmd = m.checklist.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusFacets {
		return m.updateFacets(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.NextPane):
		m.setFocus(m.nextPane())
	case key.Matches(msg, m.keymap.Add) || (m.focus == focusCourses && key.Matches(msg, m.keymap.Select)):
		m.addSelected()
	case key.Matches(msg, m.keymap.Remove):
		m.removeSelected()
	case key.Matches(msg, m.keymap.Search):
		m.state = StateSearch
		m.refresh()
		return m, m.filterBar.FocusSearch()
	case key.Matches(msg, m.keymap.Facets):
		m.setFocus(focusFacets)
	case key.Matches(msg, m.keymap.ClearFilters):
		m.session.ClearFilters()
		m.setStatus("Filters cleared")
	case key.Matches(msg, m.keymap.EditComplete):
		if m.session.Onboarding().State() == planner.Confirmed {
			if err := m.session.EditCompleted(); err != nil {
				m.setError(err)
				return m, nil
			}
		}
		m.state = StateOnboarding
	case key.Matches(msg, m.keymap.ChangeMajor):
		m.session.ChangeMajor()
		m.setFocus(focusCourses)
		m.state = StateMajorSelect
	default:
		var cmd tea.Cmd
		if m.focus == focusPlan {
			m.planSummary, cmd = m.planSummary.Update(msg)
		} else {
			m.courseList, cmd = m.courseList.Update(msg)
		}
		m.refreshDetail()
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m Model) updateFacets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Toggle, m.keymap.Select):
		chip, ok := m.filterBar.SelectedChip()
		if !ok {
			return m, nil
		}
		switch chip.Kind {
		case components.FacetLevel:
			m.session.ToggleLevel(chip.Value)
		case components.FacetDifficulty:
			m.session.ToggleDifficulty(chip.Difficulty)
		case components.FacetCredits:
			m.session.ToggleCredits(chip.Value)
		}
	case key.Matches(msg, m.keymap.Facets, m.keymap.Back):
		m.setFocus(focusCourses)
	case key.Matches(msg, m.keymap.ClearFilters):
		m.session.ClearFilters()
	default:
		var cmd tea.Cmd
		m.filterBar, cmd = m.filterBar.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Select):
		m.filterBar.Blur()
		m.state = StateBrowse
		return m, nil
	case key.Matches(msg, m.keymap.Back):
		m.session.SetSearch("")
		m.filterBar.Blur()
		m.state = StateBrowse
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterBar, cmd = m.filterBar.Update(msg)
	if q := m.filterBar.Query(); q != m.session.Filters().Search {
		m.session.SetSearch(q)
		m.refresh()
	}
	return m, cmd
}

func (m *Model) addSelected() {
	if m.focus != focusCourses {
		return
	}
	course, ok := m.courseList.Selected()
	if !ok {
		return
	}
	changed, err := m.session.AddToPlan(course.ID)
	switch {
	case err != nil:
		m.setError(err)
	case changed:
		m.setStatus("Added " + course.Code)
	default:
		m.setStatus(course.Code + " is already planned")
	}
}

func (m *Model) removeSelected() {
	var course model.Course
	var ok bool
	if m.focus == focusPlan {
		course, ok = m.planSummary.Selected()
	} else {
		course, ok = m.courseList.Selected()
	}
	if !ok || !m.session.Plan().Contains(course.ID) {
		return
	}
	m.session.RemoveFromPlan(course.ID)
	m.setStatus("Removed " + course.Code)
}

func (m Model) nextPane() focus {
	if m.focus == focusCourses {
		return focusPlan
	}
	return focusCourses
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.courseList.Blur()
	m.planSummary.Blur()
	m.filterBar.Blur()
	switch f {
	case focusCourses:
		m.courseList.Focus()
	case focusPlan:
		m.planSummary.Focus()
	case focusFacets:
		m.filterBar.FocusChips()
	}
}

// refresh re-derives every view of the session after a state change.
func (m *Model) refresh() {
	if m.session.Completion().IsEstablished() {
		m.courseList.SetTitle("Eligible courses")
	} else {
		m.courseList.SetTitle("All courses")
	}
	m.courseList.SetCourses(m.session.Eligible())
	m.planSummary.SetPlan(m.session.Plan())
	m.filterBar.Sync(m.session.Facets(), m.session.Filters())
	m.checklist.SetOnboarding(m.session.Onboarding())
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	course, ok := m.courseList.Selected()
	if m.focus == focusPlan {
		course, ok = m.planSummary.Selected()
	}
	if !ok {
		m.detail.Clear()
		return
	}
	reason, missing, err := m.session.Explain(course.ID)
	if err != nil {
		m.detail.Clear()
		return
	}
	m.detail.SetCourse(course, reason, missing)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	switch {
	case errors.Is(err, planner.ErrChecklistLocked):
		m.status = "Checklist is confirmed. Press e to edit it."
	default:
		m.status = err.Error()
	}
	m.statusErr = true
}

// resize adjusts component sizes when the terminal resizes.
func (m *Model) resize() {
	m.help.Width = m.width
	bodyHeight := max(m.height-6, 8)

	if m.wide() {
		left := m.width * 3 / 5
		right := m.width - left - 4
		m.courseList.Resize(left-4, bodyHeight)
		m.planSummary.Resize(right)
		m.detail.Resize(right)
	} else {
		m.courseList.Resize(m.width-4, bodyHeight/2)
		m.planSummary.Resize(m.width - 4)
		m.detail.Resize(m.width - 4)
	}
	m.filterBar.Resize(m.width - 4)
	m.majorList.Resize(m.width - 4)
	m.checklist.Resize(m.width-4, bodyHeight-2)
}

func (m Model) wide() bool {
	return m.width >= 100
}
