package planner

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/google/uuid"
)

// Session owns every piece of mutable planning state for one run. Each
// intent method is a single state-change event; callers must serialize
// them. Derived sets are recomputed from the current state on every read.
type Session struct {
	lastErr       error
	logger        *slog.Logger
	major         *model.Major
	byID          map[string]model.Course
	catalog       []model.Course
	majors        []model.Major
	required      []model.RequiredCourse
	filters       FilterState
	onboarding    Onboarding
	plan          Plan
	id            uuid.UUID
	catalogLoaded bool
}

// NewSession creates an empty session. A nil logger uses slog.Default.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Session{
		id:     id,
		logger: logger.With("session", id.String()),
		byID:   make(map[string]model.Course),
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// SetCatalog replaces the catalog. A nil or empty catalog is valid and means
// "no courses yet".
func (s *Session) SetCatalog(courses []model.Course) {
	s.catalog = slices.Clone(courses)
	s.byID = make(map[string]model.Course, len(courses))
	for _, c := range courses {
		s.byID[c.ID] = c
	}
	s.catalogLoaded = true
	s.lastErr = nil

	s.logger.Info("catalog loaded", "courses", len(courses))
	for code, missing := range DanglingPrerequisites(courses) {
		s.logger.Warn("course has prerequisites missing from the catalog",
			"course", code, "missing", missing)
	}
}

// CatalogFailed records a retrieval failure. The catalog falls back to empty
// and the error is kept for the presentation layer to surface.
func (s *Session) CatalogFailed(err error) {
	s.catalog = nil
	s.byID = map[string]model.Course{}
	s.catalogLoaded = false
	s.lastErr = fmt.Errorf("failed to load catalog: %w", err)
	s.logger.Error("catalog retrieval failed", "error", err)
}

// CatalogLoaded reports whether a catalog fetch has succeeded.
func (s *Session) CatalogLoaded() bool {
	return s.catalogLoaded
}

// LastError returns the most recent retrieval failure, if any.
func (s *Session) LastError() error {
	return s.lastErr
}

// Catalog returns the full catalog in load order.
func (s *Session) Catalog() []model.Course {
	return slices.Clone(s.catalog)
}

// Course looks up a catalog course by id.
func (s *Session) Course(id string) (model.Course, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// SetMajors replaces the list of selectable majors.
func (s *Session) SetMajors(majors []model.Major) {
	s.majors = slices.Clone(majors)
}

// Majors returns the selectable majors.
func (s *Session) Majors() []model.Major {
	return slices.Clone(s.majors)
}

// Major returns the selected major, if any.
func (s *Session) Major() (model.Major, bool) {
	if s.major == nil {
		return model.Major{}, false
	}
	return *s.major, true
}

// SelectMajor picks the major to plan for. Switching to a different major
// discards the checklist, the plan and the loaded requirements.
func (s *Session) SelectMajor(m model.Major) {
	if s.major != nil && s.major.ID == m.ID {
		return
	}
	s.resetForMajor()
	s.major = &m
	s.logger.Info("major selected", "major_id", m.ID, "major", m.DisplayName())
}

// ChangeMajor returns to major selection, clearing the checklist, the plan
// and the required courses. Filters are kept.
func (s *Session) ChangeMajor() {
	s.resetForMajor()
	s.major = nil
	s.logger.Info("major cleared")
}

func (s *Session) resetForMajor() {
	s.onboarding = s.onboarding.Reset()
	s.plan = Plan{}
	s.required = nil
}

// SetRequirements stores the required courses for the selected major.
func (s *Session) SetRequirements(courses []model.RequiredCourse) {
	s.required = slices.Clone(courses)
	s.logger.Info("requirements loaded", "courses", len(courses))
}

// RequirementsFailed leaves the required-course list empty. The checklist
// can still be confirmed as empty.
func (s *Session) RequirementsFailed(err error) {
	s.required = nil
	s.logger.Error("requirements retrieval failed", "error", err)
}

// Requirements returns the required courses in load order.
func (s *Session) Requirements() []model.RequiredCourse {
	return slices.Clone(s.required)
}

// Checklist returns the required courses ordered by course number for the
// onboarding checklist.
func (s *Session) Checklist() []model.RequiredCourse {
	out := slices.Clone(s.required)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number() < out[j].Number()
	})
	return out
}

// Filters returns the active filter state.
func (s *Session) Filters() FilterState {
	return s.filters
}

// SetSearch replaces the free-text search.
func (s *Session) SetSearch(search string) {
	s.filters = s.filters.WithSearch(search)
}

// ToggleLevel flips a level facet value.
func (s *Session) ToggleLevel(level int) {
	s.filters = s.filters.ToggleLevel(level)
}

// ToggleDifficulty flips a difficulty facet value.
func (s *Session) ToggleDifficulty(d model.Difficulty) {
	s.filters = s.filters.ToggleDifficulty(d)
}

// ToggleCredits flips a credits facet value.
func (s *Session) ToggleCredits(credits int) {
	s.filters = s.filters.ToggleCredits(credits)
}

// ClearFilters drops the search string and all facet values.
func (s *Session) ClearFilters() {
	s.filters = s.filters.Clear()
}

// Onboarding returns the checklist state machine.
func (s *Session) Onboarding() Onboarding {
	return s.onboarding
}

// Completion returns the completed set seen by the eligibility reducer.
func (s *Session) Completion() Completion {
	return s.onboarding.Completion()
}

// ToggleCompleted ticks or unticks a course on the checklist.
func (s *Session) ToggleCompleted(code string) error {
	next, err := s.onboarding.Toggle(code)
	if err != nil {
		return err
	}
	s.onboarding = next
	return nil
}

// ConfirmCompleted commits the checklist, activating prerequisite gating.
func (s *Session) ConfirmCompleted() error {
	next, err := s.onboarding.Confirm()
	if err != nil {
		return err
	}
	s.onboarding = next
	s.logger.Info("completed courses confirmed", "count", next.Completion().Codes().Len())
	return nil
}

// EditCompleted reopens a confirmed checklist.
func (s *Session) EditCompleted() error {
	next, err := s.onboarding.Edit()
	if err != nil {
		return err
	}
	s.onboarding = next
	return nil
}

// Plan returns the current plan.
func (s *Session) Plan() Plan {
	return s.plan
}

// AddToPlan adds the catalog course with the given id. It reports whether
// the plan changed; adding an already planned course is a no-op.
func (s *Session) AddToPlan(id string) (bool, error) {
	c, ok := s.byID[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCourse, id)
	}
	before := s.plan.Len()
	s.plan = s.plan.Add(c)
	changed := s.plan.Len() != before
	if changed {
		s.logger.Debug("course added to plan", "course", c.Code, "credits", s.plan.TotalCredits())
	}
	return changed, nil
}

// RemoveFromPlan drops the course with the given id from the plan.
func (s *Session) RemoveFromPlan(id string) {
	s.plan = s.plan.Remove(id)
}

// Filtered applies the filter predicate to the catalog.
func (s *Session) Filtered() []model.Course {
	return Filter(s.catalog, s.filters)
}

// Eligible applies the eligibility reducer to the filtered catalog.
func (s *Session) Eligible() []model.Course {
	return Eligible(s.Filtered(), s.Completion(), s.plan)
}

// Explain returns why a catalog course is or is not eligible, along with
// any missing prerequisites.
func (s *Session) Explain(id string) (Reason, []string, error) {
	c, ok := s.byID[id]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s", ErrUnknownCourse, id)
	}
	completion := s.Completion()
	reason := Classify(c, completion, s.plan)
	if reason == ReasonMissingPrerequisites {
		return reason, MissingPrerequisites(c, completion), nil
	}
	return reason, nil, nil
}

// Facets lists the distinct facet values present in the catalog.
type Facets struct {
	Levels       []int
	Difficulties []model.Difficulty
	Credits      []int
}

// Facets returns the facet values offered by the current catalog, sorted.
func (s *Session) Facets() Facets {
	levelValues := make([]int, 0, len(s.catalog))
	creditValues := make([]int, 0, len(s.catalog))
	difficultyValues := make([]model.Difficulty, 0, len(s.catalog))
	for _, c := range s.catalog {
		levelValues = append(levelValues, c.Level)
		creditValues = append(creditValues, c.Credits)
		difficultyValues = append(difficultyValues, c.Difficulty)
	}
	difficulties := NewSet(difficultyValues...)

	f := Facets{Levels: Sorted(NewSet(levelValues...)), Credits: Sorted(NewSet(creditValues...))}
	for _, d := range model.Difficulties {
		if difficulties.Has(d) {
			f.Difficulties = append(f.Difficulties, d)
		}
	}
	return f
}
