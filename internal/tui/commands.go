package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/semester-planner/internal/model"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// loadCatalog fetches courses and majors concurrently.
func (m Model) loadCatalog() tea.Cmd {
	provider := m.config.Provider
	timeout := m.config.FetchTimeout
	return func() tea.Msg {
		if provider == nil {
			return catalogLoadedMsg{err: fmt.Errorf("catalog provider not configured")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var courses []model.Course
		var majors []model.Major
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			courses, err = provider.FetchCourses(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			majors, err = provider.FetchMajors(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return catalogLoadedMsg{err: err}
		}
		return catalogLoadedMsg{courses: courses, majors: majors}
	}
}

// loadRequirements fetches the required courses of one major.
func (m Model) loadRequirements(majorID int) tea.Cmd {
	provider := m.config.Provider
	timeout := m.config.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		courses, err := provider.FetchRequirements(ctx, majorID)
		return requirementsLoadedMsg{majorID: majorID, courses: courses, err: err}
	}
}
