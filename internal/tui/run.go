package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/semester-planner/internal/planner"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive planner and blocks until the user quits. The
// returned session holds the final major, completed set and plan.
func Run(ctx context.Context, opts ...Option) (*planner.Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("catalog provider is required")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(newModel(cfg), programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return m.session, nil
}
