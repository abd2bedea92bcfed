package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Provider     service.Provider
	Logger       *slog.Logger
	Completed    []string
	FetchTimeout time.Duration
	MajorID      int
	Width        int
	Height       int
	AltScreen    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		FetchTimeout: 30 * time.Second,
		Width:        100,
		Height:       30,
		AltScreen:    true,
	}
}

// WithProvider sets the catalog source.
func WithProvider(p service.Provider) Option {
	return func(c *Config) {
		c.Provider = p
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMajor preselects a major by id, skipping the major picker.
func WithMajor(id int) Option {
	return func(c *Config) {
		c.MajorID = id
	}
}

// WithCompleted pre-ticks checklist entries.
func WithCompleted(codes []string) Option {
	return func(c *Config) {
		c.Completed = codes
	}
}

// WithFetchTimeout bounds each catalog request.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.FetchTimeout = d
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
