package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/semester-planner/internal/catalog"
	"github.com/Veraticus/semester-planner/internal/certs"
	"github.com/Veraticus/semester-planner/internal/config"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/Veraticus/semester-planner/internal/storage"
	"github.com/spf13/cobra"
)

// initStorage opens the catalog database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("database.path is not set")
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openProvider returns the catalog source for read commands: the HTTP API
// when api.url is set, otherwise the local database. The returned func
// releases it.
func openProvider(ctx context.Context) (service.Provider, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if cfg.UseRemoteCatalog() {
		opts := []catalog.Option{
			catalog.WithTimeout(cfg.APITimeout),
			catalog.WithRetry(service.RetryOptions{
				MaxAttempts:  cfg.APIRetries + 1,
				InitialDelay: 250 * time.Millisecond,
				MaxDelay:     5 * time.Second,
				Multiplier:   2.0,
			}),
			catalog.WithLogger(slog.Default()),
		}
		if cfg.APICAFile != "" {
			pool, err := certs.CertPool(cfg.APICAFile)
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, catalog.WithRootCAs(pool))
		}
		client, err := catalog.NewClient(cfg.APIURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("Using remote catalog", "url", cfg.APIURL)
		return client, func() {}, nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Using local catalog", "database", store.Path())
	return store, func() { _ = store.Close() }, nil
}

// addFilterFlags registers the facet and search flags shared by listing
// commands.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "Match code, title or description (case-insensitive)")
	cmd.Flags().IntSlice("level", nil, "Only show these course levels (e.g. 100,200)")
	cmd.Flags().StringSlice("difficulty", nil, "Only show these difficulties (Easy, Moderate, Challenging)")
	cmd.Flags().IntSlice("credits", nil, "Only show courses with these credit counts")
}

// readFilters builds a FilterState from the flags added by addFilterFlags.
func readFilters(cmd *cobra.Command) (planner.FilterState, error) {
	var fs planner.FilterState

	search, _ := cmd.Flags().GetString("search")
	fs = fs.WithSearch(search)

	levels, _ := cmd.Flags().GetIntSlice("level")
	for _, level := range dedupe(levels) {
		fs = fs.ToggleLevel(level)
	}

	difficulties, _ := cmd.Flags().GetStringSlice("difficulty")
	seen := make(map[model.Difficulty]bool)
	for _, name := range difficulties {
		d, ok := model.ParseDifficulty(name)
		if !ok {
			return fs, fmt.Errorf("unknown difficulty %q (want Easy, Moderate or Challenging)", name)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		fs = fs.ToggleDifficulty(d)
	}

	credits, _ := cmd.Flags().GetIntSlice("credits")
	for _, c := range dedupe(credits) {
		fs = fs.ToggleCredits(c)
	}

	return fs, nil
}

// findMajor returns the major with id, or the only major when id is zero
// and the catalog has exactly one.
func findMajor(majors []model.Major, id int) (model.Major, error) {
	if len(majors) == 0 {
		return model.Major{}, fmt.Errorf("no majors in the catalog; run \"planner catalog import\" first")
	}
	if id == 0 {
		if len(majors) == 1 {
			return majors[0], nil
		}
		return model.Major{}, fmt.Errorf("--major is required when the catalog has %d majors; see \"planner majors\"", len(majors))
	}
	for _, m := range majors {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Major{}, fmt.Errorf("unknown major %d; see \"planner majors\"", id)
}

func dedupe[T comparable](values []T) []T {
	seen := make(map[T]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
