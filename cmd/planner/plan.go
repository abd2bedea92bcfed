package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/semester-planner/internal/cli"
	"github.com/Veraticus/semester-planner/internal/common"
	"github.com/Veraticus/semester-planner/internal/config"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/tui"
	"github.com/Veraticus/semester-planner/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a semester interactively",
		Long: `Open the interactive planner.

Pick a major, tick the required courses you have completed, then browse,
search and filter the catalog and add eligible courses to your plan.
Logs are written to logging.file while the planner is open.`,
		Args: cobra.NoArgs,
		RunE: runPlan,
	}

	cmd.Flags().Int("major", 0, "Preselect a major by id")
	cmd.Flags().StringSlice("completed", nil, "Pre-tick these completed course codes")
	cmd.Flags().String("theme", "", "Color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("inline", false, "Render inline instead of in the alternate screen")

	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	majorID, _ := cmd.Flags().GetInt("major")
	completed, _ := cmd.Flags().GetStringSlice("completed")
	inline, _ := cmd.Flags().GetBool("inline")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	previous := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(previous)

	ctx := cmd.Context()
	provider, release, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer release()

	session, err := tui.Run(ctx,
		tui.WithProvider(provider),
		tui.WithLogger(logger),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
		tui.WithMajor(majorID),
		tui.WithCompleted(completed),
		tui.WithFetchTimeout(cfg.APITimeout),
		tui.WithAltScreen(!inline),
	)
	if err != nil {
		return err
	}

	printPlanSummary(cmd, session)
	return nil
}

// fileLogger opens logging.file so log lines do not tear the TUI.
func fileLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := common.NewLogger(f, level, cfg.LogFormat)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, func() { _ = f.Close() }, nil
}

func printPlanSummary(cmd *cobra.Command, session *planner.Session) {
	out := cmd.OutOrStdout()
	plan := session.Plan()
	if plan.Len() == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No courses planned."))
		return
	}

	major, _ := session.Major()
	fmt.Fprintln(out, cli.FormatTitle("Plan for "+major.DisplayName()))
	for _, c := range plan.Courses() {
		fmt.Fprintf(out, "  %-10s %-40s %d cr  %s\n", c.Code, c.Title, c.Credits, cli.FormatDifficulty(c.Difficulty))
	}
	fmt.Fprintf(out, "\n%s\n", cli.FormatSuccess(fmt.Sprintf("%d credits · %s", plan.TotalCredits(), plan.WorkloadBalance())))
}
