package main

import (
	"fmt"

	"github.com/Veraticus/semester-planner/internal/cli"
	"github.com/spf13/cobra"
)

func eligibleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "List the courses you can take next",
		Long: `List the catalog courses you are eligible to add to your plan.

A course is eligible when it is not completed, not already planned, and
every prerequisite is completed. Filters narrow the catalog first.`,
		Example: `  planner eligible --major 1 --completed "CS 111,CS 141"
  planner eligible --major 1 --completed CS111 --level 200 --explain
  planner eligible -i`,
		Args: cobra.NoArgs,
		RunE: runEligible,
	}

	addSessionFlags(cmd)
	addFilterFlags(cmd)
	cmd.Flags().Bool("explain", false, "Show every filtered course with the reason it is or is not eligible")

	return cmd
}

func runEligible(cmd *cobra.Command, _ []string) error {
	fs, err := readFilters(cmd)
	if err != nil {
		return err
	}
	explain, _ := cmd.Flags().GetBool("explain")

	ctx := cmd.Context()
	provider, release, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer release()

	session, err := buildSession(ctx, provider, readSessionFlags(cmd))
	if err != nil {
		return err
	}
	session.SetSearch(fs.Search)
	for _, level := range fs.Levels.Values() {
		session.ToggleLevel(level)
	}
	for _, d := range fs.Difficulties.Values() {
		session.ToggleDifficulty(d)
	}
	for _, c := range fs.Credits.Values() {
		session.ToggleCredits(c)
	}

	major, _ := session.Major()
	out := cmd.OutOrStdout()

	if explain {
		filtered := session.Filtered()
		fmt.Fprintf(out, "%s\n", cli.FormatTitle(fmt.Sprintf("%s: %d courses (%s)", major.DisplayName(), len(filtered), fs.Describe())))
		fmt.Fprintln(out)
		return cli.WriteCourseTable(out, filtered, cli.CourseTable{
			AnnotateHeader: "STATUS",
			Annotate:       explainCourse(session),
		})
	}

	eligible := session.Eligible()
	fmt.Fprintf(out, "%s\n", cli.FormatTitle(fmt.Sprintf("Eligible for %s (%d)", major.DisplayName(), len(eligible))))
	if !fs.IsEmpty() {
		fmt.Fprintln(out, cli.StyleSubtle(fs.Describe()))
	}
	if plan := session.Plan(); plan.Len() > 0 {
		fmt.Fprintln(out, cli.StyleSubtle(fmt.Sprintf("Plan: %d courses, %d credits, %s", plan.Len(), plan.TotalCredits(), plan.WorkloadBalance())))
	}
	fmt.Fprintln(out)

	if len(eligible) == 0 {
		fmt.Fprintln(out, "No eligible courses match.")
		return nil
	}
	return cli.WriteCourseTable(out, eligible, cli.CourseTable{})
}
