package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/Veraticus/semester-planner/internal/cli"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/spf13/cobra"
)

func majorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "majors [id]",
		Short: "List majors, or the required courses of one major",
		Example: `  planner majors
  planner majors 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMajors,
	}
}

func runMajors(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	provider, release, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer release()

	majors, err := provider.FetchMajors(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if len(majors) == 0 {
			fmt.Fprintln(out, "No majors found. Run \"planner catalog import --default\" to load the built-in catalog.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMAJOR\tCONCENTRATION")
		for _, m := range majors {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, m.Name, m.Concentration)
		}
		return tw.Flush()
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid major id %q", args[0])
	}
	major, err := findMajor(majors, id)
	if err != nil {
		return err
	}

	required, err := provider.FetchRequirements(ctx, major.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n\n", cli.FormatTitle(major.DisplayName()))
	if len(required) == 0 {
		fmt.Fprintln(out, "No required courses found.")
		return nil
	}
	courses := make([]model.Course, len(required))
	groups := make(map[string]string, len(required))
	for i, rc := range required {
		courses[i] = rc.Course
		groups[rc.ID] = rc.RequirementType
	}
	return cli.WriteCourseTable(out, courses, cli.CourseTable{
		AnnotateHeader: "REQUIREMENT",
		Annotate:       func(c model.Course) string { return groups[c.ID] },
	})
}
