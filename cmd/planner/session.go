package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/semester-planner/internal/catalog"
	"github.com/Veraticus/semester-planner/internal/cli"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/spf13/cobra"
)

// sessionFlags are the inputs shared by one-shot planning commands.
type sessionFlags struct {
	completed   []string
	planned     []string
	majorID     int
	interactive bool
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("major", 0, "Major id (see \"planner majors\"); optional when there is only one")
	cmd.Flags().StringSlice("completed", nil, "Completed course codes, e.g. CS111,CS141")
	cmd.Flags().StringSlice("planned", nil, "Course codes already in the plan")
	cmd.Flags().BoolP("interactive", "i", false, "Pick the major and completed courses from a checklist")
}

func readSessionFlags(cmd *cobra.Command) sessionFlags {
	var f sessionFlags
	f.majorID, _ = cmd.Flags().GetInt("major")
	f.completed, _ = cmd.Flags().GetStringSlice("completed")
	f.planned, _ = cmd.Flags().GetStringSlice("planned")
	f.interactive, _ = cmd.Flags().GetBool("interactive")
	return f
}

// buildSession loads the catalog and the chosen major's requirements
// concurrently, then confirms the completed set and fills the plan. The
// completed set is always established, so an empty --completed means no
// completed courses.
func buildSession(ctx context.Context, provider service.Provider, f sessionFlags) (*planner.Session, error) {
	majors, err := provider.FetchMajors(ctx)
	if err != nil {
		return nil, err
	}

	var major model.Major
	if f.interactive && f.majorID == 0 {
		major, err = cli.PromptMajor(ctx, majors)
	} else {
		major, err = findMajor(majors, f.majorID)
	}
	if err != nil {
		return nil, err
	}

	snap, err := catalog.Load(ctx, provider, major.ID)
	if err != nil {
		return nil, err
	}

	session := planner.NewSession(slog.Default())
	session.SetCatalog(snap.Courses)
	session.SetMajors(majors)
	session.SelectMajor(major)
	if snap.RequirementsErr != nil {
		slog.Warn("Failed to load major requirements", "major", major.ID, "error", snap.RequirementsErr)
		session.RequirementsFailed(snap.RequirementsErr)
	} else {
		session.SetRequirements(snap.Requirements)
	}

	completed, unknown := model.ResolveCodes(session.Catalog(), f.completed)
	if len(unknown) > 0 {
		slog.Warn("Completed courses not in the catalog", "codes", strings.Join(unknown, ", "))
	}
	if f.interactive {
		completed, err = cli.PromptCompleted(ctx, session.Checklist(), completed)
		if err != nil {
			return nil, err
		}
	}
	for _, code := range completed {
		if err := session.ToggleCompleted(code); err != nil {
			return nil, err
		}
	}
	if err := session.ConfirmCompleted(); err != nil {
		return nil, err
	}

	for _, code := range f.planned {
		if strings.TrimSpace(code) == "" {
			continue
		}
		if _, err := session.AddToPlan(model.CourseID(code)); err != nil {
			return nil, fmt.Errorf("cannot plan %q: %w", code, err)
		}
	}

	return session, nil
}

// planReport snapshots a session for export.
func planReport(session *planner.Session) service.PlanReport {
	major, _ := session.Major()
	plan := session.Plan()
	return service.PlanReport{
		Major:        major,
		Completed:    planner.Sorted(session.Completion().Codes()),
		Planned:      plan.Courses(),
		Eligible:     session.Eligible(),
		TotalCredits: plan.TotalCredits(),
		Workload:     plan.WorkloadBalance().String(),
	}
}

func explainCourse(session *planner.Session) func(model.Course) string {
	return func(c model.Course) string {
		reason, missing, err := session.Explain(c.ID)
		if err != nil {
			return err.Error()
		}
		if len(missing) > 0 {
			return "missing " + strings.Join(missing, ", ")
		}
		return reason.String()
	}
}
