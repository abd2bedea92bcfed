package sheets

import (
	"slices"

	"github.com/Veraticus/semester-planner/internal/service"
)

// BuildTabData lays out a plan report as rows for each tab.
func BuildTabData(report service.PlanReport) TabData {
	plan := make([][]any, 0, len(report.Planned)+6)
	plan = append(plan, courseHeader)
	for _, c := range report.Planned {
		plan = append(plan, newCourseRow(c).values())
	}
	plan = append(plan,
		[]any{},
		[]any{"Major", report.Major.DisplayName()},
		[]any{"Total Credits", report.TotalCredits},
		[]any{"Workload", report.Workload},
	)
	if !report.GeneratedAt.IsZero() {
		plan = append(plan, []any{"Generated", report.GeneratedAt.Format("2006-01-02 15:04")})
	}

	eligible := make([][]any, 0, len(report.Eligible)+1)
	eligible = append(eligible, courseHeader)
	for _, c := range report.Eligible {
		eligible = append(eligible, newCourseRow(c).values())
	}

	completedCodes := slices.Clone(report.Completed)
	slices.Sort(completedCodes)
	completed := make([][]any, 0, len(completedCodes)+1)
	completed = append(completed, []any{"Code"})
	for _, code := range completedCodes {
		completed = append(completed, []any{code})
	}

	return TabData{Tabs: map[string][][]any{
		TabPlan:      plan,
		TabEligible:  eligible,
		TabCompleted: completed,
	}}
}

// MissingTabs returns the managed tabs absent from existing, in tab order.
func MissingTabs(existing []string) []string {
	var missing []string
	for _, tab := range Tabs {
		if !slices.Contains(existing, tab) {
			missing = append(missing, tab)
		}
	}
	return missing
}
