package sheets

import (
	"github.com/Veraticus/semester-planner/internal/model"
)

// Tab names, in the order they appear in the spreadsheet.
const (
	TabPlan      = "Plan"
	TabEligible  = "Eligible"
	TabCompleted = "Completed"
)

// Tabs lists every tab the writer maintains.
var Tabs = []string{TabPlan, TabEligible, TabCompleted}

// courseHeader is the header row shared by the course tabs.
var courseHeader = []any{"Code", "Title", "Credits", "Level", "Difficulty", "Prerequisites"}

// CourseRow is one course line in the Plan or Eligible tab.
type CourseRow struct {
	Code        string
	Title       string
	Difficulty  string
	PrereqChain string
	Credits     int
	Level       int
}

func newCourseRow(c model.Course) CourseRow {
	return CourseRow{
		Code:        c.Code,
		Title:       c.Title,
		Credits:     c.Credits,
		Level:       c.Level,
		Difficulty:  string(c.Difficulty),
		PrereqChain: c.PrereqChain(),
	}
}

func (r CourseRow) values() []any {
	return []any{r.Code, r.Title, r.Credits, r.Level, r.Difficulty, r.PrereqChain}
}

// TabData holds the rows for every tab of one export.
type TabData struct {
	Tabs map[string][][]any
}
