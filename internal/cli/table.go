package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/semester-planner/internal/model"
)

// CourseTable configures WriteCourseTable.
type CourseTable struct {
	// Annotate, when set, adds a trailing column such as a missing
	// prerequisite list.
	Annotate       func(model.Course) string
	AnnotateHeader string
}

// WriteCourseTable writes courses as an aligned table.
func WriteCourseTable(w io.Writer, courses []model.Course, opts CourseTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"CODE", "TITLE", "CR", "LEVEL", "DIFFICULTY", "PREREQUISITES"}
	if opts.Annotate != nil {
		header = append(header, opts.AnnotateHeader)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, c := range courses {
		row := []string{
			c.Code,
			truncate(c.Title, 48),
			fmt.Sprint(c.Credits),
			fmt.Sprint(c.Level),
			string(c.Difficulty),
			c.PrereqChain(),
		}
		if opts.Annotate != nil {
			row = append(row, opts.Annotate(c))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
