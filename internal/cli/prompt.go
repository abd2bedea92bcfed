package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/charmbracelet/huh"
)

// ErrPromptAborted is returned when the user leaves a prompt with ctrl+c or esc.
var ErrPromptAborted = errors.New("prompt aborted")

// NewMajorForm builds a single-select form over majors. The chosen major id
// is written to selected.
func NewMajorForm(majors []model.Major, selected *int) *huh.Form {
	options := make([]huh.Option[int], len(majors))
	for i, m := range majors {
		options[i] = huh.NewOption(m.DisplayName(), m.ID)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select your major").
				Options(options...).
				Value(selected),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewChecklistForm builds the completed-course checklist. Codes already in
// checked start ticked; the final selection is written back to checked.
func NewChecklistForm(required []model.RequiredCourse, checked *[]string) *huh.Form {
	ticked := make(map[string]bool, len(*checked))
	for _, code := range *checked {
		ticked[code] = true
	}

	options := make([]huh.Option[string], len(required))
	for i, rc := range required {
		label := fmt.Sprintf("%-9s %s", rc.Code, rc.Title)
		if rc.RequirementType != "" {
			label += "  (" + rc.RequirementType + ")"
		}
		options[i] = huh.NewOption(label, rc.Code).Selected(ticked[rc.Code])
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which required courses have you completed?").
				Description("space to toggle, / to filter, enter to confirm").
				Options(options...).
				Filterable(true).
				Height(min(len(options)+2, 18)).
				Value(checked),
		),
	).WithTheme(huh.ThemeDracula())
}

// PromptMajor asks the user to pick one of majors.
func PromptMajor(ctx context.Context, majors []model.Major) (model.Major, error) {
	if len(majors) == 0 {
		return model.Major{}, fmt.Errorf("no majors in the catalog")
	}
	if len(majors) == 1 {
		return majors[0], nil
	}

	selected := majors[0].ID
	if err := runForm(ctx, NewMajorForm(majors, &selected)); err != nil {
		return model.Major{}, err
	}
	for _, m := range majors {
		if m.ID == selected {
			return m, nil
		}
	}
	return model.Major{}, fmt.Errorf("unknown major %d", selected)
}

// PromptCompleted shows the checklist and returns the ticked course codes.
func PromptCompleted(ctx context.Context, required []model.RequiredCourse, preselected []string) ([]string, error) {
	checked := append([]string(nil), preselected...)
	if len(required) == 0 {
		return checked, nil
	}
	if err := runForm(ctx, NewChecklistForm(required, &checked)); err != nil {
		return nil, err
	}
	return checked, nil
}

func runForm(ctx context.Context, form *huh.Form) error {
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrPromptAborted
		}
		return err
	}
	return nil
}
