package planner

import (
	"slices"

	"github.com/Veraticus/semester-planner/internal/model"
)

// Completion is the completed-course input of the eligibility reducer. It is
// either unestablished (the student has not confirmed a checklist yet) or
// established with a possibly empty set of course codes.
type Completion struct {
	codes       Set[string]
	established bool
}

// Unestablished returns the completion state used before onboarding is
// confirmed. The reducer is bypassed while in this state.
func Unestablished() Completion {
	return Completion{}
}

// Established returns a confirmed completion state over the given codes.
func Established(codes Set[string]) Completion {
	return Completion{codes: codes, established: true}
}

// IsEstablished reports whether the completed set has been confirmed.
func (c Completion) IsEstablished() bool {
	return c.established
}

// Has reports whether code is marked completed.
func (c Completion) Has(code string) bool {
	return c.established && c.codes.Has(code)
}

// Codes returns the completed codes. It is empty when unestablished.
func (c Completion) Codes() Set[string] {
	return c.codes
}

// Reason explains why a course is or is not eligible.
type Reason int

const (
	// ReasonUnestablished means no completed set exists yet, so no gating applies.
	ReasonUnestablished Reason = iota
	// ReasonEligible means the course can be added to the plan.
	ReasonEligible
	// ReasonCompleted means the course code is already completed.
	ReasonCompleted
	// ReasonPlanned means the course is already in the plan.
	ReasonPlanned
	// ReasonMissingPrerequisites means at least one prerequisite is not completed.
	ReasonMissingPrerequisites
)

func (r Reason) String() string {
	switch r {
	case ReasonUnestablished:
		return "not gated"
	case ReasonEligible:
		return "eligible"
	case ReasonCompleted:
		return "already completed"
	case ReasonPlanned:
		return "already planned"
	case ReasonMissingPrerequisites:
		return "missing prerequisites"
	default:
		return "unknown"
	}
}

// Classify applies the eligibility rules to one course in order: completed,
// planned, no prerequisites, all prerequisites completed.
func Classify(c model.Course, completion Completion, plan Plan) Reason {
	if !completion.IsEstablished() {
		return ReasonUnestablished
	}
	if completion.Has(c.Code) {
		return ReasonCompleted
	}
	if plan.Contains(c.ID) {
		return ReasonPlanned
	}
	if !c.HasPrerequisites() {
		return ReasonEligible
	}
	for _, prereq := range c.Prerequisites {
		if !completion.Has(prereq) {
			return ReasonMissingPrerequisites
		}
	}
	return ReasonEligible
}

// Eligible narrows the filtered courses to those the student may add to the
// plan. Order is preserved. While completion is unestablished the filtered
// courses are returned unchanged.
func Eligible(filtered []model.Course, completion Completion, plan Plan) []model.Course {
	if !completion.IsEstablished() {
		return slices.Clone(filtered)
	}

	out := make([]model.Course, 0, len(filtered))
	for _, c := range filtered {
		if Classify(c, completion, plan) == ReasonEligible {
			out = append(out, c)
		}
	}
	return out
}

// MissingPrerequisites returns the prerequisite codes of c that are not
// completed, in declaration order.
func MissingPrerequisites(c model.Course, completion Completion) []string {
	if len(c.Prerequisites) == 0 {
		return nil
	}
	var missing []string
	for _, prereq := range c.Prerequisites {
		if !completion.Has(prereq) {
			missing = append(missing, prereq)
		}
	}
	return missing
}

// DanglingPrerequisites maps each course code to the prerequisite codes that
// match no course in the catalog. Such courses can only become eligible if
// the dangling code is itself marked completed.
func DanglingPrerequisites(catalog []model.Course) map[string][]string {
	codes := make(map[string]struct{}, len(catalog))
	for _, c := range catalog {
		codes[c.Code] = struct{}{}
	}

	dangling := make(map[string][]string)
	for _, c := range catalog {
		for _, prereq := range c.Prerequisites {
			if _, ok := codes[prereq]; !ok {
				dangling[c.Code] = append(dangling[c.Code], prereq)
			}
		}
	}
	return dangling
}
