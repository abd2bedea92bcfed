package planner

import (
	"fmt"
	"slices"

	"github.com/Veraticus/semester-planner/internal/model"
)

// Plan is the ordered, duplicate-free list of courses the student intends to
// take. Plans are values: Add and Remove return a new plan.
type Plan struct {
	courses []model.Course
}

// NewPlan builds a plan from courses, dropping repeated ids.
func NewPlan(courses ...model.Course) Plan {
	var p Plan
	for _, c := range courses {
		p = p.Add(c)
	}
	return p
}

// Add appends c unless a course with the same id is already planned.
func (p Plan) Add(c model.Course) Plan {
	if p.Contains(c.ID) {
		return p
	}
	next := make([]model.Course, len(p.courses), len(p.courses)+1)
	copy(next, p.courses)
	return Plan{courses: append(next, c)}
}

// Remove drops the course with the given id. Removing an absent id is a no-op.
func (p Plan) Remove(id string) Plan {
	idx := p.index(id)
	if idx < 0 {
		return p
	}
	next := make([]model.Course, 0, len(p.courses)-1)
	next = append(next, p.courses[:idx]...)
	next = append(next, p.courses[idx+1:]...)
	return Plan{courses: next}
}

// Contains reports whether a course with the given id is planned.
func (p Plan) Contains(id string) bool {
	return p.index(id) >= 0
}

// Courses returns the planned courses in insertion order.
func (p Plan) Courses() []model.Course {
	return slices.Clone(p.courses)
}

// Len returns the number of planned courses.
func (p Plan) Len() int {
	return len(p.courses)
}

// TotalCredits sums the credits of every planned course.
func (p Plan) TotalCredits() int {
	total := 0
	for _, c := range p.courses {
		total += c.Credits
	}
	return total
}

// Workload counts planned courses per difficulty.
type Workload struct {
	Easy        int
	Moderate    int
	Challenging int
}

func (w Workload) String() string {
	return fmt.Sprintf("%d challenging / %d moderate / %d easy", w.Challenging, w.Moderate, w.Easy)
}

// WorkloadBalance counts planned courses per difficulty. Every category is
// reported, with zero when absent.
func (p Plan) WorkloadBalance() Workload {
	var w Workload
	for _, c := range p.courses {
		switch c.Difficulty {
		case model.DifficultyEasy:
			w.Easy++
		case model.DifficultyModerate:
			w.Moderate++
		case model.DifficultyChallenging:
			w.Challenging++
		}
	}
	return w
}

func (p Plan) index(id string) int {
	return slices.IndexFunc(p.courses, func(c model.Course) bool { return c.ID == id })
}
