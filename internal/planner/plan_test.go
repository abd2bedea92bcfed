package planner

import (
	"testing"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPlan_AddIsIdempotent(t *testing.T) {
	c := testCourse("CS 141", "Program Design II", 100, 3, model.DifficultyEasy)

	once := Plan{}.Add(c)
	twice := once.Add(c)

	assert.Equal(t, once.Courses(), twice.Courses())
	assert.Equal(t, 1, twice.Len())
}

func TestPlan_AddAppendsAndKeepsReceiver(t *testing.T) {
	catalog := testCatalog()
	p := Plan{}.Add(catalog[2]).Add(catalog[0])

	next := p.Add(catalog[1])

	assert.Equal(t, []string{"CS 301", "CS 101"}, codes(p.Courses()))
	assert.Equal(t, []string{"CS 301", "CS 101", "CS 201"}, codes(next.Courses()))
}

func TestPlan_Remove(t *testing.T) {
	catalog := testCatalog()
	p := NewPlan(catalog[0], catalog[1], catalog[2])

	removed := p.Remove("cs201")
	assert.Equal(t, []string{"CS 101", "CS 301"}, codes(removed.Courses()))
	assert.True(t, p.Contains("cs201"), "receiver must not change")

	same := removed.Remove("nope")
	assert.Equal(t, codes(removed.Courses()), codes(same.Courses()))
}

func TestNewPlan_DropsDuplicates(t *testing.T) {
	catalog := testCatalog()
	p := NewPlan(catalog[0], catalog[0], catalog[1])

	assert.Equal(t, []string{"CS 101", "CS 201"}, codes(p.Courses()))
}

func TestPlan_TotalCredits(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, 0, Plan{}.TotalCredits())
	assert.Equal(t, 7, NewPlan(catalog[0], catalog[1]).TotalCredits())
	assert.Equal(t, 3, NewPlan(catalog[0], catalog[1]).Remove("cs201").TotalCredits())
}

func TestPlan_WorkloadBalance(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, Workload{}, Plan{}.WorkloadBalance())

	w := NewPlan(catalog...).WorkloadBalance()
	assert.Equal(t, Workload{Easy: 1, Moderate: 2, Challenging: 2}, w)
	assert.Equal(t, "2 challenging / 2 moderate / 1 easy", w.String())

	onlyEasy := NewPlan(catalog[0]).WorkloadBalance()
	assert.Equal(t, 0, onlyEasy.Moderate)
	assert.Equal(t, 0, onlyEasy.Challenging)
}

func TestPlan_CoursesIsACopy(t *testing.T) {
	catalog := testCatalog()
	p := NewPlan(catalog[0])

	got := p.Courses()
	got[0].Code = "changed"

	assert.Equal(t, "CS 101", p.Courses()[0].Code)
}
