package testutil

import (
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/Veraticus/semester-planner/internal/storage"
)

// Major names used by the standard catalog.
const (
	MajorSoftwareEngineering = "Computer Science – Software Engineering"
	MajorDataScience         = "Data Science"
)

// Catalog is a set of courses and majors to seed a test database with.
type Catalog struct {
	Courses []model.Course
	Majors  []storage.MajorImport
}

// Import converts the catalog into a storage import.
func (c Catalog) Import(source string) storage.CatalogImport {
	return storage.CatalogImport{
		Source:  source,
		Courses: c.Courses,
		Majors:  c.Majors,
	}
}

// CatalogBuilder assembles a Catalog fluently.
type CatalogBuilder struct {
	catalog Catalog
}

// NewCatalogBuilder starts an empty catalog.
func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{}
}

// WithCourse adds a course. The id, difficulty and credits are derived the
// way catalog seeds derive them when left unset.
func (b *CatalogBuilder) WithCourse(code, title string, level int, prereqs ...string) *CatalogBuilder {
	b.catalog.Courses = append(b.catalog.Courses, model.Course{
		ID:            model.CourseID(code),
		Code:          code,
		Title:         title,
		Description:   title + ".",
		Credits:       model.DefaultCredits,
		Level:         level,
		Difficulty:    model.EstimateDifficulty(level),
		Prerequisites: prereqs,
	})
	return b
}

// WithMajor adds a major requiring the given course codes as "core".
func (b *CatalogBuilder) WithMajor(name, concentration string, codes ...string) *CatalogBuilder {
	reqs := make([]service.Requirement, len(codes))
	for i, code := range codes {
		reqs[i] = service.Requirement{CourseCode: code, RequirementType: "core"}
	}
	b.catalog.Majors = append(b.catalog.Majors, storage.MajorImport{
		Major:        model.Major{Name: name, Concentration: concentration},
		Requirements: reqs,
	})
	return b
}

// WithStandardCatalog adds a small prerequisite chain and two majors.
func (b *CatalogBuilder) WithStandardCatalog() *CatalogBuilder {
	return b.
		WithCourse("CS 111", "Program Design I", 100).
		WithCourse("CS 141", "Program Design II", 100, "CS 111").
		WithCourse("MATH 180", "Calculus I", 100).
		WithCourse("CS 211", "Programming Practicum", 200, "CS 141").
		WithCourse("CS 251", "Data Structures", 200, "CS 211").
		WithCourse("CS 301", "Languages and Automata", 300, "CS 251", "MATH 180").
		WithCourse("CS 401", "Computer Algorithms I", 400, "CS 251", "CS 301").
		WithMajor("Computer Science", "Software Engineering", "CS 111", "CS 141", "CS 211", "CS 251", "CS 401").
		WithMajor("Data Science", "", "CS 111", "MATH 180")
}

// Build returns the assembled catalog.
func (b *CatalogBuilder) Build() Catalog {
	return b.catalog
}
