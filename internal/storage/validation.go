// Package storage provides the SQLite catalog database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/semester-planner/internal/common"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidCourse   = errors.New("invalid course")
	ErrInvalidMajor    = errors.New("invalid major")
	ErrDuplicateCourse = errors.New("duplicate course code")

	// ErrNotFound is returned when a course or major does not exist.
	ErrNotFound = common.ErrNotFound
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCourses validates every course and rejects repeated codes.
func validateCourses(courses []model.Course) error {
	if courses == nil {
		return fmt.Errorf("%w: courses", ErrNilParameter)
	}

	seen := make(map[string]int, len(courses))
	for i := range courses {
		if err := validateCourse(&courses[i]); err != nil {
			return fmt.Errorf("course at index %d: %w", i, err)
		}
		if prev, ok := seen[courses[i].Code]; ok {
			return fmt.Errorf("%w: %s at index %d and %d", ErrDuplicateCourse, courses[i].Code, prev, i)
		}
		seen[courses[i].Code] = i
	}
	return nil
}

// validateCourse validates a single course.
func validateCourse(c *model.Course) error {
	if c == nil {
		return fmt.Errorf("%w: course", ErrNilParameter)
	}
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: missing code", ErrInvalidCourse)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: %s: missing title", ErrInvalidCourse, c.Code)
	}
	if c.Credits <= 0 {
		return fmt.Errorf("%w: %s: credits must be positive", ErrInvalidCourse, c.Code)
	}
	if c.Level < 0 {
		return fmt.Errorf("%w: %s: level cannot be negative", ErrInvalidCourse, c.Code)
	}
	if _, ok := model.ParseDifficulty(string(c.Difficulty)); !ok {
		return fmt.Errorf("%w: %s: unknown difficulty %q", ErrInvalidCourse, c.Code, c.Difficulty)
	}
	for _, prereq := range c.Prerequisites {
		if strings.TrimSpace(prereq) == "" {
			return fmt.Errorf("%w: %s: empty prerequisite code", ErrInvalidCourse, c.Code)
		}
		if prereq == c.Code {
			return fmt.Errorf("%w: %s: course lists itself as a prerequisite", ErrInvalidCourse, c.Code)
		}
	}
	return nil
}

// validateMajor validates a major.
func validateMajor(m *model.Major) error {
	if m == nil {
		return fmt.Errorf("%w: major", ErrNilParameter)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidMajor)
	}
	if m.ID < 0 {
		return fmt.Errorf("%w: negative id", ErrInvalidMajor)
	}
	return nil
}

// validateRequirements validates a major's requirement list.
func validateRequirements(reqs []service.Requirement) error {
	seen := make(map[string]struct{}, len(reqs))
	for i, r := range reqs {
		if strings.TrimSpace(r.CourseCode) == "" {
			return fmt.Errorf("requirement at index %d: %w: course code", i, ErrEmptyString)
		}
		if _, ok := seen[r.CourseCode]; ok {
			return fmt.Errorf("requirement at index %d: %w: %s", i, ErrDuplicateCourse, r.CourseCode)
		}
		seen[r.CourseCode] = struct{}{}
	}
	return nil
}
