// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/semester-planner/internal/model"
)

// CatalogProvider supplies the full course catalog.
type CatalogProvider interface {
	FetchCourses(ctx context.Context) ([]model.Course, error)
}

// RequirementsProvider supplies majors and the courses each one requires.
type RequirementsProvider interface {
	FetchMajors(ctx context.Context) ([]model.Major, error)
	FetchRequirements(ctx context.Context, majorID int) ([]model.RequiredCourse, error)
}

// Provider is everything a planning session reads.
type Provider interface {
	CatalogProvider
	RequirementsProvider
}

// Storage defines the contract for the catalog database.
type Storage interface {
	Provider

	// Course operations
	SaveCourses(ctx context.Context, courses []model.Course) error
	GetCourseByCode(ctx context.Context, code string) (*model.Course, error)

	// Major operations
	SaveMajor(ctx context.Context, major *model.Major) error
	GetMajor(ctx context.Context, id int) (*model.Major, error)
	SetRequirements(ctx context.Context, majorID int, requirements []Requirement) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Requirement links a course code to a major's requirement group.
type Requirement struct {
	CourseCode      string
	RequirementType string
}

// PlanReport is a finished plan ready for export.
type PlanReport struct {
	GeneratedAt  time.Time
	Major        model.Major
	Workload     string
	Completed    []string
	Planned      []model.Course
	Eligible     []model.Course
	TotalCredits int
}

// PlanWriter publishes a plan report to an external destination.
type PlanWriter interface {
	WritePlan(ctx context.Context, report PlanReport) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
