// Package planner implements the course eligibility and filtering engine:
// the filter predicate, the eligibility reducer, plan mutation and the
// onboarding checklist, all owned by a single Session.
package planner

import "errors"

// Planner errors.
var (
	ErrInvalidTransition = errors.New("invalid onboarding transition")
	ErrChecklistLocked   = errors.New("checklist is confirmed; edit it before changing selections")
	ErrUnknownCourse     = errors.New("course not in catalog")
)
