package tui

import "github.com/Veraticus/semester-planner/internal/model"

// Data loading messages.
type catalogLoadedMsg struct {
	err     error
	courses []model.Course
	majors  []model.Major
}

type requirementsLoadedMsg struct {
	err     error
	courses []model.RequiredCourse
	majorID int
}
