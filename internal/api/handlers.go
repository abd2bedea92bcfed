package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Veraticus/semester-planner/internal/common"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/planner"
	"github.com/gin-gonic/gin"
)

// courseJSON is the wire shape of a course.
type courseJSON struct {
	ID              string   `json:"id"`
	Code            string   `json:"code"`
	Title           string   `json:"title"`
	Difficulty      string   `json:"difficulty"`
	Description     string   `json:"description"`
	PrereqChain     string   `json:"prereqChain"`
	RequirementType string   `json:"requirementType,omitempty"`
	Prerequisites   []string `json:"prerequisites"`
	Credits         int      `json:"credits"`
	Level           int      `json:"level"`
}

func newCourseJSON(c model.Course) courseJSON {
	prereqs := c.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}
	return courseJSON{
		ID:            c.ID,
		Code:          c.Code,
		Title:         c.Title,
		Credits:       c.Credits,
		Level:         c.Level,
		Difficulty:    string(c.Difficulty),
		Description:   c.Description,
		Prerequisites: prereqs,
		PrereqChain:   c.PrereqChain(),
	}
}

func coursesJSON(courses []model.Course) []courseJSON {
	out := make([]courseJSON, len(courses))
	for i, c := range courses {
		out[i] = newCourseJSON(c)
	}
	return out
}

// eligibleRequest is the body of POST /api/courses/eligible.
type eligibleRequest struct {
	Completed    []string `json:"completed"`
	Planned      []string `json:"planned"`
	Search       string   `json:"search"`
	Difficulties []string `json:"difficulties"`
	Levels       []int    `json:"levels"`
	Credits      []int    `json:"credits"`
}

func (r eligibleRequest) filters() (planner.FilterState, error) {
	fs := planner.FilterState{Search: strings.TrimSpace(r.Search)}
	for _, l := range r.Levels {
		fs.Levels = fs.Levels.With(l)
	}
	for _, c := range r.Credits {
		fs.Credits = fs.Credits.With(c)
	}
	for _, name := range r.Difficulties {
		d, ok := model.ParseDifficulty(name)
		if !ok {
			return fs, errors.New("unknown difficulty " + strconv.Quote(name))
		}
		fs.Difficulties = fs.Difficulties.With(d)
	}
	return fs, nil
}

func (s *Server) healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) respondError(c *gin.Context, status int, msg string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		s.logger.Error(msg, "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) listMajors(c *gin.Context) {
	majors, err := s.catalog.FetchMajors(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to load majors", err)
		return
	}
	if majors == nil {
		majors = []model.Major{}
	}
	c.JSON(http.StatusOK, majors)
}

func (s *Server) majorRequirements(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "Invalid major id", err)
		return
	}

	ctx := c.Request.Context()
	major, err := s.catalog.GetMajor(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, "Major not found", err)
		return
	}
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to load major", err)
		return
	}

	required, err := s.catalog.FetchRequirements(ctx, id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to load requirements", err)
		return
	}

	out := make([]courseJSON, len(required))
	for i, rc := range required {
		out[i] = newCourseJSON(rc.Course)
		out[i].RequirementType = rc.RequirementType
	}
	c.JSON(http.StatusOK, gin.H{
		"major":           major,
		"requiredCourses": out,
	})
}

func (s *Server) listCourses(c *gin.Context) {
	courses, err := s.catalog.FetchCourses(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to load courses", err)
		return
	}
	c.JSON(http.StatusOK, coursesJSON(courses))
}

func (s *Server) getCourse(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	course, err := s.catalog.GetCourseByCode(c.Request.Context(), code)
	if errors.Is(err, common.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, "Course not found", err)
		return
	}
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to load course", err)
		return
	}
	c.JSON(http.StatusOK, newCourseJSON(*course))
}

// eligibleCourses runs the filter predicate and eligibility reducer over
// the catalog for an established completed set.
func (s *Server) eligibleCourses(c *gin.Context) {
	var req eligibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	fs, err := req.filters()
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	courses, err := s.catalog.FetchCourses(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to load courses", err)
		return
	}

	completed, _ := model.ResolveCodes(courses, req.Completed)

	byID := make(map[string]model.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}
	var plan planner.Plan
	for _, id := range req.Planned {
		if course, ok := byID[model.CourseID(id)]; ok {
			plan = plan.Add(course)
		}
	}

	completion := planner.Established(planner.NewSet(completed...))
	eligible := planner.Eligible(planner.Filter(courses, fs), completion, plan)
	c.JSON(http.StatusOK, coursesJSON(eligible))
}
