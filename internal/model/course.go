// Package model defines the catalog records shared by every layer of the planner.
package model

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Difficulty is the workload tier of a course.
type Difficulty string

const (
	// DifficultyEasy marks introductory courses.
	DifficultyEasy Difficulty = "Easy"
	// DifficultyModerate marks intermediate courses.
	DifficultyModerate Difficulty = "Moderate"
	// DifficultyChallenging marks advanced courses.
	DifficultyChallenging Difficulty = "Challenging"
)

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyChallenging}

// DefaultCredits is used when a catalog record carries no usable credit count.
const DefaultCredits = 3

var firstNumber = regexp.MustCompile(`\d+`)

// Course is a single catalog entry. Courses are treated as immutable once loaded.
type Course struct {
	ID            string     `json:"id" yaml:"id"`
	Code          string     `json:"code" yaml:"code"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
	Prerequisites []string   `json:"prerequisites" yaml:"prerequisites"`
	Level         int        `json:"level" yaml:"level"`
	Credits       int        `json:"credits" yaml:"credits"`
}

// CourseID derives the stable identifier for a catalog code: lower case with
// all whitespace removed, so "CS 141" becomes "cs141".
func CourseID(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range strings.ToLower(code) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ResolveCodes maps user-typed course codes ("cs141", "CS 141") to the
// catalog's spelling. Codes that match no course are kept upper-cased and
// also returned in unknown. Blank and repeated codes are dropped.
func ResolveCodes(courses []Course, input []string) (codes, unknown []string) {
	byID := make(map[string]string, len(courses))
	for _, c := range courses {
		byID[CourseID(c.Code)] = c.Code
	}

	seen := make(map[string]bool, len(input))
	for _, raw := range input {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		code, ok := byID[CourseID(raw)]
		if !ok {
			code = strings.ToUpper(raw)
			unknown = append(unknown, code)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes, unknown
}

// HasPrerequisites reports whether the course declares any prerequisite.
func (c Course) HasPrerequisites() bool {
	return len(c.Prerequisites) > 0
}

// PrereqChain renders the prerequisites as a readable chain.
func (c Course) PrereqChain() string {
	if len(c.Prerequisites) == 0 {
		return "None"
	}
	return strings.Join(c.Prerequisites, " → ")
}

// Number returns the first run of digits in the course code, or 0.
func (c Course) Number() int {
	match := firstNumber.FindString(c.Code)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// EstimateDifficulty guesses a difficulty from the course level when the
// catalog does not provide one.
func EstimateDifficulty(level int) Difficulty {
	switch {
	case level <= 200:
		return DifficultyEasy
	case level <= 300:
		return DifficultyModerate
	default:
		return DifficultyChallenging
	}
}

// ParseDifficulty parses a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

// ParseCredits extracts the credit count from catalog strings such as
// "3 hours" or "3-4 hours". Missing or non-numeric values fall back to
// DefaultCredits.
func ParseCredits(s string) int {
	match := firstNumber.FindString(s)
	if match == "" {
		return DefaultCredits
	}
	n, err := strconv.Atoi(match)
	if err != nil || n <= 0 {
		return DefaultCredits
	}
	return n
}
