package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/Veraticus/semester-planner/internal/storage"
	"gopkg.in/yaml.v3"
)

// DefaultSource names the embedded catalog in import history.
const DefaultSource = "embedded:default_catalog.yaml"

//go:embed default_catalog.yaml
var defaultCatalogFS embed.FS

// ErrInvalidSeed is returned for seed files that cannot be turned into a catalog.
var ErrInvalidSeed = errors.New("invalid catalog seed")

// Seed is the on-disk YAML catalog format.
type Seed struct {
	Courses []SeedCourse `yaml:"courses"`
	Majors  []SeedMajor  `yaml:"majors"`
}

// SeedCourse is one course record. Credits may be a number or a catalog
// string such as "3-4 hours"; level and difficulty are derived when absent.
type SeedCourse struct {
	Code          string   `yaml:"code"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Difficulty    string   `yaml:"difficulty"`
	Credits       Credits  `yaml:"credits"`
	Prerequisites []string `yaml:"prerequisites"`
	Level         int      `yaml:"level"`
}

// SeedMajor is a major and its requirement groups.
type SeedMajor struct {
	Name          string             `yaml:"name"`
	Concentration string             `yaml:"concentration"`
	Requirements  []RequirementGroup `yaml:"requirements"`
}

// RequirementGroup lists the courses of one requirement type, e.g. "Core CS".
type RequirementGroup struct {
	Type    string   `yaml:"type"`
	Courses []string `yaml:"courses"`
}

// Credits accepts either an integer or a free-form credit string.
type Credits int

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Credits) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: credits must be a scalar", value.Line)
	}
	*c = Credits(model.ParseCredits(value.Value))
	return nil
}

// ParseSeed decodes a YAML seed. Unknown fields are rejected.
func ParseSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSeed)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return &seed, nil
}

// LoadSeedFile reads and parses a seed file from disk.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-supplied seed path
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(bytes.NewReader(data))
}

// DefaultSeed returns the catalog embedded in the binary.
func DefaultSeed() (*Seed, error) {
	data, err := defaultCatalogFS.ReadFile("default_catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return ParseSeed(bytes.NewReader(data))
}

// CatalogCourses converts the seed records into catalog courses, filling in the
// id, level, difficulty and credit defaults.
func (s *Seed) CatalogCourses() ([]model.Course, error) {
	courses := make([]model.Course, 0, len(s.Courses))
	for i, sc := range s.Courses {
		code := normalizeCode(sc.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: course at index %d has no code", ErrInvalidSeed, i)
		}

		c := model.Course{
			ID:            model.CourseID(code),
			Code:          code,
			Title:         strings.TrimSpace(sc.Title),
			Description:   strings.TrimSpace(sc.Description),
			Level:         sc.Level,
			Credits:       int(sc.Credits),
			Prerequisites: make([]string, 0, len(sc.Prerequisites)),
		}
		if c.Level == 0 {
			c.Level = levelFromNumber(c.Number())
		}
		if c.Credits <= 0 {
			c.Credits = model.DefaultCredits
		}
		if sc.Difficulty == "" {
			c.Difficulty = model.EstimateDifficulty(c.Level)
		} else {
			d, ok := model.ParseDifficulty(sc.Difficulty)
			if !ok {
				return nil, fmt.Errorf("%w: course %s has unknown difficulty %q", ErrInvalidSeed, code, sc.Difficulty)
			}
			c.Difficulty = d
		}
		for _, p := range sc.Prerequisites {
			if p = normalizeCode(p); p != "" {
				c.Prerequisites = append(c.Prerequisites, p)
			}
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// Import converts the seed into a storage import.
func (s *Seed) Import(source string) (storage.CatalogImport, error) {
	courses, err := s.CatalogCourses()
	if err != nil {
		return storage.CatalogImport{}, err
	}

	majors := make([]storage.MajorImport, 0, len(s.Majors))
	for _, sm := range s.Majors {
		mi := storage.MajorImport{
			Major: model.Major{
				Name:          strings.TrimSpace(sm.Name),
				Concentration: strings.TrimSpace(sm.Concentration),
			},
		}
		seen := make(map[string]bool)
		for _, group := range sm.Requirements {
			for _, code := range group.Courses {
				code = normalizeCode(code)
				if code == "" || seen[code] {
					continue
				}
				seen[code] = true
				mi.Requirements = append(mi.Requirements, service.Requirement{
					CourseCode:      code,
					RequirementType: strings.TrimSpace(group.Type),
				})
			}
		}
		majors = append(majors, mi)
	}

	return storage.CatalogImport{
		Source:  source,
		Courses: courses,
		Majors:  majors,
	}, nil
}

// normalizeCode upper-cases a code and collapses internal whitespace, so
// " cs  141" becomes "CS 141".
func normalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), " "))
}

// levelFromNumber maps a course number to its hundreds level: 141 → 100.
func levelFromNumber(n int) int {
	for n >= 1000 {
		n /= 10
	}
	return n / 100 * 100
}
