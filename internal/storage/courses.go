package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/semester-planner/internal/model"
)

const courseColumns = `id, code, title, description, credits, level, difficulty`

// SaveCourses inserts or updates courses by code. A course's prerequisite
// list is replaced wholesale.
func (s *SQLiteStorage) SaveCourses(ctx context.Context, courses []model.Course) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCourses(courses); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.saveCoursesTx(ctx, tx, courses)
	})
}

func (s *SQLiteStorage) saveCoursesTx(ctx context.Context, q queryable, courses []model.Course) error {
	for _, c := range courses {
		id := c.ID
		if id == "" {
			id = model.CourseID(c.Code)
		}

		_, err := q.ExecContext(ctx, `
			INSERT INTO courses (id, code, title, description, credits, level, difficulty, course_number)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(code) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				credits = excluded.credits,
				level = excluded.level,
				difficulty = excluded.difficulty,
				course_number = excluded.course_number
		`, id, c.Code, c.Title, c.Description, c.Credits, c.Level, string(c.Difficulty), c.Number())
		if err != nil {
			return fmt.Errorf("failed to save course %s: %w", c.Code, err)
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM prerequisites WHERE course_code = ?`, c.Code); err != nil {
			return fmt.Errorf("failed to clear prerequisites for %s: %w", c.Code, err)
		}
		for pos, prereq := range c.Prerequisites {
			_, err := q.ExecContext(ctx, `
				INSERT OR IGNORE INTO prerequisites (course_code, prerequisite_code, position)
				VALUES (?, ?, ?)
			`, c.Code, prereq, pos)
			if err != nil {
				return fmt.Errorf("failed to save prerequisite %s for %s: %w", prereq, c.Code, err)
			}
		}
	}
	return nil
}

// FetchCourses returns the whole catalog ordered by course number.
func (s *SQLiteStorage) FetchCourses(ctx context.Context) ([]model.Course, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	courses, err := s.queryCourses(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		ORDER BY course_number, code
	`)
	if err != nil {
		return nil, err
	}
	if err := s.attachPrerequisites(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourseByCode looks a course up by code, ignoring case and surrounding
// whitespace.
func (s *SQLiteStorage) GetCourseByCode(ctx context.Context, code string) (*model.Course, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(code, "code"); err != nil {
		return nil, err
	}

	courses, err := s.queryCourses(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE UPPER(code) = ?
	`, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("course %s: %w", code, ErrNotFound)
	}
	if err := s.attachPrerequisites(ctx, courses); err != nil {
		return nil, err
	}
	return &courses[0], nil
}

// CountCourses returns the number of catalog courses.
func (s *SQLiteStorage) CountCourses(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return n, nil
}

func (s *SQLiteStorage) queryCourses(ctx context.Context, query string, args ...any) ([]model.Course, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(row scanner) (model.Course, error) {
	var (
		c          model.Course
		difficulty string
	)
	err := row.Scan(&c.ID, &c.Code, &c.Title, &c.Description, &c.Credits, &c.Level, &difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("failed to scan course: %w", err)
	}

	d, ok := model.ParseDifficulty(difficulty)
	if !ok {
		d = model.EstimateDifficulty(c.Level)
	}
	c.Difficulty = d
	return c, nil
}

// attachPrerequisites fills Prerequisites for each course in declaration
// order. Courses without prerequisites get an empty, non-nil slice.
func (s *SQLiteStorage) attachPrerequisites(ctx context.Context, courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}

	index := make(map[string]int, len(courses))
	for i := range courses {
		index[courses[i].Code] = i
		courses[i].Prerequisites = []string{}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT course_code, prerequisite_code
		FROM prerequisites
		ORDER BY course_code, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query prerequisites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var code, prereq string
		if err := rows.Scan(&code, &prereq); err != nil {
			return fmt.Errorf("failed to scan prerequisite: %w", err)
		}
		if i, ok := index[code]; ok {
			courses[i].Prerequisites = append(courses[i].Prerequisites, prereq)
		}
	}
	return rows.Err()
}
