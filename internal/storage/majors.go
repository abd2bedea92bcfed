package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
)

// SaveMajor inserts a major, or updates it when ID is set. A zero ID is
// replaced with the id SQLite assigns.
func (s *SQLiteStorage) SaveMajor(ctx context.Context, major *model.Major) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMajor(major); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.saveMajorTx(ctx, tx, major)
	})
}

func (s *SQLiteStorage) saveMajorTx(ctx context.Context, q queryable, major *model.Major) error {
	if major.ID == 0 {
		err := q.QueryRowContext(ctx, `
			SELECT id FROM majors WHERE name = ? AND concentration = ?
		`, major.Name, major.Concentration).Scan(&major.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up major: %w", err)
		}

		res, err := q.ExecContext(ctx, `
			INSERT INTO majors (name, concentration) VALUES (?, ?)
		`, major.Name, major.Concentration)
		if err != nil {
			return fmt.Errorf("failed to create major: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get major id: %w", err)
		}
		major.ID = int(id)
		return nil
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO majors (id, name, concentration) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			concentration = excluded.concentration
	`, major.ID, major.Name, major.Concentration)
	if err != nil {
		return fmt.Errorf("failed to save major %d: %w", major.ID, err)
	}
	return nil
}

// GetMajor returns the major with the given id.
func (s *SQLiteStorage) GetMajor(ctx context.Context, id int) (*model.Major, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var m model.Major
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, concentration FROM majors WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.Concentration)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("major %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get major: %w", err)
	}
	return &m, nil
}

// FetchMajors returns every major ordered by id.
func (s *SQLiteStorage) FetchMajors(ctx context.Context) ([]model.Major, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, concentration FROM majors ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query majors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	majors := []model.Major{}
	for rows.Next() {
		var m model.Major
		if err := rows.Scan(&m.ID, &m.Name, &m.Concentration); err != nil {
			return nil, fmt.Errorf("failed to scan major: %w", err)
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}

// SetRequirements replaces the required courses of a major.
func (s *SQLiteStorage) SetRequirements(ctx context.Context, majorID int, requirements []service.Requirement) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRequirements(requirements); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.setRequirementsTx(ctx, tx, majorID, requirements)
	})
}

func (s *SQLiteStorage) setRequirementsTx(ctx context.Context, q queryable, majorID int, requirements []service.Requirement) error {
	var exists int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM majors WHERE id = ?`, majorID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up major: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("major %d: %w", majorID, ErrNotFound)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM major_requirements WHERE major_id = ?`, majorID); err != nil {
		return fmt.Errorf("failed to clear requirements: %w", err)
	}
	for _, r := range requirements {
		_, err := q.ExecContext(ctx, `
			INSERT INTO major_requirements (major_id, course_code, requirement_type)
			VALUES (?, ?, ?)
		`, majorID, r.CourseCode, r.RequirementType)
		if err != nil {
			return fmt.Errorf("failed to save requirement %s: %w", r.CourseCode, err)
		}
	}
	return nil
}

// FetchRequirements returns the catalog courses required by a major,
// ordered by course number. Requirements naming a code that is not in the
// catalog are skipped.
func (s *SQLiteStorage) FetchRequirements(ctx context.Context, majorID int) ([]model.RequiredCourse, error) {
	if _, err := s.GetMajor(ctx, majorID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.code, c.title, c.description, c.credits, c.level, c.difficulty, r.requirement_type
		FROM major_requirements r
		JOIN courses c ON c.code = r.course_code
		WHERE r.major_id = ?
		ORDER BY c.course_number, c.code
	`, majorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		courses []model.Course
		types   []string
	)
	for rows.Next() {
		var (
			c          model.Course
			difficulty string
			reqType    string
		)
		if err := rows.Scan(&c.ID, &c.Code, &c.Title, &c.Description, &c.Credits, &c.Level, &difficulty, &reqType); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		if d, ok := model.ParseDifficulty(difficulty); ok {
			c.Difficulty = d
		} else {
			c.Difficulty = model.EstimateDifficulty(c.Level)
		}
		courses = append(courses, c)
		types = append(types, reqType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requirements: %w", err)
	}
	// Close before issuing the prerequisite query on the single connection.
	_ = rows.Close()

	if err := s.attachPrerequisites(ctx, courses); err != nil {
		return nil, err
	}

	required := make([]model.RequiredCourse, len(courses))
	for i, c := range courses {
		required[i] = model.RequiredCourse{Course: c, RequirementType: types[i]}
	}
	return required, nil
}
