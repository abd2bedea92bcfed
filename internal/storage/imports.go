package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/google/uuid"
)

// MajorImport is a major together with its requirement list.
type MajorImport struct {
	Requirements []service.Requirement
	Major        model.Major
}

// CatalogImport is a full catalog load: courses first, then majors.
type CatalogImport struct {
	// Progress, when set, is called after each course and major is written.
	Progress func(done, total int)
	Source   string
	Courses  []model.Course
	Majors   []MajorImport
}

// ImportRecord describes a completed import.
type ImportRecord struct {
	ImportedAt time.Time
	ID         string
	Source     string
	Courses    int
	Majors     int
}

// ImportCatalog writes a catalog in a single transaction and records it in
// the import history. Nothing is written if any record is invalid.
func (s *SQLiteStorage) ImportCatalog(ctx context.Context, in CatalogImport) (*ImportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(in.Source, "source"); err != nil {
		return nil, err
	}
	if err := validateCourses(in.Courses); err != nil {
		return nil, err
	}
	for i := range in.Majors {
		if err := validateMajor(&in.Majors[i].Major); err != nil {
			return nil, fmt.Errorf("major at index %d: %w", i, err)
		}
		if err := validateRequirements(in.Majors[i].Requirements); err != nil {
			return nil, fmt.Errorf("major %s: %w", in.Majors[i].Major.DisplayName(), err)
		}
	}

	total := len(in.Courses) + len(in.Majors)
	done := 0
	step := func() {
		done++
		if in.Progress != nil {
			in.Progress(done, total)
		}
	}

	record := &ImportRecord{
		ID:         uuid.NewString(),
		Source:     in.Source,
		Courses:    len(in.Courses),
		Majors:     len(in.Majors),
		ImportedAt: time.Now().UTC(),
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, c := range in.Courses {
			if err := s.saveCoursesTx(ctx, tx, []model.Course{c}); err != nil {
				return err
			}
			step()
		}
		for i := range in.Majors {
			m := &in.Majors[i]
			if err := s.saveMajorTx(ctx, tx, &m.Major); err != nil {
				return err
			}
			if err := s.setRequirementsTx(ctx, tx, m.Major.ID, m.Requirements); err != nil {
				return err
			}
			step()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_imports (id, source, courses, majors, imported_at)
			VALUES (?, ?, ?, ?, ?)
		`, record.ID, record.Source, record.Courses, record.Majors, record.ImportedAt)
		if err != nil {
			return fmt.Errorf("failed to record import: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// LatestImport returns the most recent import, or ErrNotFound.
func (s *SQLiteStorage) LatestImport(ctx context.Context) (*ImportRecord, error) {
	var r ImportRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, courses, majors, imported_at
		FROM catalog_imports
		ORDER BY imported_at DESC
		LIMIT 1
	`).Scan(&r.ID, &r.Source, &r.Courses, &r.Majors, &r.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest import: %w", err)
	}
	return &r, nil
}

// Backup copies the database to a timestamped file in dir and returns its
// path. In-memory databases cannot be backed up.
func (s *SQLiteStorage) Backup(ctx context.Context, dir string) (string, error) {
	if s.dbPath == ":memory:" {
		return "", fmt.Errorf("cannot back up an in-memory database")
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	dest, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf("catalog-%s.db", time.Now().Format("20060102-150405"))))
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(dest, `'";`) {
		return "", fmt.Errorf("invalid backup path %q", dest)
	}

	// #nosec G201 - dest is an absolute path screened for quoting characters
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", dest)); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	return dest, nil
}
