package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial catalog schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS courses (
					id TEXT PRIMARY KEY,
					code TEXT UNIQUE NOT NULL,
					title TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					credits INTEGER NOT NULL DEFAULT 3,
					level INTEGER NOT NULL DEFAULT 0,
					difficulty TEXT NOT NULL,
					course_number INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE TABLE IF NOT EXISTS prerequisites (
					course_code TEXT NOT NULL,
					prerequisite_code TEXT NOT NULL,
					position INTEGER NOT NULL,
					PRIMARY KEY (course_code, prerequisite_code),
					FOREIGN KEY (course_code) REFERENCES courses(code) ON DELETE CASCADE
				)`,
				`CREATE TABLE IF NOT EXISTS majors (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					concentration TEXT NOT NULL DEFAULT '',
					UNIQUE (name, concentration)
				)`,
				`CREATE TABLE IF NOT EXISTS major_requirements (
					major_id INTEGER NOT NULL,
					course_code TEXT NOT NULL,
					requirement_type TEXT NOT NULL DEFAULT '',
					PRIMARY KEY (major_id, course_code),
					FOREIGN KEY (major_id) REFERENCES majors(id) ON DELETE CASCADE
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add catalog lookup indexes",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE INDEX IF NOT EXISTS idx_courses_number ON courses(course_number, code)`,
				`CREATE INDEX IF NOT EXISTS idx_courses_code_upper ON courses(UPPER(code))`,
				`CREATE INDEX IF NOT EXISTS idx_prerequisites_prereq ON prerequisites(prerequisite_code)`,
				`CREATE INDEX IF NOT EXISTS idx_major_requirements_course ON major_requirements(course_code)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Track catalog imports",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS catalog_imports (
					id TEXT PRIMARY KEY,
					source TEXT NOT NULL,
					courses INTEGER NOT NULL,
					majors INTEGER NOT NULL,
					imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
