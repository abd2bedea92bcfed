// Package testutil provides shared test fixtures for the planner: an
// in-memory catalog database and a fluent builder for seeding it.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/semester-planner/internal/storage"
)

// TestDB is a migrated in-memory catalog database.
type TestDB struct {
	Storage *storage.SQLiteStorage
	Catalog Catalog
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database seeded with catalog.
// The database is closed when the test finishes.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.NewCatalogBuilder().
//		WithStandardCatalog().
//		Build())
func SetupTestDB(t *testing.T, catalog Catalog) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if _, err := store.ImportCatalog(ctx, catalog.Import("testutil")); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}

	return &TestDB{
		Storage: store,
		Catalog: catalog,
		t:       t,
	}
}

// MustMajorID returns the id assigned to the named major or fails the test.
func (db *TestDB) MustMajorID(name string) int {
	db.t.Helper()

	majors, err := db.Storage.FetchMajors(context.Background())
	if err != nil {
		db.t.Fatalf("failed to fetch majors: %v", err)
	}
	for _, m := range majors {
		if m.Name == name || m.DisplayName() == name {
			return m.ID
		}
	}
	db.t.Fatalf("major %q not found in test data", name)
	return 0
}
