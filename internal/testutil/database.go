// Package testutil provides shared test helpers for the atendo project.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/storage"
)

// TestDB wraps an in-memory storage for tests.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database and registers cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedAttendance saves an attendance, failing the test on error.
func (db *TestDB) SeedAttendance(att *model.Attendance) *model.Attendance {
	db.t.Helper()
	if att.StartedAt.IsZero() {
		att.StartedAt = time.Now().UTC()
	}
	if att.Status == "" {
		att.Status = model.StatusInProgress
	}
	if err := db.Storage.SaveAttendance(context.Background(), att); err != nil {
		db.t.Fatalf("failed to seed attendance %s: %v", att.ID, err)
	}
	return att
}
