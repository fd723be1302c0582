package database

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/lista/internal/config"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/repository"
)

// setupTestDB creates an in-memory database with the real schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// A :memory: database exists per connection; pin the pool to one.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := runMigrations(context.Background(), db, config.DriverSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// createTestLabel creates a label through the repository and returns it.
func createTestLabel(t *testing.T, labels *LabelRepo, name string) *models.Label {
	t.Helper()
	label, err := labels.Create(context.Background(), repository.CreateLabel{Name: name})
	if err != nil {
		t.Fatalf("Failed to create test label %q: %v", name, err)
	}
	return label
}

// countAssociations returns the number of todo_labels rows for a todo.
func countAssociations(t *testing.T, db *sql.DB, todoID int) int {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM todo_labels WHERE todo_id = ?", todoID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count associations: %v", err)
	}
	return count
}
