package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/lista/internal/config"
)

// The association table carries no foreign keys on purpose: deleting a label
// leaves its rows dangling (reads tolerate them), and todo deletion removes
// its rows explicitly inside the same transaction.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS labels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS todo_labels (
		todo_id INTEGER NOT NULL,
		label_id INTEGER NOT NULL,
		PRIMARY KEY (todo_id, label_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todo_labels_todo ON todo_labels(todo_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id INT AUTO_INCREMENT PRIMARY KEY,
		text VARCHAR(100) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS labels (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS todo_labels (
		todo_id INT NOT NULL,
		label_id INT NOT NULL,
		PRIMARY KEY (todo_id, label_id),
		INDEX idx_todo_labels_todo (todo_id)
	)`,
}

// runMigrations creates the schema if it does not exist yet.
func runMigrations(ctx context.Context, db *sql.DB, driver string) error {
	schema := sqliteSchema
	if driver == config.DriverMySQL {
		schema = mysqlSchema
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
