package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// withTx executes fn within a transaction: begin, rollback on error or early
// return, commit on success. The connection returns to the pool on all exit
// paths.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertTodoLabels inserts one association row per distinct label id. The
// command's label ids are a set; duplicates are collapsed here rather than
// with engine-specific INSERT IGNORE forms.
func insertTodoLabels(ctx context.Context, tx *sql.Tx, todoID int, labelIDs []int) error {
	seen := make(map[int]struct{}, len(labelIDs))
	for _, labelID := range labelIDs {
		if _, ok := seen[labelID]; ok {
			continue
		}
		seen[labelID] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO todo_labels (todo_id, label_id) VALUES (?, ?)`,
			todoID, labelID,
		); err != nil {
			return err
		}
	}
	return nil
}
