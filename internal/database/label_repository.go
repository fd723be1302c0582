package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/repository"
)

// LabelRepo implements repository.LabelRepository against the labels table.
type LabelRepo struct {
	db *sql.DB
}

// NewLabelRepo wraps the given connection pool.
func NewLabelRepo(db *sql.DB) *LabelRepo {
	return &LabelRepo{db: db}
}

// Create inserts the label and lets the UNIQUE constraint on labels.name
// arbitrate duplicates: when the insert fails and a label with that name
// exists, the failure is a DuplicateError carrying the holder's id. A
// check-then-insert would race under concurrent creates of the same name.
func (r *LabelRepo) Create(ctx context.Context, cmd repository.CreateLabel) (*models.Label, error) {
	result, err := r.db.ExecContext(ctx, `INSERT INTO labels (name) VALUES (?)`, cmd.Name)
	if err != nil {
		if existingID, ok := r.findIDByName(ctx, cmd.Name); ok {
			return nil, &repository.DuplicateError{ExistingID: existingID}
		}
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return &models.Label{ID: int(id), Name: cmd.Name}, nil
}

// findIDByName reports the id of the label holding name, if any.
func (r *LabelRepo) findIDByName(ctx context.Context, name string) (int, bool) {
	var id int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM labels WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (r *LabelRepo) All(ctx context.Context) ([]*models.Label, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM labels ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty result serializes as [], same as the memory backend.
	labels := []*models.Label{}
	for rows.Next() {
		label := &models.Label{}
		if err := rows.Scan(&label.ID, &label.Name); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Delete removes the label row only. Association rows referencing it are left
// in place; todo reads join against labels and simply stop seeing them.
func (r *LabelRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete label %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete label %d: %w", id, err)
	}
	if affected == 0 {
		return &repository.NotFoundError{ID: id}
	}
	return nil
}
