package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/repository"
)

// todoWithLabelsQuery drives every todo read. The LEFT OUTER JOINs produce
// one row per (todo, label) pair and exactly one row with null label columns
// for a todo that has no labels.
const todoWithLabelsQuery = `
	SELECT todos.id, todos.text, todos.completed, labels.id, labels.name
	FROM todos
	LEFT OUTER JOIN todo_labels tl ON todos.id = tl.todo_id
	LEFT OUTER JOIN labels ON labels.id = tl.label_id`

// TodoRepo implements repository.TodoRepository against the relational schema.
type TodoRepo struct {
	db *sql.DB
}

// NewTodoRepo wraps the given connection pool.
func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

// Create inserts the todo row and its association rows in one transaction,
// then re-reads through Find so the returned aggregate reflects the fold's
// view of post-write state rather than an echo of the payload.
func (r *TodoRepo) Create(ctx context.Context, cmd repository.CreateTodo) (*models.Todo, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO todos (text, completed) VALUES (?, ?)`,
			cmd.Text, false,
		)
		if err != nil {
			return err
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}
		return insertTodoLabels(ctx, tx, int(id), cmd.LabelIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return r.Find(ctx, int(id))
}

func (r *TodoRepo) Find(ctx context.Context, id int) (*models.Todo, error) {
	rows, err := r.queryTodoRows(ctx, todoWithLabelsQuery+` WHERE todos.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo %d: %w", id, err)
	}

	todos := foldTodoRows(rows)
	if len(todos) == 0 {
		return nil, &repository.NotFoundError{ID: id}
	}
	return todos[0], nil
}

func (r *TodoRepo) All(ctx context.Context) ([]*models.Todo, error) {
	rows, err := r.queryTodoRows(ctx, todoWithLabelsQuery+` ORDER BY todos.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return foldTodoRows(rows), nil
}

// Update applies the fields present in cmd on top of the current row. When
// LabelIDs is present the association set is rewritten wholesale
// (delete-all-then-insert) inside the same transaction as the base-row
// update; when absent the associations are untouched.
//
// The current row is read inside the transaction, so an update racing a
// delete of the same todo fails with NotFound instead of re-inserting
// association rows for a row that is gone.
func (r *TodoRepo) Update(ctx context.Context, id int, cmd repository.UpdateTodo) (*models.Todo, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var text string
		var completed bool
		err := tx.QueryRowContext(ctx,
			`SELECT text, completed FROM todos WHERE id = ?`, id,
		).Scan(&text, &completed)
		if errors.Is(err, sql.ErrNoRows) {
			return &repository.NotFoundError{ID: id}
		}
		if err != nil {
			return err
		}

		if cmd.Text != nil {
			text = *cmd.Text
		}
		if cmd.Completed != nil {
			completed = *cmd.Completed
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE todos SET text = ?, completed = ? WHERE id = ?`,
			text, completed, id,
		); err != nil {
			return err
		}

		if cmd.LabelIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM todo_labels WHERE todo_id = ?`, id,
		); err != nil {
			return err
		}
		return insertTodoLabels(ctx, tx, id, *cmd.LabelIDs)
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update todo %d: %w", id, err)
	}

	return r.Find(ctx, id)
}

// Delete removes the association rows and the todo row as one transaction;
// a partially applied delete is never observable.
func (r *TodoRepo) Delete(ctx context.Context, id int) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM todo_labels WHERE todo_id = ?`, id,
		); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &repository.NotFoundError{ID: id}
		}
		return nil
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}
	return nil
}

func (r *TodoRepo) queryTodoRows(ctx context.Context, query string, args ...any) ([]todoLabelRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folded []todoLabelRow
	for rows.Next() {
		var row todoLabelRow
		if err := rows.Scan(&row.id, &row.text, &row.completed, &row.labelID, &row.labelName); err != nil {
			return nil, err
		}
		folded = append(folded, row)
	}
	return folded, rows.Err()
}
