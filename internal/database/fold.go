package database

import (
	"database/sql"

	"github.com/thenoetrevino/lista/internal/models"
)

// todoLabelRow is one row of the driving LEFT OUTER JOIN query: the todo
// columns plus the label columns, which are null for a todo with no labels.
type todoLabelRow struct {
	id        int
	text      string
	completed bool
	labelID   sql.NullInt64
	labelName sql.NullString
}

// foldTodoRows collapses the flattened join rows back into aggregates, one
// Todo per distinct id with its full label list.
//
// Rows are consumed in the order received and aggregates come out in
// first-seen order, so the driving query's ORDER BY decides the result order.
// The accumulator is scanned linearly per row (O(n*k), k = distinct todos so
// far). Duplicate label ids within one fold are appended as-is: they would
// indicate a query bug and should be visible in the output, not merged away.
func foldTodoRows(rows []todoLabelRow) []*models.Todo {
	// Non-nil so an empty result serializes as [], same as the memory backend.
	result := []*models.Todo{}

outer:
	for _, row := range rows {
		for _, todo := range result {
			if todo.ID == row.id {
				if row.labelID.Valid {
					todo.Labels = append(todo.Labels, models.Label{
						ID:   int(row.labelID.Int64),
						Name: row.labelName.String,
					})
				}
				continue outer
			}
		}

		labels := []models.Label{}
		if row.labelID.Valid {
			labels = append(labels, models.Label{
				ID:   int(row.labelID.Int64),
				Name: row.labelName.String,
			})
		}
		result = append(result, &models.Todo{
			ID:        row.id,
			Text:      row.text,
			Completed: row.completed,
			Labels:    labels,
		})
	}

	return result
}
