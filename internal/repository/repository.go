// Package repository defines the storage contract for todos and labels.
// Two backends implement it identically: the in-memory store under
// repository/memory and the relational store under internal/database.
// Callers depend only on these interfaces, never on a concrete backend.
package repository

import (
	"context"

	"github.com/thenoetrevino/lista/internal/models"
)

// TodoRepository is the capability set for the Todo aggregate. Every read
// returns hydrated todos, labels included.
type TodoRepository interface {
	// Create assigns a new id, persists the todo with completed=false,
	// associates the given label ids, and returns the todo as it exists
	// after the write, not an echo of the input.
	Create(ctx context.Context, cmd CreateTodo) (*models.Todo, error)

	// Find returns the hydrated todo, or a *NotFoundError.
	Find(ctx context.Context, id int) (*models.Todo, error)

	// All returns every todo ordered by descending id, most recent first.
	All(ctx context.Context) ([]*models.Todo, error)

	// Update applies only the fields present in cmd. A non-nil LabelIDs
	// replaces the association set wholesale; nil leaves it untouched.
	// Returns the post-update hydrated todo, or a *NotFoundError.
	Update(ctx context.Context, id int, cmd UpdateTodo) (*models.Todo, error)

	// Delete removes the todo and all its label associations as one unit.
	Delete(ctx context.Context, id int) error
}

// LabelRepository is the capability set for labels.
type LabelRepository interface {
	// Create fails with a *DuplicateError carrying the existing label's id
	// when a label with the same name already exists.
	Create(ctx context.Context, cmd CreateLabel) (*models.Label, error)

	// All returns every label ordered by ascending id.
	All(ctx context.Context) ([]*models.Label, error)

	// Delete removes the label. Associations referencing it are left to
	// dangle and are tolerated by todo hydration.
	Delete(ctx context.Context, id int) error
}
