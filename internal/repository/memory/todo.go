package memory

import (
	"context"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/repository"
)

// TodoRepo implements repository.TodoRepository over the shared Store.
type TodoRepo struct {
	store *Store
}

// Create inserts a new todo under the write lock and returns it hydrated.
func (r *TodoRepo) Create(ctx context.Context, cmd repository.CreateTodo) (*models.Todo, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTodoID++
	id := s.nextTodoID
	rec := todoRecord{
		text:     cmd.Text,
		labelIDs: dedupeIDs(cmd.LabelIDs),
	}
	s.todos[id] = rec

	return s.hydrate(id, rec), nil
}

func (r *TodoRepo) Find(ctx context.Context, id int) (*models.Todo, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.todos[id]
	if !ok {
		return nil, &repository.NotFoundError{ID: id}
	}
	return s.hydrate(id, rec), nil
}

// All returns every todo in descending id order, the same rule the relational
// backend applies, so the backends are interchangeable to callers.
func (r *TodoRepo) All(ctx context.Context) ([]*models.Todo, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*models.Todo, 0, len(s.todos))
	for _, id := range sortedIDsDesc(s.todos) {
		todos = append(todos, s.hydrate(id, s.todos[id]))
	}
	return todos, nil
}

// Update applies only the fields present in cmd. It fails with NotFound when
// the target id is absent; it never creates on missing.
func (r *TodoRepo) Update(ctx context.Context, id int, cmd repository.UpdateTodo) (*models.Todo, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.todos[id]
	if !ok {
		return nil, &repository.NotFoundError{ID: id}
	}

	if cmd.Text != nil {
		rec.text = *cmd.Text
	}
	if cmd.Completed != nil {
		rec.completed = *cmd.Completed
	}
	if cmd.LabelIDs != nil {
		rec.labelIDs = dedupeIDs(*cmd.LabelIDs)
	}
	s.todos[id] = rec

	return s.hydrate(id, rec), nil
}

// Delete removes the todo together with its association list; both live in
// the same record, so removal is atomic under the write lock.
func (r *TodoRepo) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return &repository.NotFoundError{ID: id}
	}
	delete(s.todos, id)
	return nil
}
