package memory

import (
	"context"
	"sort"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/repository"
)

// LabelRepo implements repository.LabelRepository over the shared Store.
type LabelRepo struct {
	store *Store
}

// Create enforces name uniqueness by linear scan before insert, mirroring the
// relational backend's select-before-insert path.
func (r *LabelRepo) Create(ctx context.Context, cmd repository.CreateLabel) (*models.Label, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, label := range s.labels {
		if label.Name == cmd.Name {
			return nil, &repository.DuplicateError{ExistingID: label.ID}
		}
	}

	s.nextLabelID++
	label := models.Label{ID: s.nextLabelID, Name: cmd.Name}
	s.labels[label.ID] = label
	return &label, nil
}

func (r *LabelRepo) All(ctx context.Context) ([]*models.Label, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	labels := make([]*models.Label, 0, len(s.labels))
	for _, label := range s.labels {
		label := label
		labels = append(labels, &label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })
	return labels, nil
}

// Delete removes the label only. Todo records keep their association ids;
// hydration skips ids that no longer resolve.
func (r *LabelRepo) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.labels[id]; !ok {
		return &repository.NotFoundError{ID: id}
	}
	delete(s.labels, id)
	return nil
}
