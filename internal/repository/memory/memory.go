// Package memory provides a process-local implementation of the repository
// contract. One Store instance is shared by all request handlers for the
// process lifetime; its data is discarded when the process exits.
package memory

import (
	"sort"
	"sync"

	"github.com/thenoetrevino/lista/internal/models"
)

// todoRecord is the stored form of a todo. Labels are kept as an ordered id
// list and materialized against the label map at read time, mirroring how the
// relational backend derives them from the association table.
type todoRecord struct {
	text      string
	completed bool
	labelIDs  []int
}

// Store holds all in-memory state behind a single reader/writer lock: many
// concurrent readers may proceed, a writer excludes readers and other writers
// for the duration of its critical section.
//
// Ids are assigned from monotonic per-entity counters incremented under the
// write lock, so deleting entities never causes id reuse within the life of
// the Store.
type Store struct {
	mu          sync.RWMutex
	todos       map[int]todoRecord
	labels      map[int]models.Label
	nextTodoID  int
	nextLabelID int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		todos:  make(map[int]todoRecord),
		labels: make(map[int]models.Label),
	}
}

// Todos returns the todo capability set backed by this store.
func (s *Store) Todos() *TodoRepo { return &TodoRepo{store: s} }

// Labels returns the label capability set backed by this store.
func (s *Store) Labels() *LabelRepo { return &LabelRepo{store: s} }

// hydrate materializes a stored record into the aggregate view. Label ids
// whose label has been deleted are skipped, matching the relational backend
// where the join simply yields no row for a dangling association.
// Callers must hold at least the read lock.
func (s *Store) hydrate(id int, rec todoRecord) *models.Todo {
	labels := []models.Label{}
	for _, labelID := range rec.labelIDs {
		if label, ok := s.labels[labelID]; ok {
			labels = append(labels, label)
		}
	}
	return &models.Todo{
		ID:        id,
		Text:      rec.text,
		Completed: rec.completed,
		Labels:    labels,
	}
}

// dedupeIDs keeps the first occurrence of each id, preserving order. The
// command's label ids are a set; storing them deduplicated keeps the hydrated
// label list free of duplicates.
func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// sortedIDsDesc returns the keys of m in descending order.
func sortedIDsDesc[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	return ids
}
