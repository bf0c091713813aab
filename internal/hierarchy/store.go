package hierarchy

import (
	"fmt"

	"github.com/formflow/formflow/pkg/domain"
)

// Store holds the items of one hierarchy level both as an ordered sequence
// and as an id-keyed map. Indices are stable identifiers of sequence
// position, never re-compacted. It is a pure in-memory container, exclusively
// owned by its level's Manager.
type Store struct {
	items []*domain.Item
	byID  map[string]*domain.Item
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*domain.Item)}
}

// Add appends an item to the sequence and indexes it by id.
// The id must not already exist and the item's index must match its
// sequence position.
func (s *Store) Add(item *domain.Item) error {
	if _, exists := s.byID[item.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrItemExists, item.ID)
	}
	if item.Index != len(s.items) {
		return fmt.Errorf("item %s has index %d, expected %d", item.ID, item.Index, len(s.items))
	}
	s.items = append(s.items, item)
	s.byID[item.ID] = item
	return nil
}

// Update replaces the map entry and the sequence slot at item.Index.
func (s *Store) Update(item *domain.Item) error {
	if item.Index < 0 || item.Index >= len(s.items) {
		return fmt.Errorf("%w: index %d", domain.ErrItemNotFound, item.Index)
	}
	prev := s.items[item.Index]
	if prev.ID != item.ID {
		delete(s.byID, prev.ID)
	}
	s.items[item.Index] = item
	s.byID[item.ID] = item
	return nil
}

// Merge shallow-merges a partial update onto the stored item and updates it.
func (s *Store) Merge(id string, patch Patch) error {
	item, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	patch.apply(item)
	return s.Update(item)
}

// ByID returns the item with the given id.
func (s *Store) ByID(id string) (*domain.Item, bool) {
	item, ok := s.byID[id]
	return item, ok
}

// ByIndex returns the item at the given sequence position.
func (s *Store) ByIndex(index int) (*domain.Item, bool) {
	if index < 0 || index >= len(s.items) {
		return nil, false
	}
	return s.items[index], true
}

// ByNode returns the item owning the given underlying definition node.
func (s *Store) ByNode(node any) (*domain.Item, bool) {
	for _, item := range s.items {
		if item.Node == node {
			return item, true
		}
	}
	return nil, false
}

// Filter returns all items matching the predicate, in sequence order.
func (s *Store) Filter(pred func(*domain.Item) bool) []*domain.Item {
	var out []*domain.Item
	for _, item := range s.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the first item matching the predicate.
func (s *Store) Find(pred func(*domain.Item) bool) (*domain.Item, bool) {
	for _, item := range s.items {
		if pred(item) {
			return item, true
		}
	}
	return nil, false
}

// All returns the full sequence. Callers must not reorder it.
func (s *Store) All() []*domain.Item {
	return s.items
}

// Len is the number of stored items.
func (s *Store) Len() int {
	return len(s.items)
}

// Clear empties both structures.
func (s *Store) Clear() {
	s.items = nil
	s.byID = make(map[string]*domain.Item)
}

// Patch is a partial item update for Merge. Nil fields are left untouched.
type Patch struct {
	Active    *bool
	Current   *bool
	Visited   *bool
	Completed *bool
	Included  *bool
	Valid     *bool
	Progress  *int
	Value     *string
	Title     *string
}

func (p Patch) apply(item *domain.Item) {
	if p.Active != nil {
		item.Active = *p.Active
	}
	if p.Current != nil {
		item.Current = *p.Current
	}
	if p.Visited != nil {
		item.Visited = *p.Visited
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	if p.Included != nil {
		item.Included = *p.Included
	}
	if p.Valid != nil {
		item.Valid = *p.Valid
	}
	if p.Progress != nil {
		item.Progress = *p.Progress
	}
	if p.Value != nil {
		item.Value = *p.Value
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
}

// Bool is a convenience pointer helper for Patch.
func Bool(v bool) *bool { return &v }
