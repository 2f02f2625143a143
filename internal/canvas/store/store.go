// Package store holds the canonical, ordered item collection of one board.
// Slice order is z-order: later items are drawn on top.
package store

import (
	"errors"

	"socketBoard/internal/models/whiteboard"
)

var (
	ErrDuplicateItem = errors.New("store: item id already exists")
	ErrItemNotFound  = errors.New("store: item not found")
	ErrEmptyID       = errors.New("store: item id is empty")
)

type Store struct {
	items []whiteboard.Item
	index map[string]int
}

func New(items ...whiteboard.Item) *Store {
	s := &Store{}
	s.Restore(items)
	return s
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.items))
	for i, it := range s.items {
		s.index[it.ID] = i
	}
}

// Add appends a new item on top of the stack.
func (s *Store) Add(item whiteboard.Item) error {
	if item.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.index[item.ID]; ok {
		return ErrDuplicateItem
	}
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, item.Clone())
	return nil
}

// Update applies patch to the item and returns the new record.
func (s *Store) Update(id string, patch whiteboard.Patch) (whiteboard.Item, error) {
	i, ok := s.index[id]
	if !ok {
		return whiteboard.Item{}, ErrItemNotFound
	}
	s.items[i] = patch.Apply(s.items[i])
	return s.items[i].Clone(), nil
}

// Replace stores item wholesale, inserting it on top when absent.
// Remote updates go through here: the last record applied wins.
func (s *Store) Replace(item whiteboard.Item) error {
	if item.ID == "" {
		return ErrEmptyID
	}
	if i, ok := s.index[item.ID]; ok {
		s.items[i] = item.Clone()
		return nil
	}
	return s.Add(item)
}

func (s *Store) Delete(id string) error {
	i, ok := s.index[id]
	if !ok {
		return ErrItemNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.reindex()
	return nil
}

func (s *Store) Get(id string) (whiteboard.Item, bool) {
	i, ok := s.index[id]
	if !ok {
		return whiteboard.Item{}, false
	}
	return s.items[i].Clone(), true
}

func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a deep copy of every item in z-order.
func (s *Store) Items() []whiteboard.Item {
	return s.Snapshot()
}

// Filter returns copies of the items matching keep, in z-order.
func (s *Store) Filter(keep func(whiteboard.Item) bool) []whiteboard.Item {
	var out []whiteboard.Item
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Snapshot returns a deep copy suitable for history.
func (s *Store) Snapshot() []whiteboard.Item {
	out := make([]whiteboard.Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

// Restore replaces the whole collection with a deep copy of items.
// Later duplicates of an id win.
func (s *Store) Restore(items []whiteboard.Item) {
	s.items = make([]whiteboard.Item, 0, len(items))
	s.index = make(map[string]int, len(items))
	for _, it := range items {
		if i, ok := s.index[it.ID]; ok {
			s.items[i] = it.Clone()
			continue
		}
		s.index[it.ID] = len(s.items)
		s.items = append(s.items, it.Clone())
	}
}

// BringToFront moves the item to the top of the z-order.
func (s *Store) BringToFront(id string) error {
	i, ok := s.index[id]
	if !ok {
		return ErrItemNotFound
	}
	it := s.items[i]
	s.items = append(append(s.items[:i], s.items[i+1:]...), it)
	s.reindex()
	return nil
}

// SendToBack moves the item to the bottom of the z-order.
func (s *Store) SendToBack(id string) error {
	i, ok := s.index[id]
	if !ok {
		return ErrItemNotFound
	}
	it := s.items[i]
	rest := append(s.items[:i:i], s.items[i+1:]...)
	s.items = append([]whiteboard.Item{it}, rest...)
	s.reindex()
	return nil
}

// Order returns the item ids bottom to top.
func (s *Store) Order() []string {
	ids := make([]string, len(s.items))
	for i, it := range s.items {
		ids[i] = it.ID
	}
	return ids
}

// Reorder stacks the listed items bottom to top in the given order. Unknown
// ids are skipped; items missing from ids stay on top in their current
// order.
func (s *Store) Reorder(ids []string) {
	out := make([]whiteboard.Item, 0, len(s.items))
	placed := make(map[string]bool, len(ids))
	for _, id := range ids {
		i, ok := s.index[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, s.items[i])
	}
	for _, it := range s.items {
		if !placed[it.ID] {
			out = append(out, it)
		}
	}
	s.items = out
	s.reindex()
}
