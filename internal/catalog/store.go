package catalog

import (
	"fmt"
	"strings"
)

// Store is an immutable, ordered collection of records of one equipment domain.
// It is safe for concurrent readers once built.
type Store[T Record] struct {
	records []T
	byID    map[string]int
	byLabel map[string]int
	grouped Grouping[T]
}

// NewStore builds a store keeping the declared order. Empty ids, duplicate ids and
// duplicate manufacturer+model pairs are rejected.
func NewStore[T Record](records []T) (*Store[T], error) {
	s := &Store[T]{
		records: make([]T, len(records)),
		byID:    make(map[string]int, len(records)),
		byLabel: make(map[string]int, len(records)),
	}
	copy(s.records, records)

	for i, r := range s.records {
		id := r.RecordID()
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("catalog record at position %d has empty id", i)
		}
		if _, exists := s.byID[id]; exists {
			return nil, fmt.Errorf("duplicate catalog id %q", id)
		}
		s.byID[id] = i

		label := normalizeLabel(Label(r))
		if prev, exists := s.byLabel[label]; exists {
			return nil, fmt.Errorf("duplicate make and model %q (ids %q and %q)", Label(r), s.records[prev].RecordID(), id)
		}
		s.byLabel[label] = i
	}
	s.grouped = Group(s.records)
	return s, nil
}

// All returns a copy of every record in catalog order.
func (s *Store[T]) All() []T {
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store[T]) Len() int {
	return len(s.records)
}

// FindByID returns the record with the given id. An unknown id is a normal miss.
func (s *Store[T]) FindByID(id string) (T, bool) {
	var zero T
	i, ok := s.byID[id]
	if !ok {
		return zero, false
	}
	return s.records[i], true
}

// FindByLabel resolves a "make model" string. Case and repeated whitespace are ignored.
func (s *Store[T]) FindByLabel(label string) (T, bool) {
	var zero T
	i, ok := s.byLabel[normalizeLabel(label)]
	if !ok {
		return zero, false
	}
	return s.records[i], true
}

// Resolve accepts either representation of a selection: the id first, then the label.
func (s *Store[T]) Resolve(idOrLabel string) (T, bool) {
	if r, ok := s.FindByID(idOrLabel); ok {
		return r, true
	}
	return s.FindByLabel(idOrLabel)
}

// GroupedByManufacturer returns the manufacturer grouping of the whole catalog.
// The grouping is computed once when the store is built.
func (s *Store[T]) GroupedByManufacturer() Grouping[T] {
	return s.grouped
}
