package graph

import "slices"

// IDSet is an insertion-ordered set of node ids.
type IDSet struct {
	seen  map[string]struct{}
	order []string
}

// NewIDSet returns a set holding ids in the given order.
func NewIDSet(ids ...string) *IDSet {
	s := &IDSet{seen: make(map[string]struct{})}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s *IDSet) Add(id string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Has reports whether id is in the set. A nil set is empty.
func (s *IDSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of ids.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Values returns the ids in insertion order.
func (s *IDSet) Values() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}
