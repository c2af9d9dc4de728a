package ecs

// SparseSet stores one component kind keyed by entity slot. Values are kept
// densely packed for iteration; the owning Entity is stored alongside so a
// recycled slot never returns a stale component.
type SparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func (s *SparseSet) index(e Entity) (int, bool) {
	if s == nil {
		return 0, false
	}
	id := int(e.id())
	if id <= 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

// Has reports whether e has a value in the set.
func (s *SparseSet) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

// Get returns the value for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	idx, ok := s.index(e)
	if !ok {
		return nil
	}
	return s.values[idx]
}

// Set inserts or replaces the value for e. A value left behind by an older
// generation of the same slot is overwritten.
func (s *SparseSet) Set(e Entity, v any) {
	id := int(e.id())
	if id <= 0 {
		return
	}
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id() {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the dense entity list. Callers must not mutate it.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}
