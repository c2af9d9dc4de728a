package ecs

import "github.com/milk9111/stadium/ecs/component"

// World owns entities, their components, the per-frame event queue and
// the simulation clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	clock    Clock
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new live entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether e still refers to a live entity.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func Entities(w *World) []Entity {
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Query returns the live entities that have every listed kind, ordered as
// they appear in the smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	var out []Entity
next:
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range sets {
			if !s.Has(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first live entity with every listed kind.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

// Clock returns the simulation clock.
func (w *World) Clock() *Clock {
	return &w.clock
}

// DeltaTime is shorthand for Clock().Delta.
func (w *World) DeltaTime() float64 {
	return w.clock.Delta
}
