package ecs

import "github.com/milk9111/stadium/ecs/component"

// Add stores value as e's component of the given kind, replacing any
// previous value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.entities.isAlive(e) && w.store(kind.ID(), false).Has(e)
}

// Get returns e's component of the given kind. The pointer is the stored
// value, so writes through it are visible to every system.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	return v, ok
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.Query(kind) {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
