package system

import (
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
)

// FindByName returns the first live entity whose Name matches.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if w == nil || name == "" {
		return 0, false
	}
	for _, e := range w.Query(component.NameComponent.Kind()) {
		if n, ok := ecs.Get(w, e, component.NameComponent); ok && n.Value == name {
			return e, true
		}
	}
	return 0, false
}

// nameCache remembers name lookups until the entity dies.
type nameCache map[string]ecs.Entity

func (c nameCache) find(w *ecs.World, name string) (ecs.Entity, bool) {
	if e, ok := c[name]; ok && ecs.IsAlive(w, e) {
		return e, true
	}
	delete(c, name)
	e, ok := FindByName(w, name)
	if ok {
		c[name] = e
	}
	return e, ok
}

func nameOf(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent); ok {
		return n.Value
	}
	return ""
}
