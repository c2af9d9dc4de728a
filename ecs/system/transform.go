package system

import (
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TransformSystem links every Parent component to the transform of the
// named node. A child whose parent disappears is detached in place, keeping
// its world position.
type TransformSystem struct {
	names  nameCache
	warned map[ecs.Entity]bool
	logger zerolog.Logger
}

func NewTransformSystem() *TransformSystem {
	return &TransformSystem{
		names:  nameCache{},
		warned: map[ecs.Entity]bool{},
		logger: log.Logger.With().Str("component", "transform").Logger(),
	}
}

func (ts *TransformSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent, component.ParentComponent, func(e ecs.Entity, t *component.Transform, p *component.Parent) {
		parent, ok := ts.names.find(w, p.Name)
		var pt *component.Transform
		if ok && parent != e {
			pt, _ = ecs.Get(w, parent, component.TransformComponent)
		}
		if pt != nil && !pt.HasAncestor(t) {
			t.Parent = pt
			delete(ts.warned, e)
			return
		}
		if t.Parent != nil {
			t.Position = t.WorldPosition()
			t.Scale = t.WorldScale()
			t.Parent = nil
		}
		if !ts.warned[e] {
			ts.logger.Warn().Str("node", nameOf(w, e)).Str("parent", p.Name).Msg("parent not found, node detached")
			ts.warned[e] = true
		}
	})
}
