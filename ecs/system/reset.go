package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
)

// ResetNode moves e back to its spawn position, clears its rotation and
// stops its body. A player's controller returns to its initial state.
func ResetNode(w *ecs.World, e ecs.Entity) bool {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return false
	}
	if spawn, ok := ecs.Get(w, e, component.SpawnComponent); ok {
		t.Position = spawn.Position
	}
	t.Rotation = mgl64.Vec3{}

	if body, ok := ecs.Get(w, e, component.RigidBodyComponent); ok {
		body.Stop()
	}
	if p, ok := ecs.Get(w, e, component.PlayerComponent); ok && p.Controller != nil {
		p.Controller.Reset()
	}
	return true
}
