package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder copies the events of each tick before the scheduler clears
// them.
type eventRecorder struct {
	events []ecs.CollisionEvent
}

func (r *eventRecorder) Update(w *ecs.World) {
	w.Events().Each(func(evt ecs.CollisionEvent) {
		r.events = append(r.events, evt)
	})
}

func (r *eventRecorder) kinds(e ecs.Entity) []ecs.CollisionEventKind {
	var out []ecs.CollisionEventKind
	for _, evt := range r.events {
		if evt.Entity == e {
			out = append(out, evt.Kind)
		}
	}
	return out
}

func (r *eventRecorder) reset() {
	r.events = nil
}

func add[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, kind, v))
}

func spawnNode(t *testing.T, w *ecs.World, name string, pos mgl64.Vec3) (ecs.Entity, *component.Transform) {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform()
	tr.Position = pos
	add(t, w, e, component.TransformComponent, tr)
	add(t, w, e, component.NameComponent, &component.Name{Value: name})
	return e, tr
}

func spawnFloor(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e, _ := spawnNode(t, w, "Floor", mgl64.Vec3{0, -0.5, 0})
	add(t, w, e, component.ColliderComponent, &component.Collider{Shape: component.ShapeCube, Size: mgl64.Vec3{20, 1, 20}})
	return e
}

func spawnBox(t *testing.T, w *ecs.World, name string, pos mgl64.Vec3, kinematic bool) (ecs.Entity, *component.Transform, *component.RigidBody) {
	t.Helper()
	e, tr := spawnNode(t, w, name, pos)
	body := component.NewRigidBody(kinematic)
	add(t, w, e, component.ColliderComponent, &component.Collider{Shape: component.ShapeCube})
	add(t, w, e, component.RigidBodyComponent, body)
	add(t, w, e, component.SpawnComponent, &component.Spawn{Position: pos})
	return e, tr, body
}

type fixedInput struct {
	snap  InputSnapshot
	polls int
}

func (f *fixedInput) Poll() InputSnapshot {
	f.polls++
	return f.snap
}

func mustTransform(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent)
	require.True(t, ok)
	return tr
}

func mustCollider(t *testing.T, w *ecs.World, e ecs.Entity) *component.Collider {
	t.Helper()
	c, ok := ecs.Get(w, e, component.ColliderComponent)
	require.True(t, ok)
	return c
}

// assertVecNear compares vectors component-wise with an absolute tolerance.
func assertVecNear(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, "got %v want %v", got, want)
}
