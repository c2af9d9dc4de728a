package system

import (
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
)

type RotatorSystem struct{}

func NewRotatorSystem() *RotatorSystem {
	return &RotatorSystem{}
}

func (r *RotatorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.TransformComponent, component.RotatorComponent, func(_ ecs.Entity, t *component.Transform, rot *component.Rotator) {
		axis := rot.Axis
		if rot.LocalUp {
			axis = t.Up().Mul(-1)
		}
		t.Rotate(axis.Mul(rot.Speed * dt))
	})
}
