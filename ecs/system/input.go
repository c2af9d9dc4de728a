package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
)

// InputSnapshot is the device state sampled once per tick.
type InputSnapshot struct {
	Forwards  bool
	Backwards bool
	Right     bool
	Left      bool
	Jump      bool
	Sneak     bool

	MouseDelta      mgl64.Vec2
	MouseScroll     float64
	MouseRightClick bool
}

// Movement folds the direction keys into (strafe, jump, forward).
func (s InputSnapshot) Movement() mgl64.Vec3 {
	var m mgl64.Vec3
	if s.Right {
		m[0]++
	}
	if s.Left {
		m[0]--
	}
	if s.Jump {
		m[1] = 1
	}
	if s.Forwards {
		m[2]++
	}
	if s.Backwards {
		m[2]--
	}
	return m
}

// InputSource samples a device. The game binds it to ebiten; tests use a
// scripted source.
type InputSource interface {
	Poll() InputSnapshot
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	var snap InputSnapshot
	if i.source != nil {
		snap = i.source.Poll()
	}

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, in *component.Input) {
		in.Movement = snap.Movement()
		in.Sneak = snap.Sneak
		in.MouseDelta = snap.MouseDelta
		in.MouseScroll = snap.MouseScroll
		in.MouseRightClick = snap.MouseRightClick
	})
}
