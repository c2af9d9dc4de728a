package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/locomotion"
)

// PlayerControllerSystem binds each player's locomotion controller to its
// rigid body and camera, turns the player to face the camera while moving
// and runs the controller for the frame.
type PlayerControllerSystem struct {
	cameras nameCache
}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{cameras: nameCache{}}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	entities := w.Query(
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent)
		input, _ := ecs.Get(w, e, component.InputComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)

		if player.Controller == nil {
			player.Controller = locomotion.NewController(player.Params, nil, nil)
		}
		c := player.Controller

		if body, ok := ecs.Get(w, e, component.RigidBodyComponent); ok {
			c.SetBody(bodyAdapter{body})
		} else {
			c.SetBody(nil)
		}

		var cam *component.Transform
		if ce, ok := p.cameras.find(w, player.CameraName); ok {
			cam, _ = ecs.Get(w, ce, component.TransformComponent)
		}
		if cam != nil {
			c.SetCamera(transformCamera{cam})
			if input.Movement.X() != 0 || input.Movement.Z() != 0 {
				// Same sign as the camera: both use +yaw about +Y, forward (sin y, 0, cos y).
				transform.Rotation = mgl64.Vec3{0, cam.Rotation.Y(), 0}
			}
		} else {
			c.SetCamera(nil)
		}

		c.Update(locomotion.Input(input.Movement), dt)
	}
}

type bodyAdapter struct {
	body *component.RigidBody
}

func (b bodyAdapter) Velocity() mgl64.Vec3 {
	return b.body.Velocity
}

func (b bodyAdapter) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocity(v)
}

func (b bodyAdapter) AddAcceleration(a mgl64.Vec3) {
	b.body.AddAcceleration(a)
}

type transformCamera struct {
	t *component.Transform
}

func (c transformCamera) Yaw() float64 {
	return c.t.Rotation.Y()
}
