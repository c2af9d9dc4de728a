package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/common"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultMinLookAtDist = 0.5

// CameraSystem keeps every orbit camera LookAtDist away from its target.
// Rotation.X is pitch (positive looks down) and Rotation.Y is yaw; holding
// the right mouse button orbits and the wheel zooms.
type CameraSystem struct {
	names  nameCache
	warned map[ecs.Entity]bool
	logger zerolog.Logger
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{
		names:  nameCache{},
		warned: map[ecs.Entity]bool{},
		logger: log.Logger.With().Str("component", "camera").Logger(),
	}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.OrbitCameraComponent, component.TransformComponent, func(e ecs.Entity, cam *component.OrbitCamera, t *component.Transform) {
		if in, ok := ecs.Get(w, e, component.InputComponent); ok && in.MouseRightClick {
			Orbit(cam, t, in.MouseDelta, in.MouseScroll, dt)
		}

		target, ok := cs.names.find(w, cam.TargetName)
		var tt *component.Transform
		if ok {
			tt, ok = ecs.Get(w, target, component.TransformComponent)
		}
		if !ok {
			if !cs.warned[e] {
				cs.logger.Warn().Str("camera", nameOf(w, e)).Str("target", cam.TargetName).Msg("camera target not found")
				cs.warned[e] = true
			}
			return
		}
		delete(cs.warned, e)

		t.Position = OrbitPosition(tt.WorldPosition(), t.Rotation.X(), t.Rotation.Y(), cam.LookAtDist)
	})
}

// Orbit turns the camera by the mouse delta and zooms by the wheel.
func Orbit(cam *component.OrbitCamera, t *component.Transform, delta mgl64.Vec2, scroll, dt float64) {
	t.Rotate(mgl64.Vec3{delta.Y(), delta.X(), 0}.Mul(cam.Speed * dt))
	t.Rotation[0] = mgl64.Clamp(t.Rotation[0], -common.MaxPitch, common.MaxPitch)

	minDist := cam.MinDistance
	if minDist <= 0 {
		minDist = defaultMinLookAtDist
	}
	cam.LookAtDist = max(cam.LookAtDist-scroll/common.ScrollZoomDivisor, minDist)
}

// OrbitPosition places a camera dist behind target along its view direction.
func OrbitPosition(target mgl64.Vec3, pitch, yaw, dist float64) mgl64.Vec3 {
	return target.Sub(common.DirectionFromAngles(pitch, yaw).Mul(dist))
}
