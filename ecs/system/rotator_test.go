package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
)

func TestRotatorSystem(t *testing.T) {
	w := ecs.NewWorld()
	sky, skyTr := spawnNode(t, w, "Skybox", mgl64.Vec3{})
	add(t, w, sky, component.RotatorComponent, &component.Rotator{Axis: mgl64.Vec3{0, 1, 0}, Speed: 0.01})

	prop, propTr := spawnNode(t, w, "Prop", mgl64.Vec3{})
	add(t, w, prop, component.RotatorComponent, &component.Rotator{Speed: 0.1, LocalUp: true})

	tilted, tiltedTr := spawnNode(t, w, "Tilted", mgl64.Vec3{})
	tiltedTr.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}
	add(t, w, tilted, component.RotatorComponent, &component.Rotator{Speed: 1, LocalUp: true})

	ecs.NewScheduler(NewRotatorSystem()).Update(w, 2)

	assertVecNear(t, mgl64.Vec3{0, 0.02, 0}, skyTr.Rotation, 1e-12)
	assertVecNear(t, mgl64.Vec3{0, -0.2, 0}, propTr.Rotation, 1e-12)
	// Rolled a quarter turn, local up points along -X.
	assertVecNear(t, mgl64.Vec3{2, 0, math.Pi / 2}, tiltedTr.Rotation, 1e-9)
}
