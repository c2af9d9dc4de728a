package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/locomotion"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnPlayer(t *testing.T, w *ecs.World, withBody bool) (ecs.Entity, *component.Player, *component.Transform, *component.RigidBody) {
	t.Helper()
	e, tr := spawnNode(t, w, "Player", mgl64.Vec3{})
	p := &component.Player{Params: locomotion.DefaultParams(), CameraName: "Camera"}
	p.Controller = locomotion.NewController(p.Params, nil, nil)
	p.Controller.SetLogger(zerolog.Nop())
	add(t, w, e, component.PlayerComponent, p)
	add(t, w, e, component.InputComponent, &component.Input{})
	var body *component.RigidBody
	if withBody {
		body = component.NewRigidBody(false)
		add(t, w, e, component.RigidBodyComponent, body)
	}
	return e, p, tr, body
}

func TestPlayerControllerMovesAlongCameraYaw(t *testing.T) {
	w := ecs.NewWorld()
	_, _, tr, body := spawnPlayer(t, w, true)
	_, camTr := spawnNode(t, w, "Camera", mgl64.Vec3{})
	camTr.Rotation = mgl64.Vec3{0.3, math.Pi / 2, 0}
	body.Velocity = mgl64.Vec3{0, -4, 0}

	src := &fixedInput{snap: InputSnapshot{Forwards: true}}
	ecs.NewScheduler(NewInputSystem(src), NewPlayerControllerSystem()).Update(w, 0.1)

	assertVecNear(t, mgl64.Vec3{50, -4, 0}, body.Velocity, 1e-9)
	assertVecNear(t, mgl64.Vec3{0, math.Pi / 2, 0}, tr.Rotation, 1e-9)
	assert.Equal(t, mgl64.Vec3{}, body.Acceleration)
}

func TestPlayerControllerJumpsOnlyWhenGrounded(t *testing.T) {
	w := ecs.NewWorld()
	_, p, _, body := spawnPlayer(t, w, true)
	spawnNode(t, w, "Camera", mgl64.Vec3{})

	src := &fixedInput{snap: InputSnapshot{Jump: true}}
	sched := ecs.NewScheduler(NewInputSystem(src), NewPlayerControllerSystem())
	sched.Update(w, 0.02)
	assertVecNear(t, mgl64.Vec3{0, 500, 0}, body.Acceleration, 1e-9)

	p.Controller.OnGroundContactLost()
	sched.Update(w, 0.02)
	assertVecNear(t, mgl64.Vec3{0, 500, 0}, body.Acceleration, 1e-9)
}

func TestPlayerControllerWithoutCollaborators(t *testing.T) {
	w := ecs.NewWorld()
	_, p, tr, _ := spawnPlayer(t, w, false)

	src := &fixedInput{snap: InputSnapshot{Forwards: true, Right: true}}
	sched := ecs.NewScheduler(NewInputSystem(src), NewPlayerControllerSystem())
	sched.Update(w, 0.1)
	assert.Equal(t, mgl64.Vec3{}, tr.Rotation)

	// A body added later is picked up on the next frame once the camera exists.
	body := component.NewRigidBody(false)
	e, _ := FindByName(w, "Player")
	add(t, w, e, component.RigidBodyComponent, body)
	spawnNode(t, w, "Camera", mgl64.Vec3{})
	sched.Update(w, 0.1)
	assert.InDelta(t, 50, body.Velocity.X(), 1e-9)
	assert.InDelta(t, 50, body.Velocity.Z(), 1e-9)
	assert.Equal(t, locomotion.Grounded, p.Controller.State())
}

func TestPlayerControllerCreatesController(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := spawnNode(t, w, "Player", mgl64.Vec3{})
	p := &component.Player{Params: locomotion.DefaultParams(), CameraName: "Camera"}
	add(t, w, e, component.PlayerComponent, p)
	add(t, w, e, component.InputComponent, &component.Input{})

	ecs.NewScheduler(NewPlayerControllerSystem()).Update(w, 0.1)
	require.NotNil(t, p.Controller)
	assert.Equal(t, locomotion.Grounded, p.Controller.State())
}
