package session

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/ecs/entity"
	"github.com/milk9111/stadium/ecs/system"
	"github.com/milk9111/stadium/locomotion"
	"github.com/milk9111/stadium/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

type heldKeys struct {
	snap system.InputSnapshot
}

func (h *heldKeys) Poll() system.InputSnapshot {
	return h.snap
}

func loadExample(t *testing.T, input system.InputSource) *Session {
	t.Helper()
	s, err := Load("example.yaml", input, entity.Viewport{Width: 1280, Height: 720})
	require.NoError(t, err)
	return s
}

func playerParts(t *testing.T, s *Session) (*component.Transform, *component.RigidBody, *component.Player) {
	t.Helper()
	e, ok := s.Player()
	require.True(t, ok)
	tr, ok := ecs.Get(s.World, e, component.TransformComponent)
	require.True(t, ok)
	body, ok := ecs.Get(s.World, e, component.RigidBodyComponent)
	require.True(t, ok)
	p, ok := ecs.Get(s.World, e, component.PlayerComponent)
	require.True(t, ok)
	return tr, body, p
}

func TestPlayerSettlesOnPlatform(t *testing.T) {
	s := loadExample(t, nil)
	tr, body, p := playerParts(t, s)

	for i := 0; i < 120; i++ {
		s.Step(tick)
	}

	// Cube3's top face is at y = -0.5 and the capsule's bottom sits on the
	// node origin.
	assert.InDelta(t, -0.5, tr.Position.Y(), 1e-6)
	assert.InDelta(t, -2, tr.Position.X(), 1e-9)
	assert.True(t, body.Grounded)
	assert.Equal(t, locomotion.Grounded, p.Controller.State())
}

func TestJumpLeavesAndRegainsGround(t *testing.T) {
	input := &heldKeys{}
	s := loadExample(t, input)
	tr, body, p := playerParts(t, s)

	for i := 0; i < 120; i++ {
		s.Step(tick)
	}
	require.Equal(t, locomotion.Grounded, p.Controller.State())
	start := tr.Position.Y()

	input.snap.Jump = true
	s.Step(tick)
	input.snap.Jump = false
	assert.Equal(t, locomotion.InAir, p.Controller.State())

	peak := start
	landed := false
	for i := 0; i < 600 && !landed; i++ {
		s.Step(tick)
		peak = max(peak, tr.Position.Y())
		landed = p.Controller.State() == locomotion.Grounded
	}

	require.True(t, landed, "never landed, y=%.2f", tr.Position.Y())
	assert.Greater(t, peak, start+1)
	assert.InDelta(t, -0.5, tr.Position.Y(), 1e-6)
	assert.InDelta(t, -2, tr.Position.X(), 1e-9)
	assert.True(t, body.Grounded)
}

func TestCameraFollowsPlayer(t *testing.T) {
	s := loadExample(t, nil)
	for i := 0; i < 120; i++ {
		s.Step(tick)
	}

	cam, ok := s.Camera()
	require.True(t, ok)
	camT, _ := ecs.Get(s.World, cam, component.TransformComponent)
	playerT, _, _ := playerParts(t, s)

	dist := camT.Position.Sub(playerT.WorldPosition()).Len()
	assert.InDelta(t, 5, dist, 1e-6)
}

func TestWalkingMovesAlongCameraYaw(t *testing.T) {
	input := &heldKeys{}
	s := loadExample(t, input)
	tr, _, _ := playerParts(t, s)
	for i := 0; i < 60; i++ {
		s.Step(tick)
	}
	start := tr.Position

	// Camera yaw starts at zero, so forward is +Z.
	input.snap.Forwards = true
	for i := 0; i < 10; i++ {
		s.Step(tick)
	}
	assert.Greater(t, tr.Position.Z(), start.Z())
	assert.InDelta(t, start.X(), tr.Position.X(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, tr.Rotation)
}

func TestKillZoneSendsPlayerBackToSpawn(t *testing.T) {
	s := loadExample(t, nil)
	tr, _, p := playerParts(t, s)

	tr.Position = mgl64.Vec3{-40, 0, 0}
	tr.Rotation = mgl64.Vec3{0, 1, 0}
	reset := false
	for i := 0; i < 240 && !reset; i++ {
		s.Step(tick)
		reset = tr.Position.X() == -2
	}

	require.True(t, reset, "player never reached the kill zone")
	assert.Equal(t, mgl64.Vec3{}, tr.Rotation)
	assert.Equal(t, locomotion.Grounded, p.Controller.State())
}

func TestScriptsRunOnSceneNodes(t *testing.T) {
	s := loadExample(t, nil)
	box, ok := s.Index["Item Box"]
	require.True(t, ok)
	boxT, _ := ecs.Get(s.World, box, component.TransformComponent)
	before := boxT.Rotation

	for i := 0; i < 10; i++ {
		s.Step(tick)
	}
	assert.NotEqual(t, before, boxT.Rotation)

	before = boxT.Rotation
	s.ReloadScripts()
	s.Step(tick)
	assert.NotEqual(t, before, boxT.Rotation)
}

func TestSummary(t *testing.T) {
	s := loadExample(t, nil)
	sum := s.Summary()
	assert.Equal(t, len(s.Spec.Nodes), sum.Nodes)
	assert.Equal(t, 1, sum.KillZones)
	assert.Equal(t, 2, sum.Bodies)
	assert.Equal(t, 2, sum.Scripts)
	assert.Contains(t, sum.String(), "1 kill zones")
}

func TestLoadRejectsInvalidScene(t *testing.T) {
	spec := &scene.Spec{Nodes: []scene.NodeSpec{{Name: "A", Parent: "B"}}}
	_, err := New(spec, nil, entity.Viewport{})
	require.Error(t, err)

	_, err = Load("missing.yaml", nil, entity.Viewport{})
	require.Error(t, err)
}
