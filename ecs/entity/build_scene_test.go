package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/locomotion"
	"github.com/milk9111/stadium/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExampleScene(t *testing.T) {
	spec, err := scene.LoadSpec("example.yaml")
	require.NoError(t, err)

	w := ecs.NewWorld()
	index, err := BuildScene(w, spec, Viewport{Width: 1280, Height: 720})
	require.NoError(t, err)
	assert.Len(t, ecs.Entities(w), len(spec.Nodes))

	player, ok := index["Player"]
	require.True(t, ok)
	p, ok := ecs.Get(w, player, component.PlayerComponent)
	require.True(t, ok)
	assert.Equal(t, "Camera", p.CameraName)
	assert.Equal(t, locomotion.DefaultParams(), p.Params)
	require.NotNil(t, p.Controller)
	assert.Equal(t, locomotion.Grounded, p.Controller.State())
	assert.True(t, ecs.Has(w, player, component.InputComponent))
	assert.True(t, ecs.Has(w, player, component.PlayerTagComponent))

	spawn, ok := ecs.Get(w, player, component.SpawnComponent)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{-2, 0, 0}, spawn.Position)

	body, ok := ecs.Get(w, player, component.RigidBodyComponent)
	require.True(t, ok)
	assert.False(t, body.Kinematic)

	kill, ok := index["KillZone"]
	require.True(t, ok)
	zoneBody, ok := ecs.Get(w, kill, component.RigidBodyComponent)
	require.True(t, ok)
	assert.True(t, zoneBody.Kinematic)
	zone, ok := ecs.Get(w, kill, component.KillZoneComponent)
	require.True(t, ok)
	assert.Equal(t, "Player", zone.TargetName)

	cam, ok := index["Camera"]
	require.True(t, ok)
	orbit, ok := ecs.Get(w, cam, component.OrbitCameraComponent)
	require.True(t, ok)
	assert.Equal(t, "Player", orbit.TargetName)
	assert.Equal(t, 5.0, orbit.LookAtDist)
	lens, ok := ecs.Get(w, cam, component.CameraLensComponent)
	require.True(t, ok)
	assert.Equal(t, 1280, lens.Width)
	assert.Equal(t, 80.0, lens.FovDeg)
}

func TestBuildSceneLinksParents(t *testing.T) {
	spec, err := scene.LoadSpec("example.yaml")
	require.NoError(t, err)

	w := ecs.NewWorld()
	index, err := BuildScene(w, spec, Viewport{})
	require.NoError(t, err)

	playerT, ok := ecs.Get(w, index["Player"], component.TransformComponent)
	require.True(t, ok)

	guns := 0
	ecs.ForEach2(w, component.NameComponent, component.ParentComponent, func(e ecs.Entity, n *component.Name, p *component.Parent) {
		if n.Value != "Gun" {
			return
		}
		guns++
		assert.Equal(t, "Player", p.Name)
		gt, ok := ecs.Get(w, e, component.TransformComponent)
		require.True(t, ok)
		assert.Same(t, playerT, gt.Parent)
	})
	assert.Equal(t, 2, guns)
}

func TestBuildSceneDefaults(t *testing.T) {
	spec := &scene.Spec{Nodes: []scene.NodeSpec{
		{
			Name:      "Hero",
			Collider:  &scene.ColliderSpec{Shape: "cube"},
			RigidBody: &scene.RigidBodySpec{},
			Player:    &scene.PlayerSpec{JumpForce: 10},
			Scripts:   []string{"rotate_object.tengo"},
		},
	}}

	w := ecs.NewWorld()
	index, err := BuildScene(w, spec, Viewport{})
	require.NoError(t, err)
	e := index["Hero"]

	tr, ok := ecs.Get(w, e, component.TransformComponent)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, tr.Scale)

	c, ok := ecs.Get(w, e, component.ColliderComponent)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, c.Size)

	body, ok := ecs.Get(w, e, component.RigidBodyComponent)
	require.True(t, ok)
	assert.Equal(t, component.DefaultGravity, body.Gravity)

	p, ok := ecs.Get(w, e, component.PlayerComponent)
	require.True(t, ok)
	assert.Equal(t, locomotion.DefaultGroundSpeed, p.Params.GroundSpeed)
	assert.Equal(t, 10.0, p.Params.JumpForce)

	s, ok := ecs.Get(w, e, component.ScriptComponent)
	require.True(t, ok)
	assert.Equal(t, []string{"rotate_object.tengo"}, s.Paths)
}

func TestBuildSceneFailureDestroysEntities(t *testing.T) {
	tests := []struct {
		name string
		spec *scene.Spec
	}{
		{
			name: "unknown parent",
			spec: &scene.Spec{Nodes: []scene.NodeSpec{
				{Name: "Root"},
				{Name: "Child", Parent: "Missing"},
			}},
		},
		{
			name: "unknown collider shape",
			spec: &scene.Spec{Nodes: []scene.NodeSpec{
				{Name: "Root"},
				{Name: "Blob", Collider: &scene.ColliderSpec{Shape: "torus"}},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			index, err := BuildScene(w, tc.spec, Viewport{})
			require.Error(t, err)
			assert.Nil(t, index)
			assert.Empty(t, ecs.Entities(w))
		})
	}

	_, err := BuildScene(ecs.NewWorld(), nil, Viewport{})
	require.Error(t, err)
}
