package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/locomotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitter []ecs.CollisionEvent

func (em emitter) Update(w *ecs.World) {
	for _, evt := range em {
		w.Events().Push(evt)
	}
}

type recordingListener struct {
	events []ecs.CollisionEvent
}

func (l *recordingListener) OnCollision(_ *ecs.World, evt ecs.CollisionEvent) {
	l.events = append(l.events, evt)
}

func TestContactGroundEventsDriveController(t *testing.T) {
	w := ecs.NewWorld()
	player, p, _, _ := spawnPlayer(t, w, true)

	ecs.NewScheduler(emitter{{Entity: player, Kind: ecs.GroundContactLost}}, NewContactSystem()).Update(w, 0.1)
	assert.Equal(t, locomotion.InAir, p.Controller.State())

	ecs.NewScheduler(emitter{{Entity: player, Kind: ecs.GroundContactGained}}, NewContactSystem()).Update(w, 0.1)
	assert.Equal(t, locomotion.Grounded, p.Controller.State())
}

func TestContactKillZoneResetsTarget(t *testing.T) {
	cases := []struct {
		name     string
		fromZone bool
	}{
		{"zone_event", true},
		{"player_event", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player, p, tr, body := spawnPlayer(t, w, true)
			add(t, w, player, component.SpawnComponent, &component.Spawn{Position: mgl64.Vec3{-2, 0, 0}})
			tr.Position = mgl64.Vec3{7, -4, 1}
			tr.Rotation = mgl64.Vec3{0, 1.5, 0}
			body.Velocity = mgl64.Vec3{3, -20, 1}
			body.Acceleration = mgl64.Vec3{0, -30, 0}
			p.Controller.OnGroundContactLost()

			zone, _ := spawnNode(t, w, "KillZone", mgl64.Vec3{0, -3.9, 0})
			add(t, w, zone, component.KillZoneComponent, &component.KillZone{TargetName: "Player"})

			evt := ecs.CollisionEvent{Entity: player, Other: zone, Kind: ecs.CollisionEnter}
			if c.fromZone {
				evt = ecs.CollisionEvent{Entity: zone, Other: player, Kind: ecs.CollisionEnter}
			}
			listener := &recordingListener{}
			ecs.NewScheduler(emitter{evt}, NewContactSystem(listener, nil)).Update(w, 0.1)

			assert.Equal(t, mgl64.Vec3{-2, 0, 0}, tr.Position)
			assert.Equal(t, mgl64.Vec3{}, tr.Rotation)
			assert.Equal(t, mgl64.Vec3{}, body.Velocity)
			assert.Equal(t, mgl64.Vec3{}, body.Acceleration)
			assert.Equal(t, locomotion.Grounded, p.Controller.State())
			require.Len(t, listener.events, 1)
		})
	}
}

func TestContactKillZoneIgnoresOtherNodes(t *testing.T) {
	w := ecs.NewWorld()
	box, tr, _ := spawnBox(t, w, "Crate", mgl64.Vec3{0, 1, 0}, false)
	tr.Position = mgl64.Vec3{5, 5, 5}
	zone, _ := spawnNode(t, w, "KillZone", mgl64.Vec3{})
	add(t, w, zone, component.KillZoneComponent, &component.KillZone{TargetName: "Player"})

	ecs.NewScheduler(emitter{{Entity: box, Other: zone, Kind: ecs.CollisionEnter}}, NewContactSystem()).Update(w, 0.1)
	assert.Equal(t, mgl64.Vec3{5, 5, 5}, tr.Position)
}
