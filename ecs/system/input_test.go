package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/stretchr/testify/assert"
)

func TestInputSnapshotMovement(t *testing.T) {
	cases := []struct {
		name string
		snap InputSnapshot
		want mgl64.Vec3
	}{
		{"none", InputSnapshot{}, mgl64.Vec3{}},
		{"forwards", InputSnapshot{Forwards: true}, mgl64.Vec3{0, 0, 1}},
		{"opposing_cancel", InputSnapshot{Forwards: true, Backwards: true, Left: true, Right: true}, mgl64.Vec3{}},
		{"back_left_jump", InputSnapshot{Backwards: true, Left: true, Jump: true}, mgl64.Vec3{-1, 1, -1}},
		{"sneak_is_not_movement", InputSnapshot{Sneak: true}, mgl64.Vec3{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.snap.Movement())
		})
	}
}

func TestInputSystemCopiesSnapshot(t *testing.T) {
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	b := ecs.CreateEntity(w)
	ia, ib := &component.Input{}, &component.Input{}
	add(t, w, a, component.InputComponent, ia)
	add(t, w, b, component.InputComponent, ib)

	src := &fixedInput{snap: InputSnapshot{Right: true, Sneak: true, MouseDelta: mgl64.Vec2{3, -1}, MouseScroll: 2, MouseRightClick: true}}
	ecs.NewScheduler(NewInputSystem(src)).Update(w, 0.1)

	assert.Equal(t, 1, src.polls)
	for _, in := range []*component.Input{ia, ib} {
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, in.Movement)
		assert.True(t, in.Sneak)
		assert.Equal(t, mgl64.Vec2{3, -1}, in.MouseDelta)
		assert.Equal(t, 2.0, in.MouseScroll)
		assert.True(t, in.MouseRightClick)
	}

	ecs.NewScheduler(NewInputSystem(nil)).Update(w, 0.1)
	assert.Equal(t, component.Input{}, *ia)
}
