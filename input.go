package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stadium/config"
	"github.com/milk9111/stadium/ecs/system"
	"github.com/pkg/errors"
)

// keyboardMouse samples ebiten once per tick for the input system.
type keyboardMouse struct {
	forwards  ebiten.Key
	backwards ebiten.Key
	right     ebiten.Key
	left      ebiten.Key
	jump      ebiten.Key
	sneak     ebiten.Key

	sensitivity  float64
	lastX, lastY int
	primed       bool
}

func newKeyboardMouse(keys config.KeyBindings, sensitivity float64) (*keyboardMouse, error) {
	km := &keyboardMouse{sensitivity: sensitivity}
	bindings := []struct {
		name string
		dst  *ebiten.Key
	}{
		{keys.Forwards, &km.forwards},
		{keys.Backwards, &km.backwards},
		{keys.Right, &km.right},
		{keys.Left, &km.left},
		{keys.Jump, &km.jump},
		{keys.Sneak, &km.sneak},
	}
	for _, b := range bindings {
		k, err := parseKey(b.name)
		if err != nil {
			return nil, err
		}
		*b.dst = k
	}
	return km, nil
}

func parseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, errors.Wrapf(err, "key %q", name)
	}
	return k, nil
}

func knownKey(name string) bool {
	_, err := parseKey(name)
	return err == nil
}

func (km *keyboardMouse) Poll() system.InputSnapshot {
	x, y := ebiten.CursorPosition()
	var delta mgl64.Vec2
	if km.primed {
		delta = mgl64.Vec2{float64(x - km.lastX), float64(y - km.lastY)}.Mul(km.sensitivity)
	}
	km.lastX, km.lastY, km.primed = x, y, true

	_, wheel := ebiten.Wheel()
	return system.InputSnapshot{
		Forwards:        ebiten.IsKeyPressed(km.forwards),
		Backwards:       ebiten.IsKeyPressed(km.backwards),
		Right:           ebiten.IsKeyPressed(km.right),
		Left:            ebiten.IsKeyPressed(km.left),
		Jump:            ebiten.IsKeyPressed(km.jump),
		Sneak:           ebiten.IsKeyPressed(km.sneak),
		MouseDelta:      delta,
		MouseScroll:     wheel,
		MouseRightClick: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}
}
