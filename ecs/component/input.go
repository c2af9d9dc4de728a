package component

import "github.com/go-gl/mathgl/mgl64"

// Input stores per-frame input state for an entity.
type Input struct {
	// Movement is (strafe, jump, forward), each in [-1, 1].
	Movement        mgl64.Vec3
	Sneak           bool
	MouseDelta      mgl64.Vec2
	MouseScroll     float64
	MouseRightClick bool
}

var InputComponent = NewComponent[Input]()
