package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/locomotion"
)

// Player drives a character through a locomotion controller. The camera
// providing yaw is found by name.
type Player struct {
	Params     locomotion.Params
	CameraName string

	Controller *locomotion.Controller
}

var PlayerComponent = NewComponent[Player]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Spawn is the position a node returns to when it is reset. Rotation is
// always cleared on reset.
type Spawn struct {
	Position mgl64.Vec3
}

var SpawnComponent = NewComponent[Spawn]()
