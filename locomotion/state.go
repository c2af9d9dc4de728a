package locomotion

import "github.com/go-gl/mathgl/mgl64"

// State is the locomotion mode of a character.
type State int

const (
	Grounded State = iota
	InAir
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case InAir:
		return "in_air"
	default:
		return "unknown"
	}
}

const (
	DefaultGroundSpeed = 500.0
	DefaultAirSpeed    = 350.0
	DefaultJumpForce   = 25000.0
)

// Params tunes how fast a character moves in each state and how hard it
// jumps.
type Params struct {
	GroundSpeed float64
	AirSpeed    float64
	JumpForce   float64
}

func DefaultParams() Params {
	return Params{
		GroundSpeed: DefaultGroundSpeed,
		AirSpeed:    DefaultAirSpeed,
		JumpForce:   DefaultJumpForce,
	}
}

// speed returns the horizontal speed used while in state s.
func (p Params) speed(s State) float64 {
	if s == InAir {
		return p.AirSpeed
	}
	return p.GroundSpeed
}

// Input is one frame of movement intent: X strafes, Y triggers a jump when
// positive and Z moves forward.
type Input = mgl64.Vec3

// Command is what a single update asks the physics body to do.
type Command struct {
	// Velocity replaces the body velocity. Y is the body's own vertical
	// velocity, untouched.
	Velocity mgl64.Vec3
	// Impulse is added to the body acceleration when Jumped is set.
	Impulse mgl64.Vec3
	Jumped  bool
}
