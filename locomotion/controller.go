package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Body is the physics collaborator the controller drives.
type Body interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddAcceleration(a mgl64.Vec3)
}

// Camera supplies the yaw that orients movement input into world space.
type Camera interface {
	Yaw() float64
}

// Step computes the command for one frame without touching any
// collaborator. Horizontal input is scaled by the state's speed and dt,
// then rotated by yaw about the vertical axis. A jump is only produced
// while grounded.
func Step(state State, params Params, in Input, yaw, dt float64, velocity mgl64.Vec3) Command {
	speed := params.speed(state)
	local := mgl64.Vec3{in.X() * speed * dt, 0, in.Z() * speed * dt}
	world := common.RotateYaw(local, yaw)

	cmd := Command{Velocity: mgl64.Vec3{world.X(), velocity.Y(), world.Z()}}
	if state == Grounded && in.Y() > 0 {
		cmd.Impulse = RequestJump(params, dt)
		cmd.Jumped = true
	}
	return cmd
}

// RequestJump returns the acceleration impulse of a jump. It does not
// change state: leaving the ground is reported later by the physics body.
func RequestJump(params Params, dt float64) mgl64.Vec3 {
	return mgl64.Vec3{0, params.JumpForce * dt, 0}
}

// Controller owns the Grounded/InAir state of one character and applies
// Step results to its body every frame.
type Controller struct {
	Params Params

	body   Body
	camera Camera
	state  State
	logger zerolog.Logger

	warnedBody   bool
	warnedCamera bool
}

// NewController creates a grounded controller. body and camera may be nil,
// in which case Update is a no-op until they are provided.
func NewController(params Params, body Body, camera Camera) *Controller {
	return &Controller{
		Params: params,
		body:   body,
		camera: camera,
		state:  Grounded,
		logger: log.Logger.With().Str("component", "locomotion").Logger(),
	}
}

func (c *Controller) SetLogger(l zerolog.Logger) {
	c.logger = l
}

func (c *Controller) SetBody(b Body) {
	c.body = b
}

func (c *Controller) SetCamera(cam Camera) {
	c.camera = cam
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) SetState(s State) {
	c.state = s
}

// Reset returns the controller to its initial grounded state.
func (c *Controller) Reset() {
	c.state = Grounded
}

// Update reads camera yaw and body velocity, writes the new velocity and,
// when grounded with a positive jump input, the jump impulse. It returns
// false when a collaborator is missing.
func (c *Controller) Update(in Input, dt float64) (Command, bool) {
	if !c.ready() {
		return Command{}, false
	}

	cmd := Step(c.state, c.Params, in, c.camera.Yaw(), dt, c.body.Velocity())
	c.body.SetVelocity(cmd.Velocity)
	if cmd.Jumped {
		c.body.AddAcceleration(cmd.Impulse)
	}
	return cmd, true
}

// OnGroundContactGained is called when the body comes to rest on a surface.
func (c *Controller) OnGroundContactGained() {
	if c.state != Grounded {
		c.logger.Debug().Stringer("from", c.state).Msg("ground contact gained")
	}
	c.state = Grounded
}

// OnGroundContactLost is called when the body stops resting on a surface.
func (c *Controller) OnGroundContactLost() {
	if c.state != InAir {
		c.logger.Debug().Stringer("from", c.state).Msg("ground contact lost")
	}
	c.state = InAir
}

// ready reports whether both collaborators are bound, warning once per
// missing one. The camera is checked first so a missing camera does not
// also report the body.
func (c *Controller) ready() bool {
	if c.camera == nil {
		if !c.warnedCamera {
			c.logger.Warn().Msg("player was unable to find its camera")
			c.warnedCamera = true
		}
		return false
	}
	c.warnedCamera = false

	if c.body == nil {
		if !c.warnedBody {
			c.logger.Warn().Msg("no rigidbody found for player")
			c.warnedBody = true
		}
		return false
	}
	c.warnedBody = false
	return true
}
