package component

import "github.com/go-gl/mathgl/mgl64"

// DefaultGravity matches Earth gravity along -Y.
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

// RigidBody is a point mass integrated by the physics system. Acceleration
// accumulates until a collision clears it.
type RigidBody struct {
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
	Gravity      mgl64.Vec3
	Kinematic    bool

	// Set by the physics system each tick.
	Grounded bool
	Collided bool
}

var RigidBodyComponent = NewComponent[RigidBody]()

func NewRigidBody(kinematic bool) *RigidBody {
	return &RigidBody{Gravity: DefaultGravity, Kinematic: kinematic}
}

func (b *RigidBody) SetVelocity(v mgl64.Vec3) {
	b.Velocity = v
}

func (b *RigidBody) AddAcceleration(a mgl64.Vec3) {
	b.Acceleration = b.Acceleration.Add(a)
}

// Stop clears velocity and acceleration.
func (b *RigidBody) Stop() {
	b.Velocity = mgl64.Vec3{}
	b.Acceleration = mgl64.Vec3{}
}

type ShapeKind string

const (
	ShapeCube    ShapeKind = "cube"
	ShapeSphere  ShapeKind = "sphere"
	ShapeCapsule ShapeKind = "capsule"
)

func (k ShapeKind) Valid() bool {
	switch k {
	case ShapeCube, ShapeSphere, ShapeCapsule:
		return true
	}
	return false
}

// Collider is a primitive attached to a node. Offset and Size are in the
// node's local space; the physics system approximates every shape by its
// world-space axis-aligned box.
type Collider struct {
	Shape    ShapeKind
	Offset   mgl64.Vec3
	Rotation mgl64.Vec3
	Size     mgl64.Vec3
}

var ColliderComponent = NewComponent[Collider]()

// HalfExtents returns the half size of the shape's bounding box for the
// given world scale. Unit cubes and spheres span [-0.5, 0.5]; capsules are
// twice as tall as they are wide.
func (c *Collider) HalfExtents(scale mgl64.Vec3) mgl64.Vec3 {
	size := c.Size
	if size == (mgl64.Vec3{}) {
		size = mgl64.Vec3{1, 1, 1}
	}
	s := mgl64.Vec3{
		mgl64.Abs(size.X() * scale.X()),
		mgl64.Abs(size.Y() * scale.Y()),
		mgl64.Abs(size.Z() * scale.Z()),
	}
	switch c.Shape {
	case ShapeSphere:
		r := 0.5 * max(s.X(), s.Y(), s.Z())
		return mgl64.Vec3{r, r, r}
	case ShapeCapsule:
		return mgl64.Vec3{0.5 * s.X(), s.Y(), 0.5 * s.Z()}
	default:
		return s.Mul(0.5)
	}
}
