package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places a node in its parent's space. Rotation holds euler
// angles in radians (pitch about X, yaw about Y, roll about Z).
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3

	// Parent is the transform this one is expressed in, nil for scene roots.
	Parent *Transform
}

var TransformComponent = NewComponent[Transform]()

func NewTransform() *Transform {
	return &Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Rotate adds delta to the euler angles.
func (t *Transform) Rotate(delta mgl64.Vec3) {
	t.Rotation = t.Rotation.Add(delta)
}

func (t *Transform) Move(delta mgl64.Vec3) {
	t.Position = t.Position.Add(delta)
}

// RotationMatrix applies yaw, then pitch, then roll.
func (t *Transform) RotationMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(t.Rotation.Y()).
		Mul4(mgl64.HomogRotate3DX(t.Rotation.X())).
		Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))
}

func (t *Transform) LocalMatrix() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.RotationMatrix()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// WorldMatrix composes the local matrix with every ancestor.
func (t *Transform) WorldMatrix() mgl64.Mat4 {
	m := t.LocalMatrix()
	for p := t.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (t *Transform) WorldPosition() mgl64.Vec3 {
	if t.Parent == nil {
		return t.Position
	}
	return t.WorldMatrix().Col(3).Vec3()
}

// WorldScale multiplies the scale of every ancestor. Rotations are ignored.
func (t *Transform) WorldScale() mgl64.Vec3 {
	s := t.Scale
	for p := t.Parent; p != nil; p = p.Parent {
		s = mgl64.Vec3{s.X() * p.Scale.X(), s.Y() * p.Scale.Y(), s.Z() * p.Scale.Z()}
	}
	return s
}

// Up is the local +Y axis in parent space.
func (t *Transform) Up() mgl64.Vec3 {
	return t.RotationMatrix().Mul4x1(mgl64.Vec4{0, 1, 0, 0}).Vec3()
}

// Name is the scene graph name of a node. Names need not be unique; Find
// returns the first match.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Parent names the node whose transform this node's transform is
// expressed in.
type Parent struct {
	Name string
}

var ParentComponent = NewComponent[Parent]()

// HasAncestor reports whether a is t or one of its ancestors.
func (t *Transform) HasAncestor(a *Transform) bool {
	for p := t; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}
