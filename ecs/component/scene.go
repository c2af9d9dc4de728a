package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Model references a mesh and material by resource name.
type Model struct {
	Mesh      string
	Material  string
	Primitive ShapeKind
}

var ModelComponent = NewComponent[Model]()

type LightKind string

const (
	LightDirectional LightKind = "directional"
	LightPoint       LightKind = "point"
	LightSpot        LightKind = "spot"
)

// Light mirrors the usual Phong light parameters. Fields that do not apply
// to Kind are ignored.
type Light struct {
	Kind      LightKind
	Ambient   color.NRGBA
	Diffuse   color.NRGBA
	Specular  color.NRGBA
	Direction mgl64.Vec3

	Constant  float64
	Linear    float64
	Quadratic float64

	CutOff      float64
	OuterCutOff float64
}

var LightComponent = NewComponent[Light]()

// Rotator spins a node every tick. With LocalUp the axis is the negated
// local up vector of the node instead of Axis.
type Rotator struct {
	Axis    mgl64.Vec3
	Speed   float64
	LocalUp bool
}

var RotatorComponent = NewComponent[Rotator]()

// KillZone sends TargetName back to its initial placement when it enters
// the zone.
type KillZone struct {
	TargetName string
}

var KillZoneComponent = NewComponent[KillZone]()

// Script attaches tengo scripts to a node. Runtime state lives in the
// script system.
type Script struct {
	Paths []string
}

var ScriptComponent = NewComponent[Script]()
