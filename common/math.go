package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DirectionFromAngles returns the unit vector a camera with the given pitch
// and yaw looks along. Positive pitch looks down; yaw 0 looks along +Z.
func DirectionFromAngles(pitch, yaw float64) mgl64.Vec3 {
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	return mgl64.Vec3{cp * math.Sin(yaw), -sp, cp * math.Cos(yaw)}
}

// RotateYaw rotates v about +Y by yaw radians.
func RotateYaw(v mgl64.Vec3, yaw float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(yaw).Mul3x1(v)
}
