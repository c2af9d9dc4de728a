package common

import "math"

const (
	// VelocityDamping is applied to every dynamic body once per tick.
	VelocityDamping = 0.97

	// MaxPitch keeps the orbit camera from flipping over the poles.
	MaxPitch = math.Pi / 2

	// ScrollZoomDivisor converts one wheel notch into orbit distance.
	ScrollZoomDivisor = 5.0

	// GroundNormalEpsilon is the smallest upward push that counts as
	// standing on something.
	GroundNormalEpsilon = 0.00001

	DefaultTPS = 60
)
