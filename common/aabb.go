package common

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned box stored as center and half extents.
type AABB struct {
	Center mgl64.Vec3
	Half   mgl64.Vec3
}

func (b AABB) Min() mgl64.Vec3 {
	return b.Center.Sub(b.Half)
}

func (b AABB) Max() mgl64.Vec3 {
	return b.Center.Add(b.Half)
}

// Overlaps reports strict overlap; touching faces do not count.
func (b AABB) Overlaps(o AABB) bool {
	for i := 0; i < 3; i++ {
		if mgl64.Abs(b.Center[i]-o.Center[i]) >= b.Half[i]+o.Half[i] {
			return false
		}
	}
	return true
}

// Penetration returns the smallest translation that moves b out of o, and
// false when they do not overlap. Ties prefer the Y axis so resting
// contacts resolve vertically.
func (b AABB) Penetration(o AABB) (mgl64.Vec3, bool) {
	if !b.Overlaps(o) {
		return mgl64.Vec3{}, false
	}
	best := -1
	bestDepth := 0.0
	for _, i := range [3]int{1, 0, 2} {
		depth := b.Half[i] + o.Half[i] - mgl64.Abs(b.Center[i]-o.Center[i])
		if best < 0 || depth < bestDepth {
			best = i
			bestDepth = depth
		}
	}
	var push mgl64.Vec3
	if b.Center[best] >= o.Center[best] {
		push[best] = bestDepth
	} else {
		push[best] = -bestDepth
	}
	return push, true
}
