package system

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stadium/common"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
)

// PhysicsSystem integrates rigid bodies and resolves them against every
// collider in the world. Collider footprints on the XZ plane are mirrored
// into a static cp.Space that serves as the broadphase; the narrow phase is
// an exact box overlap in 3D.
type PhysicsSystem struct {
	space   *cp.Space
	shapes  map[ecs.Entity]*cp.Shape
	damping float64

	contacts map[ecs.Entity]map[ecs.Entity]bool
	grounded map[ecs.Entity]bool
}

type colliderInfo struct {
	entity    ecs.Entity
	transform *component.Transform
	collider  *component.Collider
	body      *component.RigidBody
	box       common.AABB
}

// maxSubSteps caps the work spent on a single body per tick.
const maxSubSteps = 256

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    cp.NewSpace(),
		shapes:   make(map[ecs.Entity]*cp.Shape),
		damping:  common.VelocityDamping,
		contacts: make(map[ecs.Entity]map[ecs.Entity]bool),
		grounded: make(map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	colliders := ps.collectColliders(w)
	ps.syncShapes(colliders)

	byEntity := make(map[ecs.Entity]*colliderInfo, len(colliders))
	for _, info := range colliders {
		byEntity[info.entity] = info
	}

	dt := w.DeltaTime()
	seen := make(map[ecs.Entity]bool)
	for _, info := range colliders {
		if info.body == nil {
			continue
		}
		seen[info.entity] = true
		if info.body.Kinematic {
			ps.detect(w, info, byEntity)
			continue
		}
		ps.step(w, info, byEntity, dt)
		ps.placeShape(info)
	}

	// Bodies that lost their collider or were destroyed leave every contact.
	for e, others := range ps.contacts {
		if seen[e] {
			continue
		}
		for other := range others {
			w.Events().Push(ecs.CollisionEvent{Entity: e, Other: other, Kind: ecs.CollisionExit})
		}
		delete(ps.contacts, e)
		delete(ps.grounded, e)
	}
}

func (ps *PhysicsSystem) collectColliders(w *ecs.World) []*colliderInfo {
	var out []*colliderInfo
	ecs.ForEach2(w, component.TransformComponent, component.ColliderComponent, func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		info := &colliderInfo{entity: e, transform: t, collider: c, box: WorldBox(t, c)}
		if b, ok := ecs.Get(w, e, component.RigidBodyComponent); ok {
			info.body = b
		}
		out = append(out, info)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].entity < out[j].entity })
	return out
}

// syncShapes mirrors every footprint into the space and drops the shapes
// of colliders that are gone.
func (ps *PhysicsSystem) syncShapes(colliders []*colliderInfo) {
	live := make(map[ecs.Entity]bool, len(colliders))
	for _, info := range colliders {
		live[info.entity] = true
		ps.placeShape(info)
	}
	for e, shape := range ps.shapes {
		if live[e] {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.shapes, e)
	}
}

// placeShape replaces the footprint of one collider with its current box.
// Shapes cannot be moved in place, so the old one is removed.
func (ps *PhysicsSystem) placeShape(info *colliderInfo) {
	if old, ok := ps.shapes[info.entity]; ok {
		ps.space.RemoveShape(old)
	}
	shape := cp.NewBox2(ps.space.StaticBody, footprint(info.box), 0)
	shape.UserData = info.entity
	ps.space.AddShape(shape)
	ps.shapes[info.entity] = shape
}

// candidates returns the entities whose footprint intersects box, in
// entity order.
func (ps *PhysicsSystem) candidates(self ecs.Entity, box common.AABB) []ecs.Entity {
	var out []ecs.Entity
	ps.space.BBQuery(footprint(box), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		e, ok := shape.UserData.(ecs.Entity)
		if !ok || e == self {
			return
		}
		out = append(out, e)
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// detect records the overlaps of a kinematic body. Kinematic bodies are
// never integrated nor pushed.
func (ps *PhysicsSystem) detect(w *ecs.World, info *colliderInfo, byEntity map[ecs.Entity]*colliderInfo) {
	now := make(map[ecs.Entity]bool)
	for _, other := range ps.candidates(info.entity, info.box) {
		if target, ok := byEntity[other]; ok && info.box.Overlaps(target.box) {
			now[other] = true
		}
	}
	info.body.Collided = len(now) > 0
	info.body.Grounded = false
	ps.emitContacts(w, info.entity, now)
}

// step integrates one dynamic body and resolves it against the colliders
// along its path. The move is split into sub-steps no longer than the
// thinnest half extent involved, so a fast body cannot skip a collider.
// Gravity accumulates into acceleration until a contact clears it.
func (ps *PhysicsSystem) step(w *ecs.World, info *colliderInfo, byEntity map[ecs.Entity]*colliderInfo, dt float64) {
	body := info.body
	if dt > 0 {
		body.Acceleration = body.Acceleration.Add(body.Gravity)
		body.Velocity = body.Velocity.Add(body.Acceleration.Mul(dt))
	}

	move := body.Velocity.Mul(dt)
	others := ps.candidates(info.entity, sweep(info.box, move))
	n := subSteps(move, info.box, others, byEntity)

	now := make(map[ecs.Entity]bool)
	grounded := false
	for i := 0; i < n; i++ {
		if dt > 0 {
			info.transform.Move(body.Velocity.Mul(dt / float64(n)))
			info.box = WorldBox(info.transform, info.collider)
		}
		for _, other := range others {
			target, ok := byEntity[other]
			if !ok {
				continue
			}
			push, hit := info.box.Penetration(target.box)
			if !hit {
				continue
			}
			now[other] = true
			info.transform.Move(push)
			info.box.Center = info.box.Center.Add(push)
			body.Acceleration = mgl64.Vec3{}
			body.Velocity[1] = 0
			if push.Y() > common.GroundNormalEpsilon {
				grounded = true
			}
		}
	}
	body.Velocity = body.Velocity.Mul(ps.damping)

	body.Collided = len(now) > 0
	body.Grounded = grounded
	ps.emitContacts(w, info.entity, now)

	prev, known := ps.grounded[info.entity]
	if !known || prev != grounded {
		kind := ecs.GroundContactLost
		if grounded {
			kind = ecs.GroundContactGained
		}
		w.Events().Push(ecs.CollisionEvent{Entity: info.entity, Kind: kind})
	}
	ps.grounded[info.entity] = grounded
}

// subSteps returns how many pieces move must be split into so that no
// piece is longer than the smallest half extent of box or any of others.
func subSteps(move mgl64.Vec3, box common.AABB, others []ecs.Entity, byEntity map[ecs.Entity]*colliderInfo) int {
	limit := minHalf(box)
	for _, e := range others {
		if target, ok := byEntity[e]; ok {
			limit = min(limit, minHalf(target.box))
		}
	}
	dist := max(mgl64.Abs(move.X()), mgl64.Abs(move.Y()), mgl64.Abs(move.Z()))
	if limit <= 0 || dist <= limit {
		return 1
	}
	return min(int(math.Ceil(dist/limit)), maxSubSteps)
}

func minHalf(box common.AABB) float64 {
	return min(box.Half.X(), box.Half.Y(), box.Half.Z())
}

// sweep returns the box covering b at its start and after moving by d.
func sweep(b common.AABB, d mgl64.Vec3) common.AABB {
	moved := common.AABB{Center: b.Center.Add(d), Half: b.Half}
	lo, hi := b.Min(), b.Max()
	mlo, mhi := moved.Min(), moved.Max()
	for i := 0; i < 3; i++ {
		lo[i] = min(lo[i], mlo[i])
		hi[i] = max(hi[i], mhi[i])
	}
	return common.AABB{Center: lo.Add(hi).Mul(0.5), Half: hi.Sub(lo).Mul(0.5)}
}

func (ps *PhysicsSystem) emitContacts(w *ecs.World, e ecs.Entity, now map[ecs.Entity]bool) {
	prev := ps.contacts[e]
	for _, other := range sortedKeys(now) {
		kind := ecs.CollisionEnter
		if prev[other] {
			kind = ecs.CollisionStay
		}
		w.Events().Push(ecs.CollisionEvent{Entity: e, Other: other, Kind: kind})
	}
	for _, other := range sortedKeys(prev) {
		if !now[other] {
			w.Events().Push(ecs.CollisionEvent{Entity: e, Other: other, Kind: ecs.CollisionExit})
		}
	}
	ps.contacts[e] = now
}

// WorldBox returns the world-space box of a collider. Offset is in the
// node's local units and scales with it.
func WorldBox(t *component.Transform, c *component.Collider) common.AABB {
	scale := t.WorldScale()
	offset := mgl64.Vec3{c.Offset.X() * scale.X(), c.Offset.Y() * scale.Y(), c.Offset.Z() * scale.Z()}
	return common.AABB{
		Center: t.WorldPosition().Add(offset),
		Half:   c.HalfExtents(scale),
	}
}

func footprint(box common.AABB) cp.BB {
	lo, hi := box.Min(), box.Max()
	return cp.BB{L: lo.X(), B: lo.Z(), R: hi.X(), T: hi.Z()}
}

func sortedKeys(m map[ecs.Entity]bool) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
