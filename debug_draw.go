package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/session"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugPixelsPerUnit  = 12.0
)

// DrawPhysicsDebug draws the collider footprints from above, X to the right
// and Z down the screen, centered on the player.
func DrawPhysicsDebug(s *session.Session, screen *ebiten.Image) {
	if s == nil || screen == nil {
		return
	}
	space := s.Physics.Space()
	if space == nil {
		return
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	drawer := &physicsDebugDrawer{
		screen:  screen,
		originX: float64(w) / 2,
		originY: float64(h) / 2,
		zoom:    debugPixelsPerUnit,
	}
	if e, ok := s.Player(); ok {
		if t, ok := ecs.Get(s.World, e, component.TransformComponent); ok {
			p := t.WorldPosition()
			drawer.camX, drawer.camY = p.X(), p.Z()
		}
	}
	cp.DrawSpace(space, drawer)
	drawer.drawMarkers(s)
}

// DrawPlayerStateDebug prints the player's locomotion state.
func DrawPlayerStateDebug(s *session.Session, screen *ebiten.Image) {
	if s == nil || screen == nil {
		return
	}
	e, ok := s.Player()
	if !ok {
		return
	}
	p, _ := ecs.Get(s.World, e, component.PlayerComponent)
	t, _ := ecs.Get(s.World, e, component.TransformComponent)
	body, _ := ecs.Get(s.World, e, component.RigidBodyComponent)

	state := "none"
	if p != nil && p.Controller != nil {
		state = p.Controller.State().String()
	}
	text := fmt.Sprintf("Player State: %s", state)
	if t != nil {
		pos := t.WorldPosition()
		text += fmt.Sprintf("\nPosition: %.2f %.2f %.2f", pos.X(), pos.Y(), pos.Z())
	}
	if body != nil {
		text += fmt.Sprintf("\nVelocity: %.2f %.2f %.2f\nGrounded: %v", body.Velocity.X(), body.Velocity.Y(), body.Velocity.Z(), body.Grounded)
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 26)
}

type physicsDebugDrawer struct {
	screen           *ebiten.Image
	originX, originY float64
	camX, camY       float64
	zoom             float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.zoom
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

// drawMarkers puts a dot on the player and a heading line on the camera.
func (d *physicsDebugDrawer) drawMarkers(s *session.Session) {
	red := cp.FColor{R: 1, G: 0.2, B: 0.2, A: 1}
	if e, ok := s.Player(); ok {
		if t, ok := ecs.Get(s.World, e, component.TransformComponent); ok {
			p := t.WorldPosition()
			d.DrawDot(debugDotSize*2, cp.Vector{X: p.X(), Y: p.Z()}, red, nil)
		}
	}
	if e, ok := s.Camera(); ok {
		t, _ := ecs.Get(s.World, e, component.TransformComponent)
		p := t.WorldPosition()
		yaw := t.Rotation.Y()
		from := cp.Vector{X: p.X(), Y: p.Z()}
		to := cp.Vector{X: p.X() + math.Sin(yaw), Y: p.Z() + math.Cos(yaw)}
		d.drawLine(from, to, cp.FColor{R: 0.3, G: 0.6, B: 1, A: 1})
	}
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(color))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return d.originX + (v.X-d.camX)*d.zoom, d.originY + (v.Y-d.camY)*d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
