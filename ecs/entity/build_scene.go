package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/locomotion"
	"github.com/milk9111/stadium/scene"
)

// Viewport is the size the camera lenses are built for.
type Viewport struct {
	Width  int
	Height int
}

type buildContext struct {
	viewport Viewport
	index    map[string]ecs.Entity
}

type nodeBuildFn func(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, ctx *buildContext) error

var componentRegistry = map[string]nodeBuildFn{
	"name":      addName,
	"transform": addTransform,
	"parent":    addParent,
	"model":     addModel,
	"camera":    addCamera,
	"light":     addLight,
	"collider":  addCollider,
	"rigidbody": addRigidBody,
	"player":    addPlayer,
	"rotator":   addRotator,
	"kill_zone": addKillZone,
	"scripts":   addScripts,
}

// parent needs the transform, player needs the rigidbody's spawn.
var componentBuildOrder = []string{
	"name",
	"transform",
	"parent",
	"model",
	"camera",
	"light",
	"collider",
	"rigidbody",
	"player",
	"rotator",
	"kill_zone",
	"scripts",
}

// BuildScene creates one entity per node of spec and returns the first
// entity built for each node name. Nodes are built in order, so parents
// must come before their children. On error every entity created so far
// is destroyed.
func BuildScene(w *ecs.World, spec *scene.Spec, viewport Viewport) (map[string]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("build scene: world is nil")
	}
	if spec == nil {
		return nil, fmt.Errorf("build scene: spec is nil")
	}

	ctx := &buildContext{viewport: viewport, index: map[string]ecs.Entity{}}
	var built []ecs.Entity
	fail := func(err error) (map[string]ecs.Entity, error) {
		for _, e := range built {
			ecs.DestroyEntity(w, e)
		}
		return nil, err
	}

	for i := range spec.Nodes {
		n := &spec.Nodes[i]
		e := ecs.CreateEntity(w)
		built = append(built, e)

		for _, name := range componentBuildOrder {
			if err := componentRegistry[name](w, e, n, ctx); err != nil {
				return fail(fmt.Errorf("build scene: node %q: add %q: %w", n.Name, name, err))
			}
		}
		if _, ok := ctx.index[n.Name]; !ok {
			ctx.index[n.Name] = e
		}
	}
	return ctx.index, nil
}

func addName(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	return ecs.Add(w, e, component.NameComponent, &component.Name{Value: n.Name})
}

func addTransform(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	t := component.NewTransform()
	t.Position = n.Transform.Position.Vec()
	t.Rotation = n.Transform.Rotation.Vec()
	if n.Transform.Scale != nil {
		t.Scale = n.Transform.Scale.Vec()
	}
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addParent(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, ctx *buildContext) error {
	if n.Parent == "" {
		return nil
	}
	parent, ok := ctx.index[n.Parent]
	if !ok {
		return fmt.Errorf("parent %q not built yet", n.Parent)
	}
	pt, ok := ecs.Get(w, parent, component.TransformComponent)
	if !ok {
		return fmt.Errorf("parent %q has no transform", n.Parent)
	}
	t, _ := ecs.Get(w, e, component.TransformComponent)
	t.Parent = pt
	return ecs.Add(w, e, component.ParentComponent, &component.Parent{Name: n.Parent})
}

func addModel(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if n.Model == nil {
		return nil
	}
	return ecs.Add(w, e, component.ModelComponent, &component.Model{
		Mesh:      n.Model.Mesh,
		Material:  n.Model.Material,
		Primitive: component.ShapeKind(n.Model.Primitive),
	})
}

func addCamera(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, ctx *buildContext) error {
	if n.Camera == nil {
		return nil
	}
	c := n.Camera
	if err := ecs.Add(w, e, component.CameraLensComponent, &component.CameraLens{
		Width:  ctx.viewport.Width,
		Height: ctx.viewport.Height,
		Near:   c.Near,
		Far:    c.Far,
		FovDeg: c.Fov,
	}); err != nil {
		return err
	}
	if c.Target == "" {
		return nil
	}
	if err := ecs.Add(w, e, component.OrbitCameraComponent, &component.OrbitCamera{
		TargetName:  c.Target,
		Speed:       c.Speed,
		LookAtDist:  c.LookAtDist,
		MinDistance: c.MinDistance,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

func addLight(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if n.Light == nil {
		return nil
	}
	l := n.Light
	light := &component.Light{
		Kind:        component.LightKind(l.Kind),
		Direction:   l.Direction.Vec(),
		Constant:    l.Constant,
		Linear:      l.Linear,
		Quadratic:   l.Quadratic,
		CutOff:      float64(l.CutOff),
		OuterCutOff: float64(l.OuterCutOff),
	}
	if l.Ambient != nil {
		light.Ambient = l.Ambient.NRGBA
	}
	if l.Diffuse != nil {
		light.Diffuse = l.Diffuse.NRGBA
	}
	if l.Specular != nil {
		light.Specular = l.Specular.NRGBA
	}
	return ecs.Add(w, e, component.LightComponent, light)
}

func addCollider(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if n.Collider == nil {
		return nil
	}
	shape := component.ShapeKind(n.Collider.Shape)
	if !shape.Valid() {
		return fmt.Errorf("unknown shape %q", n.Collider.Shape)
	}
	c := &component.Collider{
		Shape:    shape,
		Offset:   n.Collider.Offset.Vec(),
		Rotation: n.Collider.Rotation.Vec(),
		Size:     mgl64.Vec3{1, 1, 1},
	}
	if n.Collider.Size != nil {
		c.Size = n.Collider.Size.Vec()
	}
	return ecs.Add(w, e, component.ColliderComponent, c)
}

func addRigidBody(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if n.RigidBody == nil {
		return nil
	}
	body := component.NewRigidBody(n.RigidBody.Kinematic)
	if n.RigidBody.Gravity != nil {
		body.Gravity = n.RigidBody.Gravity.Vec()
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent, body); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpawnComponent, &component.Spawn{Position: n.Transform.Position.Vec()})
}

func addPlayer(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if n.Player == nil {
		return nil
	}
	params := locomotion.DefaultParams()
	if n.Player.GroundSpeed > 0 {
		params.GroundSpeed = n.Player.GroundSpeed
	}
	if n.Player.AirSpeed > 0 {
		params.AirSpeed = n.Player.AirSpeed
	}
	if n.Player.JumpForce > 0 {
		params.JumpForce = n.Player.JumpForce
	}

	p := &component.Player{
		Params:     params,
		CameraName: n.Player.Camera,
		Controller: locomotion.NewController(params, nil, nil),
	}
	if err := ecs.Add(w, e, component.PlayerComponent, p); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return err
	}
	if !ecs.Has(w, e, component.SpawnComponent) {
		if err := ecs.Add(w, e, component.SpawnComponent, &component.Spawn{Position: n.Transform.Position.Vec()}); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

func addRotator(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if n.Rotator == nil {
		return nil
	}
	return ecs.Add(w, e, component.RotatorComponent, &component.Rotator{
		Axis:    n.Rotator.Axis.Vec(),
		Speed:   n.Rotator.Speed,
		LocalUp: n.Rotator.LocalUp,
	})
}

func addKillZone(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if n.KillZone == nil {
		return nil
	}
	return ecs.Add(w, e, component.KillZoneComponent, &component.KillZone{TargetName: n.KillZone.Target})
}

func addScripts(w *ecs.World, e ecs.Entity, n *scene.NodeSpec, _ *buildContext) error {
	if len(n.Scripts) == 0 {
		return nil
	}
	paths := append([]string(nil), n.Scripts...)
	return ecs.Add(w, e, component.ScriptComponent, &component.Script{Paths: paths})
}
