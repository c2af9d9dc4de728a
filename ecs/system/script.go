package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Script phases, named after the function a script defines to handle them.
const (
	PhaseStart          = "start"
	PhaseLateStart      = "late_start"
	PhaseUpdate         = "update"
	PhaseCollisionEnter = "on_collision_enter"
	PhaseCollisionStay  = "on_collision_stay"
	PhaseCollisionExit  = "on_collision_exit"
)

var scriptPhases = []string{
	PhaseStart,
	PhaseLateStart,
	PhaseUpdate,
	PhaseCollisionEnter,
	PhaseCollisionStay,
	PhaseCollisionExit,
}

// ScriptLoader returns the source of a script by path.
type ScriptLoader func(path string) ([]byte, error)

// ScriptSystem runs the tengo scripts attached to nodes. Scripts define any
// of start(engine, state), late_start(engine, state), update(engine, state)
// and on_collision_enter/stay/exit(engine, state, other). Values kept in
// state survive between calls; everything else is re-evaluated each run.
type ScriptSystem struct {
	load     ScriptLoader
	runtimes map[ecs.Entity][]*scriptRuntime
	names    nameCache
	logger   zerolog.Logger
}

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	engine   *tengo.ImmutableMap
	state    *tengo.Map
	phases   map[string]bool

	started     bool
	lateStarted bool
	failed      bool
}

func NewScriptSystem(load ScriptLoader) *ScriptSystem {
	return &ScriptSystem{
		load:     load,
		runtimes: map[ecs.Entity][]*scriptRuntime{},
		names:    nameCache{},
		logger:   log.Logger.With().Str("component", "script").Logger(),
	}
}

func (s *ScriptSystem) SetLogger(l zerolog.Logger) {
	s.logger = l
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	entities := s.sync(w)

	for _, e := range entities {
		for _, rt := range s.runtimes[e] {
			if rt.started {
				continue
			}
			rt.started = true
			s.run(w, e, rt, PhaseStart, "")
		}
	}
	for _, e := range entities {
		for _, rt := range s.runtimes[e] {
			if rt.lateStarted {
				continue
			}
			rt.lateStarted = true
			s.run(w, e, rt, PhaseLateStart, "")
		}
	}
	for _, e := range entities {
		for _, rt := range s.runtimes[e] {
			s.run(w, e, rt, PhaseUpdate, "")
		}
	}
}

// OnCollision forwards a collision event to the scripts of the entity it
// belongs to. Colliders without a body never get events of their own, so
// they also receive the mirrored event.
func (s *ScriptSystem) OnCollision(w *ecs.World, evt ecs.CollisionEvent) {
	if s == nil || w == nil {
		return
	}
	phase := collisionPhase(evt.Kind)
	if phase == "" {
		return
	}
	for _, rt := range s.runtimes[evt.Entity] {
		s.run(w, evt.Entity, rt, phase, nameOf(w, evt.Other))
	}
	if ecs.Has(w, evt.Other, component.RigidBodyComponent) {
		return
	}
	for _, rt := range s.runtimes[evt.Other] {
		s.run(w, evt.Other, rt, phase, nameOf(w, evt.Entity))
	}
}

// Reset drops every compiled script so the next update reloads them.
func (s *ScriptSystem) Reset() {
	s.runtimes = map[ecs.Entity][]*scriptRuntime{}
	s.names = nameCache{}
}

// sync compiles scripts for new or changed Script components and forgets
// entities that no longer have one. It returns the scripted entities in
// query order.
func (s *ScriptSystem) sync(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.ScriptComponent.Kind())
	live := make(map[ecs.Entity]bool, len(entities))
	for _, e := range entities {
		live[e] = true
		sc, _ := ecs.Get(w, e, component.ScriptComponent)
		if sameScripts(s.runtimes[e], sc.Paths) {
			continue
		}
		rts := make([]*scriptRuntime, 0, len(sc.Paths))
		for _, path := range sc.Paths {
			rt, err := s.compile(w, e, path)
			if err != nil {
				s.logger.Error().Err(err).Str("node", nameOf(w, e)).Str("script", path).Msg("load script")
				rt = &scriptRuntime{path: path, failed: true}
			}
			rts = append(rts, rt)
		}
		s.runtimes[e] = rts
	}
	for e := range s.runtimes {
		if !live[e] {
			delete(s.runtimes, e)
		}
	}
	return entities
}

func sameScripts(rts []*scriptRuntime, paths []string) bool {
	if len(rts) != len(paths) {
		return false
	}
	for i, rt := range rts {
		if rt.path != paths[i] {
			return false
		}
	}
	return true
}

func (s *ScriptSystem) compile(w *ecs.World, e ecs.Entity, path string) (*scriptRuntime, error) {
	if s.load == nil {
		return nil, errors.New("no script loader")
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	phases, err := definedPhases(src)
	if err != nil {
		return nil, errors.Wrapf(err, "compile %s", path)
	}

	full := string(src) + "\n" + dispatchSource(phases)
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__other", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return nil, errors.Wrapf(err, "compile %s", path)
	}

	rt := &scriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		phases:   phases,
	}
	rt.engine = s.buildEngine(w, e)
	return rt, nil
}

// definedPhases compiles src on its own and reports which phase functions
// it declares at top level.
func definedPhases(src []byte) (map[string]bool, error) {
	probe := tengo.NewScript(src)
	probe.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := probe.Compile()
	if err != nil {
		return nil, err
	}
	declared := map[string]bool{}
	for _, v := range compiled.GetAll() {
		declared[v.Name()] = true
	}
	phases := map[string]bool{}
	for _, p := range scriptPhases {
		if declared[p] {
			phases[p] = true
		}
	}
	return phases, nil
}

func dispatchSource(phases map[string]bool) string {
	var b strings.Builder
	first := true
	for _, p := range scriptPhases {
		if !phases[p] {
			continue
		}
		args := "__engine, __state"
		if strings.HasPrefix(p, "on_collision") {
			args += ", __other"
		}
		if first {
			b.WriteString("if ")
			first = false
		} else {
			b.WriteString(" else if ")
		}
		fmt.Fprintf(&b, "__phase == %q {\n\t%s(%s)\n}", p, p, args)
	}
	b.WriteString("\n")
	return b.String()
}

func (s *ScriptSystem) run(w *ecs.World, e ecs.Entity, rt *scriptRuntime, phase, other string) {
	if rt == nil || rt.failed || !rt.phases[phase] {
		return
	}
	if err := rt.runPhase(phase, other); err != nil {
		s.logger.Error().Err(err).Str("node", nameOf(w, e)).Str("script", rt.path).Str("phase", phase).Msg("script error, disabling")
		rt.failed = true
	}
}

func (rt *scriptRuntime) runPhase(phase, other string) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", rt.engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__other", other); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func collisionPhase(kind ecs.CollisionEventKind) string {
	switch kind {
	case ecs.CollisionEnter:
		return PhaseCollisionEnter
	case ecs.CollisionStay:
		return PhaseCollisionStay
	case ecs.CollisionExit:
		return PhaseCollisionExit
	}
	return ""
}

func (s *ScriptSystem) buildEngine(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	transform := func() (*component.Transform, bool) {
		return ecs.Get(w, e, component.TransformComponent)
	}

	values["name"] = &tengo.UserFunction{Name: "name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: nameOf(w, e)}, nil
	}}

	values["delta_time"] = &tengo.UserFunction{Name: "delta_time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: w.DeltaTime()}, nil
	}}

	values["rotate"] = &tengo.UserFunction{Name: "rotate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vecArgs(args)
		if err != nil {
			return nil, err
		}
		t, ok := transform()
		if !ok {
			return tengo.FalseValue, nil
		}
		t.Rotate(v)
		return tengo.TrueValue, nil
	}}

	values["set_rotation"] = &tengo.UserFunction{Name: "set_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vecArgs(args)
		if err != nil {
			return nil, err
		}
		t, ok := transform()
		if !ok {
			return tengo.FalseValue, nil
		}
		t.Rotation = v
		return tengo.TrueValue, nil
	}}

	values["get_rotation"] = &tengo.UserFunction{Name: "get_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := transform()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(t.Rotation), nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vecArgs(args)
		if err != nil {
			return nil, err
		}
		t, ok := transform()
		if !ok {
			return tengo.FalseValue, nil
		}
		t.Position = v
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := transform()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(t.WorldPosition()), nil
	}}

	values["up"] = &tengo.UserFunction{Name: "up", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := transform()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(t.Up()), nil
	}}

	values["find"] = &tengo.UserFunction{Name: "find", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, _ := tengo.ToString(args[0])
		if _, ok := s.names.find(w, name); ok {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["reset_body"] = &tengo.UserFunction{Name: "reset_body", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, _ := tengo.ToString(args[0])
		target, ok := s.names.find(w, name)
		if !ok || !ResetNode(w, target) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			str, _ := tengo.ToString(a)
			parts = append(parts, str)
		}
		s.logger.Info().Str("node", nameOf(w, e)).Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// vecArgs accepts either three numbers or one array of three numbers.
func vecArgs(args []tengo.Object) (mgl64.Vec3, error) {
	if len(args) == 1 {
		if arr, ok := args[0].(*tengo.Array); ok {
			args = arr.Value
		}
	}
	if len(args) != 3 {
		return mgl64.Vec3{}, tengo.ErrWrongNumArguments
	}
	var v mgl64.Vec3
	for i, a := range args {
		f, ok := tengo.ToFloat64(a)
		if !ok {
			return mgl64.Vec3{}, tengo.ErrInvalidArgumentType{Name: fmt.Sprintf("v%d", i), Expected: "float", Found: a.TypeName()}
		}
		v[i] = f
	}
	return v, nil
}

func vecObject(v mgl64.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X()},
		&tengo.Float{Value: v.Y()},
		&tengo.Float{Value: v.Z()},
	}}
}
