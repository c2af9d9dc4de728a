// Package session assembles a playable world from a scene: it builds the
// nodes, wires the systems in tick order and steps them at a fixed rate.
package session

import (
	"fmt"

	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/milk9111/stadium/ecs/entity"
	"github.com/milk9111/stadium/ecs/system"
	"github.com/milk9111/stadium/scene"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Session struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Physics   *system.PhysicsSystem
	Scripts   *system.ScriptSystem

	Spec  *scene.Spec
	Index map[string]ecs.Entity

	logger zerolog.Logger
}

// Load reads, validates and builds the named scene.
func Load(name string, input system.InputSource, viewport entity.Viewport) (*Session, error) {
	spec, err := scene.LoadSpec(name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, errors.Wrapf(err, "session: %s", name)
	}
	return New(spec, input, viewport)
}

// New builds spec into a fresh world. Systems run in this order: input,
// scripts, rotators, player controllers, cameras, physics, contacts,
// transform links.
func New(spec *scene.Spec, input system.InputSource, viewport entity.Viewport) (*Session, error) {
	w := ecs.NewWorld()
	index, err := entity.BuildScene(w, spec, viewport)
	if err != nil {
		return nil, errors.Wrap(err, "session")
	}

	physics := system.NewPhysicsSystem()
	scripts := system.NewScriptSystem(scene.LoadScript)
	s := &Session{
		World:   w,
		Physics: physics,
		Scripts: scripts,
		Spec:    spec,
		Index:   index,
		logger:  log.Logger.With().Str("component", "session").Str("scene", spec.Name).Logger(),
	}
	s.Scheduler = ecs.NewScheduler(
		system.NewInputSystem(input),
		scripts,
		system.NewRotatorSystem(),
		system.NewPlayerControllerSystem(),
		system.NewCameraSystem(),
		physics,
		system.NewContactSystem(scripts),
		system.NewTransformSystem(),
	)
	s.logger.Info().Int("nodes", len(spec.Nodes)).Msg("scene built")
	return s, nil
}

// Step advances the world by dt seconds.
func (s *Session) Step(dt float64) {
	s.Scheduler.Update(s.World, dt)
}

// ReloadScripts recompiles every script on the next step. Start phases
// run again.
func (s *Session) ReloadScripts() {
	s.Scripts.Reset()
	s.logger.Info().Msg("scripts reloaded")
}

func (s *Session) Player() (ecs.Entity, bool) {
	return s.World.First(component.PlayerComponent.Kind())
}

func (s *Session) Camera() (ecs.Entity, bool) {
	return s.World.First(component.OrbitCameraComponent.Kind(), component.TransformComponent.Kind())
}

// Summary counts what a scene contains.
type Summary struct {
	Nodes     int
	Colliders int
	Bodies    int
	Scripts   int
	Lights    int
	KillZones int
}

func (s *Session) Summary() Summary {
	w := s.World
	return Summary{
		Nodes:     len(ecs.Entities(w)),
		Colliders: len(w.Query(component.ColliderComponent.Kind())),
		Bodies:    len(w.Query(component.RigidBodyComponent.Kind())),
		Scripts:   len(w.Query(component.ScriptComponent.Kind())),
		Lights:    len(w.Query(component.LightComponent.Kind())),
		KillZones: len(w.Query(component.KillZoneComponent.Kind())),
	}
}

func (sum Summary) String() string {
	return fmt.Sprintf("%d nodes, %d colliders, %d bodies, %d scripted, %d lights, %d kill zones",
		sum.Nodes, sum.Colliders, sum.Bodies, sum.Scripts, sum.Lights, sum.KillZones)
}
