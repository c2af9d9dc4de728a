package system

import (
	"github.com/milk9111/stadium/ecs"
	"github.com/milk9111/stadium/ecs/component"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CollisionListener receives every collision event of a frame after the
// built-in handlers ran.
type CollisionListener interface {
	OnCollision(w *ecs.World, evt ecs.CollisionEvent)
}

// ContactSystem dispatches the frame's collision events: ground contact to
// player controllers, kill zone entries to resets, everything to listeners.
type ContactSystem struct {
	listeners []CollisionListener
	logger    zerolog.Logger
}

func NewContactSystem(listeners ...CollisionListener) *ContactSystem {
	cs := &ContactSystem{logger: log.Logger.With().Str("component", "contact").Logger()}
	for _, l := range listeners {
		if l != nil {
			cs.listeners = append(cs.listeners, l)
		}
	}
	return cs
}

func (cs *ContactSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	reset := map[ecs.Entity]bool{}
	w.Events().Each(func(evt ecs.CollisionEvent) {
		switch evt.Kind {
		case ecs.GroundContactGained, ecs.GroundContactLost:
			cs.groundContact(w, evt)
		case ecs.CollisionEnter:
			cs.killZone(w, evt.Entity, evt.Other, reset)
			cs.killZone(w, evt.Other, evt.Entity, reset)
		}
		for _, l := range cs.listeners {
			l.OnCollision(w, evt)
		}
	})
}

func (cs *ContactSystem) groundContact(w *ecs.World, evt ecs.CollisionEvent) {
	p, ok := ecs.Get(w, evt.Entity, component.PlayerComponent)
	if !ok || p.Controller == nil {
		return
	}
	if evt.Kind == ecs.GroundContactGained {
		p.Controller.OnGroundContactGained()
	} else {
		p.Controller.OnGroundContactLost()
	}
}

func (cs *ContactSystem) killZone(w *ecs.World, zone, other ecs.Entity, reset map[ecs.Entity]bool) {
	kz, ok := ecs.Get(w, zone, component.KillZoneComponent)
	if !ok || reset[other] || nameOf(w, other) != kz.TargetName {
		return
	}
	if ResetNode(w, other) {
		reset[other] = true
		cs.logger.Info().Str("zone", nameOf(w, zone)).Str("target", kz.TargetName).Msg("target reset")
	}
}
