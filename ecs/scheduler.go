package ecs

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update advances the world clock by dt, runs every system once and then
// clears the frame's events.
func (s *Scheduler) Update(w *World, dt float64) {
	w.clock.Advance(dt)
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
