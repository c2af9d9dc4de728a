package ecs

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const (
	CollisionEnter      CollisionEventKind = "enter"
	CollisionStay       CollisionEventKind = "stay"
	CollisionExit       CollisionEventKind = "exit"
	GroundContactGained CollisionEventKind = "ground_gained"
	GroundContactLost   CollisionEventKind = "ground_lost"
)

// CollisionEvent is emitted when an entity's contact state changes. Other
// is zero for ground events.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Kind   CollisionEventKind
}

// EventQueue collects the events of one frame. Any number of systems may
// read it; the scheduler clears it once every system has run.
type EventQueue struct {
	items []CollisionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt CollisionEvent) {
	q.items = append(q.items, evt)
}

// Each calls fn for every queued event in push order.
func (q *EventQueue) Each(fn func(CollisionEvent)) {
	for _, evt := range q.items {
		fn(evt)
	}
}

func (q *EventQueue) Len() int {
	return len(q.items)
}

func (q *EventQueue) flush() {
	q.items = q.items[:0]
}
