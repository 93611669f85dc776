package ecs

// EventKind identifies gameplay events published by Systems.
type EventKind string

const (
	EventPlayerDamaged     EventKind = "player_damaged"
	EventPlayerDied        EventKind = "player_died"
	EventPlayerRespawned   EventKind = "player_respawned"
	EventCheckpointReached EventKind = "checkpoint_reached"
	EventPlayerCrushed     EventKind = "player_crushed"
	EventLevelExit         EventKind = "level_exit"
)

// Event is a gameplay notification. Source is the entity that caused it,
// Target the entity it happened to.
type Event struct {
	Kind   EventKind
	Source Entity
	Target Entity
	Value  int
	Name   string
}

// EventQueue is a FIFO drained once per tick by the game loop.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func Emit(w *World, evt Event) {
	if w == nil {
		return
	}
	w.events.Push(evt)
}

func Events(w *World) *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
