package system

import (
	"testing"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

// testPlayer builds a player at (x, y) with a free-floating body, i.e. one
// that is not part of any space.
func testPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	motor := &component.PlayerMotor{StandHeight: 32}
	motor.ApplyDefaults()

	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.PlayerMotorComponent.Kind(), motor)
	mustAdd(t, w, e, component.HealthComponent.Kind(), &component.Health{Max: 3, Current: 3, Alive: true, RespawnDelay: 30, InitialX: x, InitialY: y})
	mustAdd(t, w, e, component.GroundCheckComponent.Kind(), &component.GroundCheck{Grounded: true})
	mustAdd(t, w, e, component.FrictionComponent.Kind(), &component.Friction{Original: 1})
	mustAdd(t, w, e, component.SFXComponent.Kind(), &component.SFX{})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{})

	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Width: 16, Height: 32, Mass: 1, Friction: 1, LockRotation: true})
	return e
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v is missing a component", e)
	}
	return v
}

func eventKinds(w *ecs.World) []ecs.EventKind {
	var kinds []ecs.EventKind
	for _, ev := range ecs.Events(w).Drain() {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func hasEvent(kinds []ecs.EventKind, want ecs.EventKind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
