package system

import (
	"math"
	"testing"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

func physicsRig(t *testing.T, surface string) (*ecs.World, *PhysicsSystem, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	floor := ecs.CreateEntity(w)
	mustAdd(t, w, floor, component.TransformComponent.Kind(), &component.Transform{X: 200, Y: 300})
	mustAdd(t, w, floor, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 400, Height: 32, Static: true, Friction: 1, Surface: surface})

	player := ecs.CreateEntity(w)
	mustAdd(t, w, player, component.TransformComponent.Kind(), &component.Transform{X: 200, Y: 200})
	mustAdd(t, w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 16, Height: 32, Mass: 1, Friction: 1, LockRotation: true})
	mustAdd(t, w, player, component.GroundCheckComponent.Kind(), &component.GroundCheck{})

	return w, NewPhysicsSystem(), floor, player
}

func settle(w *ecs.World, ps *PhysicsSystem, steps int) {
	for i := 0; i < steps; i++ {
		ps.Update(w)
	}
}

func TestPhysicsLandsOnGround(t *testing.T) {
	w, ps, _, player := physicsRig(t, component.SurfaceGround)
	gc := get(t, w, player, component.GroundCheckComponent.Kind())

	ps.Update(w)
	if gc.Grounded {
		t.Fatalf("player in mid air must not be grounded")
	}

	settle(w, ps, 120)
	if !gc.Grounded || gc.OnMovingPlatform || !gc.CanJump() {
		t.Fatalf("expected grounded, got %+v", gc)
	}
	if y := get(t, w, player, component.TransformComponent.Kind()).Y; math.Abs(y-268) > 2 {
		t.Fatalf("expected player to rest on the floor near y=268, got %v", y)
	}
}

func TestPhysicsDetectsBelt(t *testing.T) {
	w, ps, belt, player := physicsRig(t, component.SurfaceMovingPlatform)
	settle(w, ps, 120)

	gc := get(t, w, player, component.GroundCheckComponent.Kind())
	if gc.Grounded || !gc.OnMovingPlatform || gc.Platform != uint64(belt) {
		t.Fatalf("expected moving platform contact with belt %v, got %+v", belt, gc)
	}
}

func TestPhysicsGroundResetsWhenAirborne(t *testing.T) {
	w, ps, _, player := physicsRig(t, component.SurfaceGround)
	settle(w, ps, 120)

	body := get(t, w, player, component.PhysicsBodyComponent.Kind())
	body.Body.SetVelocity(0, -10)
	settle(w, ps, 3)

	gc := get(t, w, player, component.GroundCheckComponent.Kind())
	if gc.Grounded || gc.CanJump() {
		t.Fatalf("expected grounded to clear after leaving the floor")
	}
}

func TestCrouchResizeKeepsFeet(t *testing.T) {
	w, ps, _, player := physicsRig(t, component.SurfaceGround)
	settle(w, ps, 120)

	body := get(t, w, player, component.PhysicsBodyComponent.Kind())
	before := body.Shape.BB().T

	body.Height = 19.2
	settle(w, ps, 10)

	after := body.Shape.BB()
	if math.Abs(after.T-before) > 1.5 {
		t.Fatalf("feet moved while crouching: %v -> %v", before, after.T)
	}
	if h := after.T - after.B; math.Abs(h-19.2) > 0.01 {
		t.Fatalf("expected collider height 19.2, got %v", h)
	}
	if !get(t, w, player, component.GroundCheckComponent.Kind()).Grounded {
		t.Fatalf("crouching player should stay grounded")
	}
}

func TestKinematicFollowsTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 50, Y: 50})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 48, Height: 16, Kinematic: true, Surface: component.SurfaceGround})
	ps := NewPhysicsSystem()

	ps.Update(w)
	tr := get(t, w, e, component.TransformComponent.Kind())
	tr.Y = 60
	ps.Update(w)

	body := get(t, w, e, component.PhysicsBodyComponent.Kind())
	if pos := body.Body.Position(); pos != (cp.Vector{X: 50, Y: 60}) {
		t.Fatalf("expected kinematic body at (50, 60), got %v", pos)
	}
	if tr.Y != 60 {
		t.Fatalf("physics must not move a kinematic transform, got %v", tr.Y)
	}
}

func TestPhysicsCleansUpDestroyed(t *testing.T) {
	w, ps, _, player := physicsRig(t, component.SurfaceGround)
	ps.Update(w)
	if _, ok := ps.entities[player]; !ok {
		t.Fatalf("expected physics state for the player")
	}
	ecs.DestroyEntity(w, player)
	ps.Update(w)
	if _, ok := ps.entities[player]; ok {
		t.Fatalf("destroyed entity still has physics state")
	}
}
