package system

import (
	"testing"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

func testSpike(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.HazardComponent.Kind(), &component.Hazard{
		Damage:             1,
		Width:              32,
		Height:             16,
		KnockbackX:         6,
		KnockbackY:         7,
		KnockbackLock:      24,
		InvulnerableFrames: 60,
	})
	return e
}

func TestKnockbackVelocity(t *testing.T) {
	tests := []struct {
		name       string
		playerX    float64
		sourceX    float64
		facingLeft bool
		wantX      float64
	}{
		{name: "source_left_pushes_right", playerX: 100, sourceX: 80, wantX: 6},
		{name: "source_right_pushes_left", playerX: 100, sourceX: 120, wantX: -6},
		{name: "centred_facing_right_pushes_left", playerX: 100, sourceX: 100, wantX: -6},
		{name: "centred_facing_left_pushes_right", playerX: 100, sourceX: 100, facingLeft: true, wantX: 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := knockbackVelocity(tc.playerX, tc.sourceX, tc.facingLeft, 6, 7)
			if v.X != tc.wantX || v.Y != -7 {
				t.Fatalf("expected (%v, -7), got %v", tc.wantX, v)
			}
		})
	}
}

func TestHazardHit(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 90, 100)
	testSpike(t, w, 100, 110)
	sys := NewHazardSystem()

	sys.Update(w)

	h := get(t, w, p, component.HealthComponent.Kind())
	if h.Current != 2 {
		t.Fatalf("expected one point of damage, got current=%d", h.Current)
	}
	if h.KnockbackFrames != 24 {
		t.Fatalf("expected knockback lock 24, got %d", h.KnockbackFrames)
	}
	req, ok := ecs.Get(w, p, component.DamageKnockbackRequestComponent.Kind())
	if !ok || req.SourceX != 100 || req.ImpulseX != 6 || req.ImpulseY != 7 {
		t.Fatalf("unexpected knockback request %+v ok=%v", req, ok)
	}
	if !ecs.Has(w, p, component.InvulnerableComponent.Kind()) {
		t.Fatalf("expected invulnerability after a hit")
	}

	// Still touching: invulnerability stops a second hit.
	sys.Update(w)
	if h.Current != 2 {
		t.Fatalf("invulnerable player took damage, current=%d", h.Current)
	}
}

func TestInvulnerabilityExpires(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	mustAdd(t, w, p, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: 10})
	sys := NewHazardSystem()

	blinked := false
	for i := 0; i < 10; i++ {
		sys.Update(w)
		if get(t, w, p, component.SpriteComponent.Kind()).Hidden {
			blinked = true
		}
	}
	if !blinked {
		t.Fatalf("expected the sprite to blink while invulnerable")
	}
	if ecs.Has(w, p, component.InvulnerableComponent.Kind()) {
		t.Fatalf("invulnerability should have expired")
	}
	if get(t, w, p, component.SpriteComponent.Kind()).Hidden {
		t.Fatalf("sprite must be visible once invulnerability ends")
	}
}

func TestLethalHazardSkipsInvulnerability(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 100, 100)
	get(t, w, p, component.HealthComponent.Kind()).Current = 1
	testSpike(t, w, 100, 110)

	NewHazardSystem().Update(w)

	if get(t, w, p, component.HealthComponent.Kind()).Alive {
		t.Fatalf("expected the player to die")
	}
	if ecs.Has(w, p, component.InvulnerableComponent.Kind()) {
		t.Fatalf("a dead player does not need invulnerability")
	}
}

func TestDamageKnockbackSystem(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 100, 100)
	body := get(t, w, p, component.PhysicsBodyComponent.Kind())
	body.Body.SetVelocity(3, 3)
	mustAdd(t, w, p, component.DamageKnockbackRequestComponent.Kind(), &component.DamageKnockback{SourceX: 120, ImpulseX: 6, ImpulseY: 7})

	NewDamageKnockbackSystem().Update(w)

	v := body.Body.Velocity()
	if v.X != -6 || v.Y != -7 {
		t.Fatalf("expected velocity (-6, -7), got %v", v)
	}
	if ecs.Has(w, p, component.DamageKnockbackRequestComponent.Kind()) {
		t.Fatalf("request must be consumed")
	}
}
