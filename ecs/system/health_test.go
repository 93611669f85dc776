package system

import (
	"math/rand/v2"
	"testing"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		amount      int
		wantCurrent int
		wantAlive   bool
		wantKilled  bool
		wantEvents  []ecs.EventKind
	}{
		{name: "ignores_zero", current: 3, amount: 0, wantCurrent: 3, wantAlive: true},
		{name: "ignores_negative", current: 3, amount: -2, wantCurrent: 3, wantAlive: true},
		{name: "wounds", current: 3, amount: 1, wantCurrent: 2, wantAlive: true, wantEvents: []ecs.EventKind{ecs.EventPlayerDamaged}},
		{name: "kills_exactly", current: 1, amount: 1, wantCurrent: 0, wantKilled: true, wantEvents: []ecs.EventKind{ecs.EventPlayerDamaged, ecs.EventPlayerDied}},
		{name: "clamps_at_zero", current: 2, amount: 10, wantCurrent: 0, wantKilled: true, wantEvents: []ecs.EventKind{ecs.EventPlayerDamaged, ecs.EventPlayerDied}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := testPlayer(t, w, 0, 0)
			h := get(t, w, p, component.HealthComponent.Kind())
			h.Current = tc.current

			killed := TakeDamage(w, p, 0, tc.amount)
			if killed != tc.wantKilled {
				t.Fatalf("expected killed=%v, got %v", tc.wantKilled, killed)
			}
			if h.Current != tc.wantCurrent || h.Alive != tc.wantAlive {
				t.Fatalf("expected current=%d alive=%v, got %d %v", tc.wantCurrent, tc.wantAlive, h.Current, h.Alive)
			}
			if h.Alive != (h.Current > 0) {
				t.Fatalf("alive must follow current")
			}
			got := eventKinds(w)
			if len(got) != len(tc.wantEvents) {
				t.Fatalf("expected events %v, got %v", tc.wantEvents, got)
			}
			for i := range got {
				if got[i] != tc.wantEvents[i] {
					t.Fatalf("expected events %v, got %v", tc.wantEvents, got)
				}
			}
		})
	}
}

func TestDeadPlayerTakesNoFurtherDamage(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	TakeDamage(w, p, 0, 3)
	h := get(t, w, p, component.HealthComponent.Kind())
	if h.Deaths != 1 {
		t.Fatalf("expected one death, got %d", h.Deaths)
	}
	if TakeDamage(w, p, 0, 1) || h.Deaths != 1 {
		t.Fatalf("a dead player must not die again")
	}
}

func TestDeathRestoresFrictionAndSpawnsBurst(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	get(t, w, p, component.PhysicsBodyComponent.Kind()).Friction = 0

	TakeDamage(w, p, 0, 5)

	if f := get(t, w, p, component.PhysicsBodyComponent.Kind()).Friction; f != 1 {
		t.Fatalf("expected friction restored to 1, got %v", f)
	}
	if ecs.Count(w, component.ParticleEmitterComponent.Kind()) != 1 {
		t.Fatalf("expected a death burst")
	}
}

func TestHealthSystemClamps(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		wantCurrent int
		wantAlive   bool
	}{
		{name: "over_max", current: 9, wantCurrent: 3, wantAlive: true},
		{name: "negative", current: -4, wantCurrent: 0, wantAlive: false},
		{name: "in_range", current: 2, wantCurrent: 2, wantAlive: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := testPlayer(t, w, 0, 0)
			h := get(t, w, p, component.HealthComponent.Kind())
			h.Current = tc.current
			NewHealthSystem().Update(w)
			if h.Current != tc.wantCurrent || h.Alive != tc.wantAlive {
				t.Fatalf("expected %d/%v, got %d/%v", tc.wantCurrent, tc.wantAlive, h.Current, h.Alive)
			}
		})
	}
}

func TestKnockbackLockCountsDown(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	h := get(t, w, p, component.HealthComponent.Kind())
	h.KnockbackFrames = 2
	sys := NewHealthSystem()
	sys.Update(w)
	sys.Update(w)
	sys.Update(w)
	if h.KnockbackFrames != 0 {
		t.Fatalf("expected lock to expire, got %d", h.KnockbackFrames)
	}
}

func TestDeathLeadsToRespawn(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 10, 20)
	h := get(t, w, p, component.HealthComponent.Kind())
	h.RespawnDelay = 5
	tr := get(t, w, p, component.TransformComponent.Kind())
	motor := get(t, w, p, component.PlayerMotorComponent.Kind())

	TakeDamage(w, p, 0, 3)
	tr.X, tr.Y = 500, 500
	motor.Crushed = true
	motor.Crouching = true
	h.KnockbackFrames = 9

	health := NewHealthSystem()
	respawn := NewRespawnSystem()
	for i := 0; i < 4; i++ {
		health.Update(w)
		respawn.Update(w)
		if h.Alive {
			t.Fatalf("respawned too early on tick %d", i)
		}
	}
	health.Update(w)
	if !ecs.Has(w, p, component.RespawnRequestComponent.Kind()) {
		t.Fatalf("expected a respawn request after the death delay")
	}
	ecs.Events(w).Drain()
	respawn.Update(w)

	if !h.Alive || h.Current != h.Max {
		t.Fatalf("expected full health after respawn, got %d/%d alive=%v", h.Current, h.Max, h.Alive)
	}
	if tr.X != 10 || tr.Y != 20 {
		t.Fatalf("expected respawn at the initial position, got %v,%v", tr.X, tr.Y)
	}
	if motor.Crushed || motor.Crouching || h.KnockbackFrames != 0 {
		t.Fatalf("respawn must clear every lock")
	}
	if v := get(t, w, p, component.PhysicsBodyComponent.Kind()).Body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("expected zero velocity, got %v", v)
	}
	if !hasEvent(eventKinds(w), ecs.EventPlayerRespawned) {
		t.Fatalf("expected a respawned event")
	}
	if ecs.Has(w, p, component.RespawnRequestComponent.Kind()) {
		t.Fatalf("respawn request must be consumed")
	}
}

func TestRespawnPointPrecedence(t *testing.T) {
	w := ecs.NewWorld()
	h := &component.Health{InitialX: 1, InitialY: 2}

	if x, y := RespawnPoint(w, h); x != 1 || y != 2 {
		t.Fatalf("expected initial position, got %v,%v", x, y)
	}

	sp := ecs.CreateEntity(w)
	mustAdd(t, w, sp, component.SpawnPointTagComponent.Kind(), &component.SpawnPointTag{})
	mustAdd(t, w, sp, component.TransformComponent.Kind(), &component.Transform{X: 30, Y: 40})
	if x, y := RespawnPoint(w, h); x != 30 || y != 40 {
		t.Fatalf("expected spawn point, got %v,%v", x, y)
	}

	cpEnt := ecs.CreateEntity(w)
	mustAdd(t, w, cpEnt, component.CheckpointComponent.Kind(), &component.Checkpoint{Active: true, SpawnX: 70, SpawnY: 80})
	h.Checkpoint = uint64(cpEnt)
	if x, y := RespawnPoint(w, h); x != 70 || y != 80 {
		t.Fatalf("expected checkpoint spawn, got %v,%v", x, y)
	}
}

func newCheckpoint(t *testing.T, w *ecs.World, name string, x float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{Width: 16, Height: 64, SpawnX: x})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x})
	mustAdd(t, w, e, component.NamedComponent.Kind(), &component.Named{Name: name})
	return e
}

func activeCheckpoints(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.CheckpointComponent.Kind(), func(_ ecs.Entity, c *component.Checkpoint) {
		if c.Active {
			n++
		}
	})
	return n
}

func TestSetCheckpoint(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	a := newCheckpoint(t, w, "a", 100)
	b := newCheckpoint(t, w, "b", 200)

	if activeCheckpoints(w) != 0 {
		t.Fatalf("no checkpoint should be active before one is reached")
	}
	if !SetCheckpoint(w, p, a) {
		t.Fatalf("first checkpoint should activate")
	}
	evts := ecs.Events(w).Drain()
	if len(evts) != 1 || evts[0].Kind != ecs.EventCheckpointReached || evts[0].Name != "a" {
		t.Fatalf("unexpected events %v", evts)
	}
	if SetCheckpoint(w, p, a) {
		t.Fatalf("setting the current checkpoint again must be a no-op")
	}
	if !SetCheckpoint(w, p, b) {
		t.Fatalf("switching checkpoints should succeed")
	}
	if get(t, w, a, component.CheckpointComponent.Kind()).Active {
		t.Fatalf("previous checkpoint must be deactivated")
	}
	if get(t, w, p, component.HealthComponent.Kind()).Checkpoint != uint64(b) {
		t.Fatalf("health must reference the new checkpoint")
	}
}

func TestCheckpointExclusivity(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	cps := make([]ecs.Entity, 5)
	for i := range cps {
		cps[i] = newCheckpoint(t, w, string(rune('a'+i)), float64(i*100))
	}

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		SetCheckpoint(w, p, cps[r.IntN(len(cps))])
		if n := activeCheckpoints(w); n != 1 {
			t.Fatalf("step %d: expected exactly one active checkpoint, got %d", i, n)
		}
	}
}

func TestCheckpointSystemActivatesOnOverlap(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	c := newCheckpoint(t, w, "gate", 300)
	sys := NewCheckpointSystem()

	sys.Update(w)
	if get(t, w, c, component.CheckpointComponent.Kind()).Active {
		t.Fatalf("checkpoint far away must stay inactive")
	}

	get(t, w, p, component.TransformComponent.Kind()).X = 305
	sys.Update(w)
	if !get(t, w, c, component.CheckpointComponent.Kind()).Active {
		t.Fatalf("expected checkpoint to activate on overlap")
	}
	reqs := get(t, w, p, component.SFXComponent.Kind()).Requests
	if len(reqs) != 1 || reqs[0] != "checkpoint" {
		t.Fatalf("expected checkpoint sfx, got %v", reqs)
	}
}
