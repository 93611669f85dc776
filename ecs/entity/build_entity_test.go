package entity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/dummyworks/crashtestescape/prefabs"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestMain(m *testing.M) {
	// No GPU in tests; sprites and sheets stay nil.
	loadImage = func(string) (*ebiten.Image, error) { return nil, nil }
	os.Exit(m.Run())
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v is missing a component", e)
	}
	return v
}

// withPrefabDir points prefab overrides at a temp dir holding the given files.
func withPrefabDir(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	old := prefabs.DiskRoot
	prefabs.DiskRoot = dir
	t.Cleanup(func() { prefabs.DiskRoot = old })
}

func TestBuildEveryPrefab(t *testing.T) {
	names, err := prefabs.Names()
	if err != nil {
		t.Fatalf("list prefabs: %v", err)
	}
	for _, name := range names {
		if name == "game.yaml" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, name)
			if err != nil {
				t.Fatalf("BuildEntity(%q): %v", name, err)
			}
			if !ecs.Has(w, e, component.TransformComponent.Kind()) {
				t.Fatalf("%s has no transform", name)
			}
		})
	}
}

func TestBuildPlayerDefaults(t *testing.T) {
	w := ecs.NewWorld()
	p, err := NewPlayerAt(w, 100, 200)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}

	tr := mustGet(t, w, p, component.TransformComponent.Kind())
	if tr.X != 100 || tr.Y != 200 || tr.ScaleX != 1 {
		t.Fatalf("transform = %+v", tr)
	}
	m := mustGet(t, w, p, component.PlayerMotorComponent.Kind())
	if m.JumpLength != 12 || m.CrushRecovery != 60 {
		t.Fatalf("durations not converted to frames: jump=%d crush=%d", m.JumpLength, m.CrushRecovery)
	}
	if m.StandHeight != 40 || m.CrouchHeight != 24 {
		t.Fatalf("heights = %v/%v, want 40/24", m.StandHeight, m.CrouchHeight)
	}
	h := mustGet(t, w, p, component.HealthComponent.Kind())
	if h.Max != 3 || h.Current != 3 || !h.Alive || h.RespawnDelay != 60 {
		t.Fatalf("health = %+v", h)
	}
	if h.InitialX != 100 || h.InitialY != 200 {
		t.Fatalf("initial position = %v,%v", h.InitialX, h.InitialY)
	}
	if f := mustGet(t, w, p, component.FrictionComponent.Kind()); f.Original != 0.8 {
		t.Fatalf("friction original = %v, want 0.8", f.Original)
	}
	anim := mustGet(t, w, p, component.AnimationComponent.Kind())
	if anim.Current != "idle" || !anim.Playing || len(anim.Defs) != 9 {
		t.Fatalf("animation = %q playing=%v defs=%d", anim.Current, anim.Playing, len(anim.Defs))
	}
}

func TestBuildDefaultSubstitution(t *testing.T) {
	withPrefabDir(t, map[string]string{
		"bare_spike.yaml": "name: bare_spike\ncomponents:\n  transform: {}\n  hazard: {}\n",
		"bare_box.yaml":   "name: bare_box\ncomponents:\n  transform: {}\n  physics_body: {}\n  health: {}\n",
		"bare_belt.yaml":  "name: bare_belt\ncomponents:\n  transform: {}\n  physics_body:\n    static: true\n  conveyor: {}\n",
	})

	w := ecs.NewWorld()
	spike, err := BuildEntity(w, "bare_spike")
	if err != nil {
		t.Fatalf("build spike: %v", err)
	}
	hz := mustGet(t, w, spike, component.HazardComponent.Kind())
	if hz.Damage != 1 || hz.KnockbackX != 6 || hz.KnockbackY != 7 || hz.InvulnerableFrames != 60 {
		t.Fatalf("hazard defaults = %+v", hz)
	}

	box, err := BuildEntity(w, "bare_box")
	if err != nil {
		t.Fatalf("build box: %v", err)
	}
	body := mustGet(t, w, box, component.PhysicsBodyComponent.Kind())
	if body.Friction != 1 || body.Mass != 1 || body.Width != 32 {
		t.Fatalf("physics defaults = %+v", body)
	}
	if h := mustGet(t, w, box, component.HealthComponent.Kind()); h.Max != 3 {
		t.Fatalf("health max = %d, want 3", h.Max)
	}

	belt, err := BuildEntity(w, "bare_belt")
	if err != nil {
		t.Fatalf("build belt: %v", err)
	}
	c := mustGet(t, w, belt, component.ConveyorComponent.Kind())
	if !c.Active || c.MovementDelay != 60 || c.ToggleFrames != 60 || c.Speed != 2 {
		t.Fatalf("conveyor defaults = %+v", c)
	}
	bb := mustGet(t, w, belt, component.PhysicsBodyComponent.Kind())
	if bb.Surface != component.SurfaceMovingPlatform || bb.Friction != 0 {
		t.Fatalf("running belt body = %+v", bb)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	withPrefabDir(t, map[string]string{
		"unknown.yaml":   "name: unknown\ncomponents:\n  jetpack: {}\n",
		"empty.yaml":     "name: empty\n",
		"badanim.yaml":   "name: badanim\ncomponents:\n  sprite: {}\n  animation:\n    current: walk\n    defs:\n      idle: { frame_count: 1, frame_w: 8, frame_h: 8 }\n",
		"badcrouch.yaml": "name: badcrouch\ncomponents:\n  physics_body:\n    height: 20\n  player_motor:\n    crouch_height: 30\n",
		"badsurf.yaml":   "name: badsurf\ncomponents:\n  physics_body:\n    surface: lava\n",
		"lonely.yaml":    "name: lonely\ncomponents:\n  friction: {}\n",
	})

	cases := []struct {
		name   string
		prefab string
		want   string
	}{
		{"missing_file", "does_not_exist", "load"},
		{"unknown_component", "unknown", "no builder"},
		{"no_components", "empty", "does not define components"},
		{"undefined_clip", "badanim", "current clip"},
		{"crouch_taller_than_stand", "badcrouch", "crouch_height"},
		{"unknown_surface", "badsurf", "surface"},
		{"friction_without_body", "lonely", "requires physics_body"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntity(w, c.prefab)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want mention of %q", err, c.want)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build left %d entities behind", n)
			}
		})
	}
}

func TestBuildEntityWithOverrides(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntityWith(w, "conveyor", Overrides{
		"physics_body": {"width": 192},
		"conveyor":     {"speed": -3, "start_stopped": true},
		"named":        {"name": "belt_a"},
	})
	if err != nil {
		t.Fatalf("BuildEntityWith: %v", err)
	}

	body := mustGet(t, w, e, component.PhysicsBodyComponent.Kind())
	if body.Width != 192 || body.Height != 16 {
		t.Fatalf("body size = %vx%v, want 192x16", body.Width, body.Height)
	}
	c := mustGet(t, w, e, component.ConveyorComponent.Kind())
	if c.Speed != -3 || c.Active || c.Width != 192 {
		t.Fatalf("conveyor = %+v", c)
	}
	if body.Friction != c.StoppedFriction {
		t.Fatalf("stopped belt friction = %v, want %v", body.Friction, c.StoppedFriction)
	}
	if tr := mustGet(t, w, e, component.TransformComponent.Kind()); tr.ScaleX != 2 {
		t.Fatalf("belt scale = %v, want 2", tr.ScaleX)
	}
	if n := mustGet(t, w, e, component.NamedComponent.Kind()); n.Name != "belt_a" {
		t.Fatalf("name = %q", n.Name)
	}
}

func TestMergeOverridesLeavesPrefabUntouched(t *testing.T) {
	base := map[string]any{"conveyor": map[string]any{"speed": 2}}
	out := mergeOverrides(base, Overrides{"conveyor": {"speed": 5}})
	if base["conveyor"].(map[string]any)["speed"] != 2 {
		t.Fatalf("base spec was mutated")
	}
	if out["conveyor"].(map[string]any)["speed"] != 5 {
		t.Fatalf("override not applied: %v", out)
	}
}

func TestPlaceReanchors(t *testing.T) {
	w := ecs.NewWorld()
	cp, err := SpawnPrefab(w, "checkpoint", 300, 416)
	if err != nil {
		t.Fatalf("spawn checkpoint: %v", err)
	}
	c := mustGet(t, w, cp, component.CheckpointComponent.Kind())
	if c.SpawnX != 300+c.SpawnOffsetX || c.SpawnY != 416+c.SpawnOffsetY {
		t.Fatalf("spawn = %v,%v", c.SpawnX, c.SpawnY)
	}

	piston, err := SpawnPrefab(w, "piston", 64, 128)
	if err != nil {
		t.Fatalf("spawn piston: %v", err)
	}
	p := mustGet(t, w, piston, component.PistonComponent.Kind())
	if p.BaseX != 64 || p.BaseY != 128 {
		t.Fatalf("piston base = %v,%v", p.BaseX, p.BaseY)
	}
	if p.ExtendFrames != 9 || p.HoldFrames != 30 || p.RetractFrames != 36 {
		t.Fatalf("piston frames = %d/%d/%d", p.ExtendFrames, p.HoldFrames, p.RetractFrames)
	}
}
