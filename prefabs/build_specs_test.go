package prefabs

import "testing"

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{
		"speed":          -2,
		"movement_delay": 1.5,
		"start_stopped":  true,
		"unknown_field":  "ignored",
	}
	spec, err := DecodeComponentSpec[ConveyorComponentSpec](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Speed != -2 || spec.MovementDelay != 1.5 || !spec.StartStopped {
		t.Fatalf("spec = %+v", spec)
	}

	empty, err := DecodeComponentSpec[HealthComponentSpec](nil)
	if err != nil || empty != (HealthComponentSpec{}) {
		t.Fatalf("nil raw = %+v, %v", empty, err)
	}

	if _, err := DecodeComponentSpec[HealthComponentSpec](map[string]any{"max": "lots"}); err == nil {
		t.Fatalf("expected a type error")
	}
}

func TestPrefabsDecode(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	for _, name := range names {
		if name == "game.yaml" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name == "" || len(spec.Components) == 0 {
				t.Fatalf("%s: name %q with %d components", name, spec.Name, len(spec.Components))
			}
			if raw, ok := spec.Components["animation"]; ok {
				anim, err := DecodeComponentSpec[AnimationComponentSpec](raw)
				if err != nil {
					t.Fatalf("animation: %v", err)
				}
				if _, ok := anim.Defs[anim.Current]; !ok {
					t.Fatalf("current clip %q not among defs", anim.Current)
				}
			}
		})
	}
}
