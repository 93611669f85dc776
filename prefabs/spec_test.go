package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff8000", color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, false},
		{"1b1e26", color.NRGBA{R: 0x1b, G: 0x1e, B: 0x26, A: 0xff}, false},
		{"#00000080", color.NRGBA{A: 0x80}, false},
		{" #ABCDEF ", color.NRGBA{R: 0xab, G: 0xcd, B: 0xef, A: 0xff}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseHexColor(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ParseHexColor(%q) = %v, want error", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("ParseHexColor(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		Tint *YAMLColor `yaml:"tint"`
		None *YAMLColor `yaml:"none"`
	}
	if err := yaml.Unmarshal([]byte("tint: \"#102030\"\n"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := out.Tint.NRGBA(); got != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Fatalf("tint = %v", got)
	}
	if got := out.None.NRGBA(); got != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("unset color = %v, want white", got)
	}

	if err := yaml.Unmarshal([]byte("tint: [1, 2]\n"), &out); err == nil {
		t.Fatalf("expected an error for a non-scalar color")
	}
}

func TestLoadGameSpec(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if spec.Title != "Crash Test Escape" || spec.Gravity != 0.45 || spec.TileSize != 32 {
		t.Fatalf("game spec = %+v", spec)
	}
	if spec.TileEdge.NRGBA() != (color.NRGBA{R: 0xf2, G: 0xc1, B: 0x2e, A: 0xff}) {
		t.Fatalf("tile edge = %v", spec.TileEdge.NRGBA())
	}
}

func TestLoadGameSpecFillsDefaults(t *testing.T) {
	withDisk(t, map[string]string{"game.yaml": "title: \"\"\ngravity: 0.9\n"})
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	def := DefaultGameSpec()
	if spec.Gravity != 0.9 {
		t.Fatalf("gravity = %v, want the file's 0.9", spec.Gravity)
	}
	if spec.Title != def.Title || spec.RespawnDelay != def.RespawnDelay || spec.Background == nil {
		t.Fatalf("defaults not filled: %+v", spec)
	}
}
