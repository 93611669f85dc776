package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the global tuning in game.yaml. Durations are seconds.
type GameSpec struct {
	Title            string     `yaml:"title"`
	Gravity          float64    `yaml:"gravity"`
	RespawnDelay     float64    `yaml:"respawn_delay"`
	InvulnerableTime float64    `yaml:"invulnerable_time"`
	TileSize         float64    `yaml:"tile_size"`
	Background       *YAMLColor `yaml:"background"`
	TileFill         *YAMLColor `yaml:"tile_fill"`
	TileEdge         *YAMLColor `yaml:"tile_edge"`
}

// DefaultGameSpec is used for any field game.yaml leaves unset.
func DefaultGameSpec() GameSpec {
	return GameSpec{
		Title:            "Crash Test Escape",
		Gravity:          0.45,
		RespawnDelay:     1,
		InvulnerableTime: 1,
		TileSize:         32,
		Background:       &YAMLColor{Color: color.NRGBA{R: 0x1b, G: 0x1e, B: 0x26, A: 0xff}},
		TileFill:         &YAMLColor{Color: color.NRGBA{R: 0x4a, G: 0x50, B: 0x5c, A: 0xff}},
		TileEdge:         &YAMLColor{Color: color.NRGBA{R: 0xf2, G: 0xc1, B: 0x2e, A: 0xff}},
	}
}

func LoadGameSpec() (GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return DefaultGameSpec(), err
	}
	def := DefaultGameSpec()
	if strings.TrimSpace(spec.Title) == "" {
		spec.Title = def.Title
	}
	if spec.Gravity <= 0 {
		spec.Gravity = def.Gravity
	}
	if spec.RespawnDelay <= 0 {
		spec.RespawnDelay = def.RespawnDelay
	}
	if spec.InvulnerableTime <= 0 {
		spec.InvulnerableTime = def.InvulnerableTime
	}
	if spec.TileSize <= 0 {
		spec.TileSize = def.TileSize
	}
	if spec.Background == nil {
		spec.Background = def.Background
	}
	if spec.TileFill == nil {
		spec.TileFill = def.TileFill
	}
	if spec.TileEdge == nil {
		spec.TileEdge = def.TileEdge
	}
	return spec, nil
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

// NRGBA returns the color as straight alpha, white when unset.
func (c *YAMLColor) NRGBA() color.NRGBA {
	if c == nil || c.Color == nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	var parts [4]uint8
	parts[3] = 0xff
	for i := 0; i*2 < len(s); i++ {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", v, err)
		}
		parts[i] = uint8(n)
	}
	return color.NRGBA{R: parts[0], G: parts[1], B: parts[2], A: parts[3]}, nil
}
