package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.json order.yaml
var LevelsFS embed.FS

const DefaultTileSize = 32

// Level is a hand-authored map. Tiles holds one string per row; '#' is a
// solid tile and anything else is empty. Entity positions are in pixels.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TileSize int      `json:"tile_size,omitempty"`
	Tiles    []string `json:"tiles"`
	Entities []Entity `json:"entities,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Prop returns a string property, "" when absent.
func (e Entity) Prop(key string) string {
	v, ok := e.Props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (l *Level) Size() int {
	if l.TileSize <= 0 {
		return DefaultTileSize
	}
	return l.TileSize
}

func (l *Level) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height || y >= len(l.Tiles) {
		return false
	}
	row := l.Tiles[y]
	return x < len(row) && row[x] == '#'
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level %q: size %dx%d", l.Name, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Height {
		return fmt.Errorf("level %q: %d tile rows, want %d", l.Name, len(l.Tiles), l.Height)
	}
	for y, row := range l.Tiles {
		if len(row) != l.Width {
			return fmt.Errorf("level %q: row %d has %d tiles, want %d", l.Name, y, len(row), l.Width)
		}
	}
	for i, ent := range l.Entities {
		if strings.TrimSpace(ent.Type) == "" {
			return fmt.Errorf("level %q: entity %d has no type", l.Name, i)
		}
	}
	return nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelName(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

type order struct {
	Levels []string `yaml:"levels"`
}

// Order lists the levels in play order.
func Order() ([]string, error) {
	data, err := fs.ReadFile(LevelsFS, "order.yaml")
	if err != nil {
		return nil, fmt.Errorf("read level order: %w", err)
	}
	var o order
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("unmarshal level order: %w", err)
	}
	if len(o.Levels) == 0 {
		return nil, fmt.Errorf("level order is empty")
	}
	out := make([]string, len(o.Levels))
	for i, name := range o.Levels {
		out[i] = cleanLevelName(name)
	}
	return out, nil
}

// Next returns the level after current, false when current is the last one
// or not in the order.
func Next(order []string, current string) (string, bool) {
	current = cleanLevelName(current)
	for i, name := range order {
		if name == current && i+1 < len(order) {
			return order[i+1], true
		}
	}
	return "", false
}

func cleanLevelName(name string) string {
	name = strings.TrimPrefix(name, "levels/")
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}

// Canonical returns the name levels are keyed by in the order list and in
// saved progress, e.g. "levels/level_01" -> "level_01.json".
func Canonical(name string) string {
	return cleanLevelName(name)
}
