package entity

import (
	"fmt"
	"log"
	"strings"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/dummyworks/crashtestescape/levels"
)

// propComponent is the component a level entity's flat props are merged
// into. Types missing here only understand the shared props.
var propComponent = map[string]string{
	"player":          "player_motor",
	"camera":          "camera",
	"spike":           "hazard",
	"checkpoint":      "checkpoint",
	"conveyor":        "conveyor",
	"motion_detector": "motion_detector",
	"piston":          "piston",
	"exit":            "level_exit",
}

// Props every entity type understands.
const (
	propID       = "id"
	propPrefab   = "prefab"
	propSchedule = "schedule"
	propWidth    = "width"
)

// LoadedLevel is what the game loop needs to know about a freshly loaded level.
type LoadedLevel struct {
	Player      ecs.Entity
	Checkpoints map[string]ecs.Entity
	// Resumed is set when the player starts at a saved checkpoint.
	Resumed bool
}

// LoadLevelToWorld fills w with lvl: merged ground colliders, the tile map,
// level bounds and every authored entity. When resume names a checkpoint of
// this level the player starts there with that checkpoint active.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, resume string) (*LoadedLevel, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load level: nil world or level")
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	size := float64(lvl.Size())
	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * size,
		Height: float64(lvl.Height) * size,
	}); err != nil {
		return nil, fmt.Errorf("load level: add bounds: %w", err)
	}
	if err := addGround(w, lvl); err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}

	out := &LoadedLevel{Checkpoints: map[string]ecs.Entity{}}
	named := map[string]ecs.Entity{}
	var spawn ecs.Entity
	hasCamera := false

	for i, ent := range lvl.Entities {
		typ := strings.ToLower(strings.TrimSpace(ent.Type))
		e, err := buildLevelEntity(w, typ, ent)
		if err != nil {
			return nil, fmt.Errorf("load level %q: entity %d (%s): %w", lvl.Name, i, typ, err)
		}
		if id := ent.Prop(propID); id != "" {
			if _, dup := named[id]; dup {
				return nil, fmt.Errorf("load level %q: duplicate id %q", lvl.Name, id)
			}
			named[id] = e
			if ecs.Has(w, e, component.CheckpointComponent.Kind()) {
				out.Checkpoints[id] = e
			}
		}

		switch {
		case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
			if out.Player.Valid() {
				return nil, fmt.Errorf("load level %q: more than one player", lvl.Name)
			}
			out.Player = e
		case ecs.Has(w, e, component.SpawnPointTagComponent.Kind()):
			spawn = e
		case ecs.Has(w, e, component.CameraComponent.Kind()):
			hasCamera = true
		}
	}

	if err := linkDetectors(w, named); err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}

	if !out.Player.Valid() {
		x, y := 0.0, 0.0
		if t, ok := ecs.Get(w, spawn, component.TransformComponent.Kind()); ok {
			x, y = t.X, t.Y
		}
		p, err := NewPlayerAt(w, x, y)
		if err != nil {
			return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
		}
		out.Player = p
	}
	if !hasCamera {
		if _, err := NewCamera(w); err != nil {
			return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
		}
	}

	if resume != "" {
		cp, ok := out.Checkpoints[resume]
		if !ok {
			log.Printf("level: %q has no checkpoint %q, starting from the beginning", lvl.Name, resume)
		} else if err := resumeAt(w, out.Player, cp); err != nil {
			return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
		} else {
			out.Resumed = true
		}
	}
	return out, nil
}

func buildLevelEntity(w *ecs.World, typ string, ent levels.Entity) (ecs.Entity, error) {
	prefab := typ
	if p := ent.Prop(propPrefab); p != "" {
		prefab = p
	}

	overrides := Overrides{}
	if target, ok := propComponent[typ]; ok {
		fields := map[string]any{}
		for k, v := range ent.Props {
			switch k {
			case propID, propPrefab, propSchedule:
				continue
			}
			fields[k] = v
		}
		if len(fields) > 0 {
			overrides[target] = fields
		}
	}
	if id := ent.Prop(propID); id != "" {
		overrides["named"] = map[string]any{"name": id}
	}
	if s := ent.Prop(propSchedule); s != "" {
		overrides["schedule"] = map[string]any{"script": s}
	}
	if width, ok := ent.Props[propWidth]; ok && typ == "conveyor" {
		overrides["physics_body"] = map[string]any{"width": width}
	}

	e, err := BuildEntityWith(w, prefab, overrides)
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, float64(ent.X), float64(ent.Y)); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

// addGround turns solid tiles into as few static ground bodies as possible
// and records the rectangles for drawing.
func addGround(w *ecs.World, lvl *levels.Level) error {
	size := float64(lvl.Size())
	rects := lvl.SolidRects()
	tm := &component.TileMap{
		TileSize: size,
		Rects:    make([]component.TileRect, 0, len(rects)),
		Fill:     toRGBA(tuning.TileFill),
		Edge:     toRGBA(tuning.TileEdge),
	}

	for _, r := range rects {
		px := component.TileRect{
			X: float64(r.X) * size,
			Y: float64(r.Y) * size,
			W: float64(r.W) * size,
			H: float64(r.H) * size,
		}
		tm.Rects = append(tm.Rects, px)

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X:      px.X + px.W/2,
			Y:      px.Y + px.H/2,
			ScaleX: 1,
			ScaleY: 1,
		}); err != nil {
			return fmt.Errorf("ground: add transform: %w", err)
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:    px.W,
			Height:   px.H,
			Friction: 1,
			Static:   true,
			Surface:  component.SurfaceGround,
		}); err != nil {
			return fmt.Errorf("ground: add physics body: %w", err)
		}
		if err := ecs.Add(w, e, component.StaticTileComponent.Kind(), &component.StaticTile{}); err != nil {
			return fmt.Errorf("ground: add static tile: %w", err)
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TileMapComponent.Kind(), tm); err != nil {
		return fmt.Errorf("ground: add tile map: %w", err)
	}
	return nil
}

// linkDetectors resolves each detector's piston id to the piston entity.
func linkDetectors(w *ecs.World, named map[string]ecs.Entity) error {
	var err error
	ecs.ForEach(w, component.MotionDetectorComponent.Kind(), func(e ecs.Entity, d *component.MotionDetector) {
		if err != nil || d.PistonName == "" {
			return
		}
		target, ok := named[d.PistonName]
		if !ok || !ecs.Has(w, target, component.PistonComponent.Kind()) {
			err = fmt.Errorf("motion detector: no piston with id %q", d.PistonName)
			return
		}
		d.Piston = uint64(target)
	})
	return err
}

func resumeAt(w *ecs.World, player, cp ecs.Entity) error {
	c, ok := ecs.Get(w, cp, component.CheckpointComponent.Kind())
	if !ok {
		return fmt.Errorf("resume: entity %v is not a checkpoint", cp)
	}
	if err := SetEntityTransform(w, player, c.SpawnX, c.SpawnY, 0); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		h.Checkpoint = uint64(cp)
	}
	c.Active = true
	return nil
}
