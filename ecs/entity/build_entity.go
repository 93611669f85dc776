package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/dummyworks/crashtestescape/assets"
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/dummyworks/crashtestescape/prefabs"
	"github.com/hajimehoshi/ebiten/v2"
)

// loadImage is swapped out by tests that build entities without a GPU.
var loadImage = assets.LoadImage

var tuning = prefabs.DefaultGameSpec()

// Configure sets the global tuning used for defaults that prefabs leave out.
func Configure(spec prefabs.GameSpec) {
	tuning = spec
}

// Overrides replace prefab component fields, keyed by component then field.
type Overrides map[string]map[string]any

type buildContext struct {
	PrefabPath   string
	centerOrigin bool
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"camera_tag":      addCameraTag,
	"spawn_point_tag": addSpawnPointTag,
	"input":           addInput,
	"sfx":             addSFX,
	"transform":       addTransform,
	"sprite":          addSprite,
	"animation":       addAnimation,
	"render_layer":    addRenderLayer,
	"physics_body":    addPhysicsBody,
	"ground_check":    addGroundCheck,
	"friction":        addFriction,
	"health":          addHealth,
	"player_motor":    addPlayerMotor,
	"camera":          addCamera,
	"hazard":          addHazard,
	"checkpoint":      addCheckpoint,
	"conveyor":        addConveyor,
	"schedule":        addSchedule,
	"motion_detector": addMotionDetector,
	"piston":          addPiston,
	"shoveable":       addShoveable,
	"level_exit":      addLevelExit,
	"named":           addNamed,
}

// Later builders read what earlier ones added: friction and player_motor
// need the physics body, animation needs the sprite.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"spawn_point_tag",
	"input",
	"sfx",
	"transform",
	"sprite",
	"animation",
	"render_layer",
	"physics_body",
	"ground_check",
	"friction",
	"health",
	"player_motor",
	"camera",
	"hazard",
	"checkpoint",
	"conveyor",
	"schedule",
	"motion_detector",
	"piston",
	"shoveable",
	"level_exit",
	"named",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, nil)
}

// BuildEntityWith builds a prefab after merging overrides into its component
// specs. An override for a component the prefab lacks adds that component.
func BuildEntityWith(w *ecs.World, prefabPath string, overrides Overrides) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	components := mergeOverrides(spec.Components, overrides)
	for name := range components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}
	for _, name := range componentBuildOrder {
		raw, ok := components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

func mergeOverrides(base map[string]any, overrides Overrides) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		merged := map[string]any{}
		if m, ok := out[name].(map[string]any); ok {
			for k, v := range m {
				merged[k] = v
			}
		}
		for k, v := range overrides[name] {
			merged[k] = v
		}
		out[name] = merged
	}
	return out
}

// SpawnPrefab builds a prefab and places it at x, y.
func SpawnPrefab(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// Place moves an entity and re-anchors everything that remembers where it
// was put: piston rest position, checkpoint spawn point and the player's
// fallback respawn position.
func Place(w *ecs.World, e ecs.Entity, x, y float64) error {
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		return err
	}
	if p, ok := ecs.Get(w, e, component.PistonComponent.Kind()); ok {
		p.BaseX = x
		p.BaseY = y
	}
	if c, ok := ecs.Get(w, e, component.CheckpointComponent.Kind()); ok {
		c.SpawnX = x + c.SpawnOffsetX
		c.SpawnY = y + c.SpawnOffsetY
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.InitialX = x
		h.InitialY = y
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addSpawnPointTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SpawnPointTagComponent.Kind(), &component.SpawnPointTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addSFX(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SFXComponent.Kind(), &component.SFX{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   common.OrDefault(spec.ScaleX, 1),
		ScaleY:   common.OrDefault(spec.ScaleY, 1),
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := loadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if spec.CenterOrigin && sprite.OriginX == 0 && sprite.OriginY == 0 {
		if sprite.Image != nil {
			b := sprite.Image.Bounds()
			sprite.OriginX = float64(b.Dx()) / 2
			sprite.OriginY = float64(b.Dy()) / 2
		} else {
			ctx.centerOrigin = true
		}
	}
	sprite.FacingLeft = spec.FacingLeft
	if spec.Tint != nil {
		sprite.Tint = spec.Tint.NRGBA()
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if len(spec.Defs) == 0 {
		return fmt.Errorf("animation has no defs")
	}
	var sheet *ebiten.Image
	if spec.Sheet != "" {
		sheet, err = loadImage(spec.Sheet)
		if err != nil {
			return fmt.Errorf("load animation sheet %q: %w", spec.Sheet, err)
		}
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		if def.FrameCount <= 0 || def.FrameW <= 0 || def.FrameH <= 0 {
			return fmt.Errorf("animation %q: frame_count, frame_w and frame_h must be positive", name)
		}
		defs[name] = component.AnimationDef{
			Name:       name,
			Row:        def.Row,
			FrameCount: def.FrameCount,
			FrameW:     def.FrameW,
			FrameH:     def.FrameH,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}

	current := spec.Current
	if _, ok := defs[current]; !ok {
		return fmt.Errorf("animation: current clip %q is not defined", current)
	}
	playing := true
	if spec.Playing != nil {
		playing = *spec.Playing
	}

	if ctx.centerOrigin {
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			s.OriginX = float64(defs[current].FrameW) / 2
			s.OriginY = float64(defs[current].FrameH) / 2
		}
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Sheet:   sheet,
		Defs:    defs,
		Current: current,
		Playing: playing,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Static && spec.Kinematic {
		return fmt.Errorf("physics body cannot be both static and kinematic")
	}
	switch spec.Surface {
	case component.SurfaceNone, component.SurfaceGround, component.SurfaceMovingPlatform:
	default:
		return fmt.Errorf("unknown surface %q", spec.Surface)
	}

	mass := spec.Mass
	if !spec.Static && !spec.Kinematic && mass <= 0 {
		mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        common.OrDefault(spec.Width, 32),
		Height:       common.OrDefault(spec.Height, 32),
		Mass:         mass,
		Friction:     common.OrDefault(spec.Friction, 1),
		Elasticity:   spec.Elasticity,
		Static:       spec.Static,
		Kinematic:    spec.Kinematic,
		LockRotation: spec.LockRotation,
		Sensor:       spec.Sensor,
		Surface:      spec.Surface,
	})
}

func addGroundCheck(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GroundCheckComponent.Kind(), &component.GroundCheck{})
}

func addFriction(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return fmt.Errorf("friction requires physics_body on the same entity")
	}
	return ecs.Add(w, e, component.FrictionComponent.Kind(), &component.Friction{Original: body.Friction})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	max := common.OrDefaultInt(spec.Max, 3)
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Max:          max,
		Current:      max,
		Alive:        true,
		RespawnDelay: common.SecondsToFrames(common.OrDefault(spec.RespawnDelay, tuning.RespawnDelay)),
	})
}

type playerMotorSpec = prefabs.PlayerMotorComponentSpec

func addPlayerMotor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerMotorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player motor spec: %w", err)
	}
	m := &component.PlayerMotor{
		Acceleration:     spec.Acceleration,
		MaxSpeed:         spec.MaxSpeed,
		MaxJumpSpeed:     spec.MaxJumpSpeed,
		FlipThreshold:    spec.FlipThreshold,
		CrouchSpeedScale: spec.CrouchSpeedScale,
		MotionEpsilon:    spec.MotionEpsilon,
		JumpImpulse:      spec.JumpImpulse,
		JumpHoldBoost:    spec.JumpHoldBoost,
		JumpLength:       common.SecondsToFrames(spec.JumpLength),
		CrouchHeight:     spec.CrouchHeight,
		ShoveReach:       spec.ShoveReach,
		ShoveHeight:      spec.ShoveHeight,
		ShoveForce:       spec.ShoveForce,
		CrushRecovery:    common.SecondsToFrames(spec.CrushRecovery),
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		m.StandHeight = body.Height
	}
	m.ApplyDefaults()
	if m.StandHeight > 0 && m.CrouchHeight >= m.StandHeight {
		return fmt.Errorf("crouch_height %v must be below the standing height %v", m.CrouchHeight, m.StandHeight)
	}
	return ecs.Add(w, e, component.PlayerMotorComponent.Kind(), m)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Target:     spec.Target,
		Smoothness: spec.Smoothness,
		ViewW:      common.BaseWidth,
		ViewH:      common.BaseHeight,
		Snap:       true,
	})
}

type hazardSpec = prefabs.HazardComponentSpec

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hazardSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hazard spec: %w", err)
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Damage:             common.OrDefaultInt(spec.Damage, 1),
		Width:              common.OrDefault(spec.Width, 32),
		Height:             common.OrDefault(spec.Height, 16),
		OffsetX:            spec.OffsetX,
		OffsetY:            spec.OffsetY,
		KnockbackX:         common.OrDefault(spec.KnockbackX, 6),
		KnockbackY:         common.OrDefault(spec.KnockbackY, 7),
		KnockbackLock:      common.SecondsToFrames(common.OrDefault(spec.KnockbackLock, 0.4)),
		InvulnerableFrames: common.SecondsToFrames(common.OrDefault(spec.InvulnerableTime, tuning.InvulnerableTime)),
	})
}

func addCheckpoint(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CheckpointComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode checkpoint spec: %w", err)
	}
	return ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{
		Width:        common.OrDefault(spec.Width, 24),
		Height:       common.OrDefault(spec.Height, 64),
		SpawnOffsetX: spec.SpawnOffsetX,
		SpawnOffsetY: spec.SpawnOffsetY,
	})
}

type conveyorSpec = prefabs.ConveyorComponentSpec

func addConveyor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[conveyorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode conveyor spec: %w", err)
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return fmt.Errorf("conveyor requires physics_body on the same entity")
	}
	body.Surface = component.SurfaceMovingPlatform

	speed := spec.Speed
	if speed == 0 {
		speed = 2
	}
	delay := common.SecondsToFrames(common.OrDefault(spec.MovementDelay, 1))
	c := &component.Conveyor{
		Active:          !spec.StartStopped,
		ToggleFrames:    delay,
		MovementDelay:   delay,
		Speed:           speed,
		StoppedFriction: common.OrDefault(spec.StoppedFriction, 1),
		Width:           body.Width,
		Height:          body.Height,
		SpawnPrefab:     strings.TrimSpace(spec.SpawnPrefab),
		SpawnInterval:   common.SecondsToFrames(spec.SpawnInterval),
		SpawnOffsetX:    spec.SpawnOffsetX,
		SpawnOffsetY:    spec.SpawnOffsetY,
	}
	c.SpawnFrames = c.SpawnInterval
	if c.Active {
		body.Friction = 0
	} else {
		body.Friction = c.StoppedFriction
	}

	// The belt art is one fixed-width strip stretched to the collider.
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.ScaleX = body.Width / assets.BeltW
	}
	return ecs.Add(w, e, component.ConveyorComponent.Kind(), c)
}

func addSchedule(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScheduleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode schedule spec: %w", err)
	}
	if strings.TrimSpace(spec.Script) == "" {
		return nil
	}
	if _, err := prefabs.LoadScript(spec.Script); err != nil {
		return fmt.Errorf("schedule script %q: %w", spec.Script, err)
	}
	return ecs.Add(w, e, component.ScheduleComponent.Kind(), &component.Schedule{Script: spec.Script})
}

type motionDetectorSpec = prefabs.MotionDetectorComponentSpec

func addMotionDetector(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[motionDetectorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode motion detector spec: %w", err)
	}
	duration := common.SecondsToFrames(common.OrDefault(spec.Duration, 2))
	return ecs.Add(w, e, component.MotionDetectorComponent.Kind(), &component.MotionDetector{
		On:           spec.StartOn,
		ToggleFrames: duration,
		Duration:     duration,
		PistonBuffer: common.SecondsToFrames(common.OrDefault(spec.PistonBuffer, 0.25)),
		ArmFrames:    -1,
		ZoneW:        common.OrDefault(spec.ZoneW, 96),
		ZoneH:        common.OrDefault(spec.ZoneH, 96),
		ZoneOffsetX:  spec.ZoneOffsetX,
		ZoneOffsetY:  spec.ZoneOffsetY,
		PistonName:   strings.TrimSpace(spec.Piston),
	})
}

func addPiston(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PistonComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode piston spec: %w", err)
	}
	headW, headH := spec.HeadW, spec.HeadH
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		headW = common.OrDefault(headW, body.Width)
		headH = common.OrDefault(headH, body.Height)
	}
	p := &component.Piston{
		ExtendFrames:  common.SecondsToFrames(common.OrDefault(spec.ExtendTime, 0.15)),
		HoldFrames:    common.SecondsToFrames(common.OrDefault(spec.RetractTime, 0.5)),
		RetractFrames: common.SecondsToFrames(common.OrDefault(spec.ReturnTime, 0.6)),
		Travel:        common.OrDefault(spec.Travel, 64),
		HeadW:         common.OrDefault(headW, 64),
		HeadH:         common.OrDefault(headH, 24),
		CrushDamage:   common.OrDefaultInt(spec.CrushDamage, 1),
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		p.BaseX, p.BaseY = t.X, t.Y
	}
	return ecs.Add(w, e, component.PistonComponent.Kind(), p)
}

func addShoveable(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ShoveableComponent.Kind(), &component.Shoveable{})
}

func addLevelExit(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LevelExitComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode level exit spec: %w", err)
	}
	return ecs.Add(w, e, component.LevelExitComponent.Kind(), &component.LevelExit{
		Width:  common.OrDefault(spec.Width, 32),
		Height: common.OrDefault(spec.Height, 64),
	})
}

type namedSpec struct {
	Name string `yaml:"name"`
}

func addNamed(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[namedSpec](raw)
	if err != nil {
		return fmt.Errorf("decode named spec: %w", err)
	}
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("named: empty name")
	}
	return ecs.Add(w, e, component.NamedComponent.Kind(), &component.Named{Name: spec.Name})
}

func toRGBA(c *prefabs.YAMLColor) color.RGBA {
	n := c.NRGBA()
	r, g, b, a := n.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
