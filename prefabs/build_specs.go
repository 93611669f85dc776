package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab file: a name and a map of component name to
// that component's own spec.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Durations in component specs are authored in seconds.

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image        string     `yaml:"image"`
	OriginX      float64    `yaml:"origin_x"`
	OriginY      float64    `yaml:"origin_y"`
	CenterOrigin bool       `yaml:"center_origin"`
	FacingLeft   bool       `yaml:"facing_left"`
	Tint         *YAMLColor `yaml:"tint"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationDefComponentSpec struct {
	Row        int     `yaml:"row"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Sheet   string                               `yaml:"sheet"`
	Defs    map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current string                               `yaml:"current"`
	Playing *bool                                `yaml:"playing"`
}

type PhysicsBodyComponentSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Mass         float64 `yaml:"mass"`
	Friction     float64 `yaml:"friction"`
	Elasticity   float64 `yaml:"elasticity"`
	Static       bool    `yaml:"static"`
	Kinematic    bool    `yaml:"kinematic"`
	LockRotation bool    `yaml:"lock_rotation"`
	Sensor       bool    `yaml:"sensor"`
	Surface      string  `yaml:"surface"`
}

type PlayerMotorComponentSpec struct {
	Acceleration     float64 `yaml:"acceleration"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxJumpSpeed     float64 `yaml:"max_jump_speed"`
	FlipThreshold    float64 `yaml:"flip_threshold"`
	CrouchSpeedScale float64 `yaml:"crouch_speed_scale"`
	MotionEpsilon    float64 `yaml:"motion_epsilon"`
	JumpImpulse      float64 `yaml:"jump_impulse"`
	JumpHoldBoost    float64 `yaml:"jump_hold_boost"`
	JumpLength       float64 `yaml:"jump_length"`
	CrouchHeight     float64 `yaml:"crouch_height"`
	ShoveReach       float64 `yaml:"shove_reach"`
	ShoveHeight      float64 `yaml:"shove_height"`
	ShoveForce       float64 `yaml:"shove_force"`
	CrushRecovery    float64 `yaml:"crush_recovery"`
}

type HealthComponentSpec struct {
	Max          int     `yaml:"max"`
	RespawnDelay float64 `yaml:"respawn_delay"`
}

type CameraComponentSpec struct {
	Target     string  `yaml:"target"`
	Smoothness float64 `yaml:"smoothness"`
}

type HazardComponentSpec struct {
	Damage           int     `yaml:"damage"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	OffsetX          float64 `yaml:"offset_x"`
	OffsetY          float64 `yaml:"offset_y"`
	KnockbackX       float64 `yaml:"knockback_x"`
	KnockbackY       float64 `yaml:"knockback_y"`
	KnockbackLock    float64 `yaml:"knockback_lock"`
	InvulnerableTime float64 `yaml:"invulnerable_time"`
}

type CheckpointComponentSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	SpawnOffsetX float64 `yaml:"spawn_offset_x"`
	SpawnOffsetY float64 `yaml:"spawn_offset_y"`
}

type ConveyorComponentSpec struct {
	MovementDelay   float64 `yaml:"movement_delay"`
	Speed           float64 `yaml:"speed"`
	StoppedFriction float64 `yaml:"stopped_friction"`
	StartStopped    bool    `yaml:"start_stopped"`
	SpawnPrefab     string  `yaml:"spawn_prefab"`
	SpawnInterval   float64 `yaml:"spawn_interval"`
	SpawnOffsetX    float64 `yaml:"spawn_offset_x"`
	SpawnOffsetY    float64 `yaml:"spawn_offset_y"`
}

type MotionDetectorComponentSpec struct {
	Duration     float64 `yaml:"duration"`
	PistonBuffer float64 `yaml:"piston_buffer"`
	StartOn      bool    `yaml:"start_on"`
	ZoneW        float64 `yaml:"zone_w"`
	ZoneH        float64 `yaml:"zone_h"`
	ZoneOffsetX  float64 `yaml:"zone_offset_x"`
	ZoneOffsetY  float64 `yaml:"zone_offset_y"`
	Piston       string  `yaml:"piston"`
}

type PistonComponentSpec struct {
	ExtendTime  float64 `yaml:"extend_time"`
	RetractTime float64 `yaml:"retract_time"`
	ReturnTime  float64 `yaml:"return_time"`
	Travel      float64 `yaml:"travel"`
	HeadW       float64 `yaml:"head_w"`
	HeadH       float64 `yaml:"head_h"`
	CrushDamage int     `yaml:"crush_damage"`
}

type LevelExitComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ScheduleComponentSpec struct {
	Script string `yaml:"script"`
}
