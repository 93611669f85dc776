package component

// PlayerMotor holds the player's movement tuning and the per-tick control
// flags the controllers consult. Durations are in frames.
type PlayerMotor struct {
	Acceleration     float64
	MaxSpeed         float64
	MaxJumpSpeed     float64
	FlipThreshold    float64
	CrouchSpeedScale float64
	MotionEpsilon    float64
	JumpImpulse      float64
	JumpHoldBoost    float64
	JumpLength       int
	StandHeight      float64
	CrouchHeight     float64
	ShoveReach       float64
	ShoveHeight      float64
	ShoveForce       float64
	CrushRecovery    int

	Crouching      bool
	Shoving        bool
	Crushed        bool
	CrushFrames    int
	Jumping        bool
	JumpHoldFrames int
	FacingLeft     bool
	Moving         bool
	// ShovePulse asks the shove system to push whatever is in reach this tick.
	ShovePulse bool
	// BeltVX is the conveyor velocity added to the player this tick.
	BeltVX float64
}

var PlayerMotorComponent = NewComponent[PlayerMotor]()

// ApplyDefaults fills unset tuning with the stock values.
func (m *PlayerMotor) ApplyDefaults() {
	if m == nil {
		return
	}
	setDefault(&m.Acceleration, 0.6)
	setDefault(&m.MaxSpeed, 4.5)
	setDefault(&m.MaxJumpSpeed, 10)
	setDefault(&m.FlipThreshold, 0.1)
	setDefault(&m.CrouchSpeedScale, 0.4)
	setDefault(&m.MotionEpsilon, 0.05)
	setDefault(&m.JumpImpulse, 8)
	setDefault(&m.JumpHoldBoost, 0.35)
	setDefault(&m.ShoveReach, 20)
	setDefault(&m.ShoveForce, 10)
	if m.JumpLength <= 0 {
		m.JumpLength = 12
	}
	if m.CrushRecovery <= 0 {
		m.CrushRecovery = 60
	}
	if m.StandHeight > 0 {
		setDefault(&m.CrouchHeight, m.StandHeight*0.6)
		setDefault(&m.ShoveHeight, m.StandHeight*0.8)
	}
}

func setDefault(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}
