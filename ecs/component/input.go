package component

// Input stores per-tick input state for the player. Held flags mirror the
// buttons; *Pressed/*Released are edges valid for exactly one tick.
type Input struct {
	MoveX         float64
	MoveY         float64
	Jump          bool
	JumpPressed   bool
	JumpReleased  bool
	Crouch        bool
	Shove         bool
	ShovePressed  bool
	ShoveReleased bool
	Pause         bool
}

var InputComponent = NewComponent[Input]()
