package component

// MotionDetector watches a zone while On. ArmFrames counts down to the
// piston trigger and is -1 when nothing is pending.
type MotionDetector struct {
	On           bool
	Alerted      bool
	ToggleFrames int
	Duration     int
	PistonBuffer int
	ArmFrames    int
	ZoneW        float64
	ZoneH        float64
	ZoneOffsetX  float64
	ZoneOffsetY  float64
	Piston       uint64
	PistonName   string
	Cycle        int
}

var MotionDetectorComponent = NewComponent[MotionDetector]()
