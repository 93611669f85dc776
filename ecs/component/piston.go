package component

type PistonState int

const (
	PistonRetracted PistonState = iota
	PistonExtending
	PistonDown
	PistonRetracting
)

func (s PistonState) String() string {
	switch s {
	case PistonExtending:
		return "extending"
	case PistonDown:
		return "down"
	case PistonRetracting:
		return "retracting"
	default:
		return "retracted"
	}
}

// Piston is a crusher head resting at BaseX/BaseY that travels Travel pixels
// down when fired. Extension runs 0 (up) to 1 (down); the Transform follows.
type Piston struct {
	State         PistonState
	Frames        int
	ExtendFrames  int
	HoldFrames    int
	RetractFrames int
	BaseX         float64
	BaseY         float64
	Travel        float64
	HeadW         float64
	HeadH         float64
	Extension     float64
	CrushDamage   int
}

var PistonComponent = NewComponent[Piston]()
