package component

import "github.com/jakecoffman/cp"

// GroundCheck reports what the sensor under an entity's feet touches.
// Platform is the conveyor entity underneath, 0 when none.
type GroundCheck struct {
	Grounded         bool
	OnMovingPlatform bool
	Platform         uint64
	WasGrounded      bool
	Sensor           *cp.Shape
}

func (g *GroundCheck) CanJump() bool {
	return g != nil && (g.Grounded || g.OnMovingPlatform)
}

var GroundCheckComponent = NewComponent[GroundCheck]()
