package component

import "github.com/jakecoffman/cp"

// Surface tags decide what a shape counts as for the ground sensor.
const (
	SurfaceNone           = ""
	SurfaceGround         = "ground"
	SurfaceMovingPlatform = "moving_platform"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width/Height describe a box centred on the Transform.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Width        float64
	Height       float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	Static       bool
	Kinematic    bool
	LockRotation bool
	Sensor       bool
	Surface      string
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
