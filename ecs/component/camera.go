package component

type Camera struct {
	Target     string
	Smoothness float64
	X          float64
	Y          float64
	ViewW      float64
	ViewH      float64
	// Snap places the camera on its target without smoothing on the next tick.
	Snap bool
}

var CameraComponent = NewComponent[Camera]()
