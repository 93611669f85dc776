package component

// Transform is the world position of an entity. For physics-driven entities
// X/Y track the body centre; ScaleX/ScaleY are applied when drawing.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
