package component

// RenderLayer sorts draw order; lower indices draw first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
