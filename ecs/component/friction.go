package component

// Friction remembers the authored friction of an entity's shapes so it can be
// restored after systems zero it.
type Friction struct {
	Original float64
}

var FrictionComponent = NewComponent[Friction]()
