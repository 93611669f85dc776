package component

// Shoveable marks an immobile body the player can knock over once.
type Shoveable struct {
	KnockedOver bool
	Moment      float64
}

var ShoveableComponent = NewComponent[Shoveable]()
