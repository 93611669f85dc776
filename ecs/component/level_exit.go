package component

type LevelExit struct {
	Width     float64
	Height    float64
	Triggered bool
}

var LevelExitComponent = NewComponent[LevelExit]()
