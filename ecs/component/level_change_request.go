package component

// LevelChangeRequest asks the outer game loop to leave the current level.
// Systems only emit it; the Game owns world reinitialisation. An empty
// TargetLevel means the next level in the level order.
type LevelChangeRequest struct {
	TargetLevel string
	Restart     bool
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
