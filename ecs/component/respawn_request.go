package component

// RespawnRequest marks a dead player whose death delay has run out. The
// respawn system moves the body and resets state after physics has stepped.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
