package component

// Schedule points at a tengo script that decides how long the next on/off
// phase of a timed object lasts.
type Schedule struct {
	Script string
}

var ScheduleComponent = NewComponent[Schedule]()
