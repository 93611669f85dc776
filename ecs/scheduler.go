package ecs

type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	if f != nil {
		f(w)
	}
}

type scheduledSystem struct {
	name   string
	system System
}

// Scheduler runs Systems in insertion order once per tick.
type Scheduler struct {
	systems []scheduledSystem
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(name string, system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, scheduledSystem{name: name, system: system})
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, entry := range s.systems {
		entry.system.Update(w)
	}
}

// Names lists the systems in run order.
func (s *Scheduler) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.systems))
	for _, entry := range s.systems {
		names = append(names, entry.name)
	}
	return names
}
