package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/dummyworks/crashtestescape/prefabs"
)

// ScheduleRunner evaluates tengo schedule scripts. A script sees `cycle`
// (how many times the object has toggled) and `active` (the state being
// entered) and assigns `duration` in seconds.
type ScheduleRunner struct {
	load     func(name string) ([]byte, error)
	compiled map[string]*tengo.Compiled
	failed   map[string]bool
}

func NewScheduleRunner(load func(name string) ([]byte, error)) *ScheduleRunner {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ScheduleRunner{
		load:     load,
		compiled: map[string]*tengo.Compiled{},
		failed:   map[string]bool{},
	}
}

// Invalidate drops cached scripts so edited files are recompiled.
func (r *ScheduleRunner) Invalidate() {
	if r == nil {
		return
	}
	r.compiled = map[string]*tengo.Compiled{}
	r.failed = map[string]bool{}
}

func (r *ScheduleRunner) compile(name string) (*tengo.Compiled, error) {
	if c, ok := r.compiled[name]; ok {
		return c, nil
	}
	src, err := r.load(name)
	if err != nil {
		return nil, fmt.Errorf("schedule: load %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("cycle", 0)
	_ = script.Add("active", false)
	_ = script.Add("duration", 0.0)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("schedule: compile %s: %w", name, err)
	}
	r.compiled[name] = compiled
	return compiled, nil
}

// Seconds runs the named script and returns the phase length it picked.
func (r *ScheduleRunner) Seconds(name string, cycle int, active bool) (float64, error) {
	if r == nil || strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("schedule: no script")
	}
	c, err := r.compile(name)
	if err != nil {
		return 0, err
	}
	if err := c.Set("cycle", cycle); err != nil {
		return 0, err
	}
	if err := c.Set("active", active); err != nil {
		return 0, err
	}
	if err := c.Set("duration", 0.0); err != nil {
		return 0, err
	}
	if err := c.Run(); err != nil {
		return 0, fmt.Errorf("schedule: run %s: %w", name, err)
	}
	secs := c.Get("duration").Float()
	if secs <= 0 {
		return 0, fmt.Errorf("schedule: %s returned non-positive duration %v", name, secs)
	}
	return secs, nil
}

// nextPhase returns the frame length of the phase being entered. Entities
// without a Schedule, or whose script fails, use fallback.
func (r *ScheduleRunner) nextPhase(w *ecs.World, e ecs.Entity, owner string, fallback, cycle int, active bool) int {
	sched, ok := ecs.Get(w, e, component.ScheduleComponent.Kind())
	if !ok || r == nil || sched.Script == "" || r.failed[sched.Script] {
		return fallback
	}
	secs, err := r.Seconds(sched.Script, cycle, active)
	if err != nil {
		log.Printf("%s: schedule script: %v", owner, err)
		r.failed[sched.Script] = true
		return fallback
	}
	return common.SecondsToFrames(secs)
}
