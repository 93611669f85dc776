package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dummyworks/crashtestescape/assets"
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/dummyworks/crashtestescape/ecs/entity"
	"github.com/dummyworks/crashtestescape/ecs/system"
	"github.com/dummyworks/crashtestescape/levels"
	"github.com/dummyworks/crashtestescape/prefabs"
	"github.com/dummyworks/crashtestescape/save"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const volumeStep = 0.1

type gameOptions struct {
	level     string
	debug     bool
	skipMenu  bool
	resetSave bool
	watch     bool
}

type Game struct {
	frames int
	debug  bool

	spec  prefabs.GameSpec
	store *save.Store
	sfx   *assets.SFXPlayer

	watcher *prefabs.Watcher

	order     []string
	levelName string

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	schedules *system.ScheduleRunner
	render    *system.RenderSystem

	inMenu      bool
	showCredits bool
	menuDirty   bool
	paused      bool
	quit        bool
	menuUI      *ebitenui.UI
	pauseUI     *ebitenui.UI
	hud         *hud
}

func NewGame(spec prefabs.GameSpec, opts gameOptions) (*Game, error) {
	order, err := levels.Order()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	entity.Configure(spec)
	store := save.Open(save.AppName)
	if opts.resetSave {
		store.ResetProgress()
		persist(store)
		log.Printf("save: progress reset")
	}
	ebiten.SetFullscreen(store.Settings().Fullscreen)

	g := &Game{
		debug:     opts.debug,
		spec:      spec,
		store:     store,
		sfx:       assets.NewSFXPlayer(store.Settings().SFXVolume),
		order:     order,
		schedules: system.NewScheduleRunner(prefabs.LoadScript),
		physics:   system.NewPhysicsSystemWithGravity(spec.Gravity),
		render:    system.NewRenderSystem(),
		hud:       newHUD(),
	}
	g.scheduler = g.buildScheduler()
	g.pauseUI = NewPauseUI(g)

	if opts.watch {
		w, err := prefabs.NewWatcher(watchDirs(prefabs.DiskRoot)...)
		if err != nil {
			log.Printf("watch: disabled: %v", err)
		} else {
			g.watcher = w
			log.Printf("watch: reloading prefabs from %s", prefabs.DiskRoot)
		}
	}

	if opts.level != "" || opts.skipMenu {
		if err := g.startLevel(opts.level); err != nil {
			return nil, err
		}
		return g, nil
	}
	g.openMenu(false)
	return g, nil
}

// buildScheduler fixes the per-tick order. Controllers read last tick's
// ground state, the world objects then move, physics steps, and the
// respawn/friction/animation passes see the stepped result.
func (g *Game) buildScheduler() *ecs.Scheduler {
	s := ecs.NewScheduler()
	s.Add("input", system.NewInputSystem())
	s.Add("player_controller", system.NewPlayerControllerSystem())
	s.Add("shove", system.NewShoveSystem())
	s.Add("conveyor", system.NewConveyorSystem(g.schedules, entity.SpawnPrefab))
	s.Add("motion_detector", system.NewMotionDetectorSystem(g.schedules))
	s.Add("piston", system.NewPistonSystem())
	s.Add("hazard", system.NewHazardSystem())
	s.Add("damage_knockback", system.NewDamageKnockbackSystem())
	s.Add("checkpoint", system.NewCheckpointSystem())
	s.Add("health", system.NewHealthSystem())
	s.Add("physics", g.physics)
	s.Add("respawn", system.NewRespawnSystem())
	s.Add("friction", system.NewFrictionSystem())
	s.Add("level_exit", system.NewLevelExitSystem())
	s.Add("bounds", system.NewBoundsSystem())
	s.Add("particles", system.NewParticleSystem())
	s.Add("player_animation", system.NewPlayerAnimationSystem())
	s.Add("object_animation", system.NewObjectAnimationSystem())
	s.Add("animation", system.NewAnimationSystem())
	s.Add("camera", system.NewCameraSystem())
	s.Add("audio", system.NewAudioSystem(g.sfx.Play))
	return s
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.handleSettingsKeys()
	g.handleFileChanges()

	if g.inMenu {
		if g.menuDirty {
			g.menuUI = NewMenuUI(g, g.showCredits)
			g.menuDirty = false
		}
		g.menuUI.Update()
		return nil
	}
	if g.world == nil {
		return nil
	}

	if g.paused {
		if system.SampleDevices().Pause {
			g.paused = false
			return nil
		}
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	g.handleEvents()
	g.handleRequests()

	if in, ok := ecs.Get(g.world, g.playerEntity(), component.InputComponent.Kind()); ok && in.Pause {
		g.paused = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.spec.Background.NRGBA())

	if g.world != nil && !g.inMenu {
		g.render.Draw(g.world, screen)
		if g.debug {
			system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
			system.DrawPlayerStateDebug(g.world, screen)
		}
		g.hud.Draw(screen, g.world, g.store.Progress().Deaths)
	}

	switch {
	case g.inMenu && g.menuUI != nil:
		g.menuUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Level: %s", g.frames, ebiten.ActualFPS(), g.levelName))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close flushes save data and stops the file watcher.
func (g *Game) Close() {
	persist(g.store)
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
	}
}

func (g *Game) playerEntity() ecs.Entity {
	if g.world == nil {
		return 0
	}
	p, _ := ecs.First(g.world, component.PlayerTagComponent.Kind())
	return p
}

// startLevel begins name, or the saved level, or the first level.
func (g *Game) startLevel(name string) error {
	if name == "" {
		name = g.order[0]
		if saved := g.store.Progress().Level; saved != "" && g.inOrder(saved) {
			name = saved
		}
	}
	if err := g.loadLevel(name); err != nil {
		return err
	}
	g.inMenu = false
	g.paused = false
	return nil
}

func (g *Game) inOrder(name string) bool {
	for _, n := range g.order {
		if n == name {
			return true
		}
	}
	return false
}

// loadLevel replaces the world with a fresh copy of the named level. The
// saved checkpoint for that level, if any, becomes the starting point.
func (g *Game) loadLevel(name string) error {
	name = levels.Canonical(name)
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return fmt.Errorf("game: level %s: %w", name, err)
	}

	resume, _ := g.store.CheckpointFor(name)
	world := ecs.NewWorld()
	g.physics.Reset()
	loaded, err := entity.LoadLevelToWorld(world, lvl, resume)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.world = world
	g.levelName = name
	g.store.EnterLevel(name)
	persist(g.store)

	if loaded.Resumed {
		log.Printf("level: %s (%s) resumed at %s", name, lvl.Name, resume)
	} else {
		log.Printf("level: %s (%s) loaded", name, lvl.Name)
	}
	return nil
}

func (g *Game) reloadLevel() {
	if g.levelName == "" {
		return
	}
	if err := g.loadLevel(g.levelName); err != nil {
		log.Printf("level: reload %s: %v", g.levelName, err)
	}
}

func (g *Game) handleEvents() {
	dirty := false
	for _, ev := range ecs.Events(g.world).Drain() {
		switch ev.Kind {
		case ecs.EventCheckpointReached:
			if ev.Name != "" {
				g.store.SetCheckpoint(g.levelName, ev.Name)
				dirty = true
			}
		case ecs.EventPlayerDied:
			g.store.AddDeath()
			dirty = true
		case ecs.EventPlayerCrushed:
			log.Printf("game: player crushed by %v", ev.Source)
		}
	}
	if dirty {
		persist(g.store)
	}
}

// handleRequests performs the world-level requests systems leave behind.
func (g *Game) handleRequests() {
	var change *component.LevelChangeRequest
	ecs.ForEach(g.world, component.LevelChangeRequestComponent.Kind(), func(e ecs.Entity, req *component.LevelChangeRequest) {
		if change == nil {
			r := *req
			change = &r
		}
		_ = ecs.Remove(g.world, e, component.LevelChangeRequestComponent.Kind())
	})
	reload := false
	ecs.ForEach(g.world, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, _ *component.ReloadRequest) {
		reload = true
		ecs.DestroyEntity(g.world, e)
	})

	switch {
	case change != nil:
		g.changeLevel(*change)
	case reload:
		g.reloadLevel()
	}
}

func (g *Game) changeLevel(req component.LevelChangeRequest) {
	if req.Restart {
		g.reloadLevel()
		return
	}
	target := req.TargetLevel
	if target == "" {
		next, ok := levels.Next(g.order, g.levelName)
		if !ok {
			log.Printf("game: finished %s, the facility is behind you", g.levelName)
			g.store.ResetProgress()
			persist(g.store)
			g.openMenu(true)
			return
		}
		target = next
	}
	if err := g.loadLevel(target); err != nil {
		log.Printf("level: %v", err)
	}
}

// restartFromCheckpoint sends the player back to its respawn point with full
// health, the same way a death would.
func (g *Game) restartFromCheckpoint() {
	p := g.playerEntity()
	if !p.Valid() {
		return
	}
	if err := ecs.Add(g.world, p, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{}); err != nil {
		panic("game: add respawn request: " + err.Error())
	}
	g.paused = false
}

func (g *Game) openMenu(credits bool) {
	g.inMenu = true
	g.paused = false
	g.showCredits = credits
	g.menuDirty = true
	g.world = nil
	g.levelName = ""
	g.physics.Reset()
}

func (g *Game) handleSettingsKeys() {
	changed := false
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.store.SetSFXVolume(g.store.Settings().SFXVolume - volumeStep)
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.store.SetSFXVolume(g.store.Settings().SFXVolume + volumeStep)
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		g.store.SetFullscreen(!g.store.Settings().Fullscreen)
		ebiten.SetFullscreen(g.store.Settings().Fullscreen)
		changed = true
	}
	if changed {
		g.sfx.SetVolume(g.store.Settings().SFXVolume)
		persist(g.store)
	}
}

// handleFileChanges applies prefab edits made on disk. Scripts only need
// recompiling; any other prefab change rebuilds the level.
func (g *Game) handleFileChanges() {
	changes := g.watcher.Poll()
	if len(changes) == 0 {
		return
	}
	reload := false
	for _, c := range changes {
		log.Printf("watch: %s changed", c.Path)
		if c.Script {
			g.schedules.Invalidate()
			continue
		}
		reload = true
	}
	if !reload {
		return
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Printf("watch: game spec: %v", err)
	} else {
		g.spec = spec
		entity.Configure(spec)
	}
	if g.world != nil {
		g.reloadLevel()
	}
}

// watchDirs lists root and its scripts directory, skipping what is missing.
func watchDirs(root string) []string {
	var dirs []string
	for _, dir := range []string{root, filepath.Join(root, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func persist(store *save.Store) {
	if err := store.Save(); err != nil {
		log.Printf("save: %v", err)
	}
}
