// Command preview builds one prefab and plays its animation clips so sheet
// and timing changes can be checked without loading a level.
//
// Left/Right cycle clips, Space restarts the current clip.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/dummyworks/crashtestescape/ecs/entity"
	"github.com/dummyworks/crashtestescape/ecs/system"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const size = 512

type previewGame struct {
	world  *ecs.World
	target ecs.Entity
	clips  []string
	clip   int
	anim   *system.AnimationSystem
	render *system.RenderSystem
}

func newPreview(prefab string, scale float64) (*previewGame, error) {
	w := ecs.NewWorld()
	e, err := entity.SpawnPrefab(w, prefab, size/2, size/2)
	if err != nil {
		return nil, err
	}
	a, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("prefab %q has no animation", prefab)
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.ScaleX *= scale
		t.ScaleY *= scale
	}

	clips := make([]string, 0, len(a.Defs))
	for name := range a.Defs {
		clips = append(clips, name)
	}
	sort.Strings(clips)
	g := &previewGame{
		world:  w,
		target: e,
		clips:  clips,
		anim:   system.NewAnimationSystem(),
		render: system.NewRenderSystem(),
	}
	for i, name := range clips {
		if name == a.Current {
			g.clip = i
		}
	}
	return g, nil
}

func (g *previewGame) Update() error {
	a, ok := ecs.Get(g.world, g.target, component.AnimationComponent.Kind())
	if !ok {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.clip = (g.clip + 1) % len(g.clips)
		system.SetAnimation(a, g.clips[g.clip])
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.clip = (g.clip + len(g.clips) - 1) % len(g.clips)
		system.SetAnimation(a, g.clips[g.clip])
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.Frame, a.FrameTimer = 0, 0
		a.Playing, a.Finished = true, false
	}
	g.anim.Update(g.world)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x18, 0x18, 0x20, 0xff})
	g.render.Draw(g.world, screen)
	if a, ok := ecs.Get(g.world, g.target, component.AnimationComponent.Kind()); ok {
		def := a.Defs[a.Current]
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d/%d  fps %.0f  loop=%v", a.Current, a.Frame+1, def.FrameCount, def.FPS, def.Loop))
	}
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return size, size
}

func main() {
	prefab := flag.String("prefab", "player", "prefab to preview")
	scale := flag.Float64("scale", 4, "draw scale")
	flag.Parse()

	g, err := newPreview(*prefab, *scale)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle("preview: " + *prefab)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
