package main

import (
	"fmt"
	"image/color"

	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	pipSize = 14
	pipGap  = 6
	hudPad  = 16
)

var pipEmpty = color.NRGBA{R: 0x40, G: 0x40, B: 0x48, A: 0xff}

// hud draws the player's health pips and the death counter in the top right.
type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) Draw(screen *ebiten.Image, w *ecs.World, deaths int) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	hp, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok {
		return
	}

	x := float32(common.BaseWidth - hudPad - hp.Max*(pipSize+pipGap) + pipGap)
	for i := 0; i < hp.Max; i++ {
		c := color.Color(pipEmpty)
		if i < hp.Current {
			c = accentColor
		}
		vector.DrawFilledRect(screen, x+float32(i*(pipSize+pipGap)), hudPad, pipSize, pipSize, c, false)
	}

	label := fmt.Sprintf("Deaths: %d", deaths)
	tw, _ := ebtext.Measure(label, h.face, 0)
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(common.BaseWidth-hudPad)-tw, hudPad+pipSize+6)
	op.ColorScale.ScaleWithColor(labelColor)
	ebtext.Draw(screen, label, h.face, op)
}
