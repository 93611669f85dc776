package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
)

var creditLines = []string{
	"Crash Test Escape",
	"",
	"Design, code and dummies: the Dummy Works crew",
	"Built with Ebitengine, Chipmunk2D, ebitenui and beep",
}

// NewMenuUI builds the main menu, or the credits panel when credits is set.
func NewMenuUI(g *Game, credits bool) *ebitenui.UI {
	face := uiFace()
	if credits {
		children := make([]widget.PreferredSizeLocateableWidget, 0, len(creditLines)+1)
		for _, line := range creditLines {
			children = append(children, menuLabel(line, face, labelColor))
		}
		children = append(children, menuButton("Back", face, func() {
			g.showCredits = false
			g.menuDirty = true
		}))
		return centeredPanel(children...)
	}

	start := "Start"
	if p := g.store.Progress(); p.Level != "" {
		start = "Continue"
	}
	return centeredPanel(
		menuLabel(g.spec.Title, face, accentColor),
		menuLabel(fmt.Sprintf("Deaths so far: %d", g.store.Progress().Deaths), face, labelColor),
		menuButton(start, face, func() {
			if err := g.startLevel(""); err != nil {
				log.Printf("menu: start: %v", err)
			}
		}),
		menuButton("Credits", face, func() {
			g.showCredits = true
			g.menuDirty = true
		}),
		menuButton("Exit", face, func() { g.quit = true }),
	)
}
