package main

import (
	"flag"
	"log"

	"github.com/dummyworks/crashtestescape/prefabs"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and player state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional); skips the menu")
	skipMenu := flag.Bool("skip-menu", false, "start the saved or first level immediately")
	resetSave := flag.Bool("reset-save", false, "forget saved progress before starting")
	watch := flag.Bool("watch", false, "reload prefabs and scripts from ./prefabs when they change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Printf("game spec: %v (using defaults)", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*3/4, h*3/4)
	ebiten.SetWindowTitle(spec.Title)

	game, err := NewGame(spec, gameOptions{
		level:     *levelName,
		debug:     *debug,
		skipMenu:  *skipMenu,
		resetSave: *resetSave,
		watch:     *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
