package component

import "image/color"

// TileRect is a run of solid tiles merged into one rectangle, in pixels.
type TileRect struct {
	X, Y, W, H float64
}

type TileMap struct {
	TileSize float64
	Rects    []TileRect
	Fill     color.RGBA
	Edge     color.RGBA
}

var TileMapComponent = NewComponent[TileMap]()
