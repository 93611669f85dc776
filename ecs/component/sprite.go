package component

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	// SquashY scales the drawn height around the sprite's feet; 0 means 1.
	SquashY float64
	Hidden  bool
	Tint    color.Color
}

var SpriteComponent = NewComponent[Sprite]()
