package assets

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/colornames"
)

var sheetBuilders = map[string]func() *image.RGBA{
	"player":     playerSheet,
	"dummy":      dummySheet,
	"crate":      crateSheet,
	"spike":      spikeSheet,
	"checkpoint": checkpointSheet,
	"conveyor":   conveyorSheet,
	"detector":   detectorSheet,
	"piston":     pistonSheet,
	"exit":       exitSheet,
}

// Frame sizes of the generated sheets. Prefabs reference the same numbers.
const (
	FigureW = 32
	FigureH = 48
	BeltW   = 96
	BeltH   = 16
	PistonW = 64
	PistonH = 24
)

var (
	dummyYellow = color.RGBA{R: 0xf2, G: 0xc1, B: 0x2e, A: 0xff}
	dummyShade  = color.RGBA{R: 0xb8, G: 0x8a, B: 0x14, A: 0xff}
	propGrey    = color.RGBA{R: 0xa8, G: 0xa4, B: 0x96, A: 0xff}
	propShade   = color.RGBA{R: 0x74, G: 0x70, B: 0x66, A: 0xff}
	outline     = color.RGBA{R: 0x20, G: 0x1c, B: 0x18, A: 0xff}
)

type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int) *canvas {
	return &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *canvas) rect(x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *canvas) frame(x, y, w, h int, col color.Color) {
	c.rect(x, y, w, 1, col)
	c.rect(x, y+h-1, w, 1, col)
	c.rect(x, y, 1, h, col)
	c.rect(x+w-1, y, 1, h, col)
}

func (c *canvas) disc(cx, cy, r int, col color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.img.Set(cx+x, cy+y, col)
			}
		}
	}
}

// marker is the quartered crash test target.
func (c *canvas) marker(cx, cy, r int) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y > r*r {
				continue
			}
			col := color.Color(colornames.Black)
			if (x >= 0) == (y >= 0) {
				col = colornames.White
			}
			c.img.Set(cx+x, cy+y, col)
		}
	}
}

// triangle fills an upward triangle with its base on row y.
func (c *canvas) triangle(x, y, w, h int, col color.Color) {
	for row := 0; row < h; row++ {
		inset := (w * (h - row)) / (2 * h)
		c.rect(x+inset, y-row, w-2*inset, 1, col)
	}
}

type pose struct {
	legA, legB int // vertical lift of each foot
	crouch     bool
	push       bool
	flat       bool
	lying      bool
}

// drawFigure paints a dummy in a FigureW x FigureH cell whose bottom row is
// the floor.
func drawFigure(c *canvas, ox, oy int, p pose, body, shade color.Color) {
	floor := oy + FigureH
	switch {
	case p.lying:
		c.rect(ox+8, floor-9, 22, 8, body)
		c.frame(ox+8, floor-9, 22, 8, outline)
		c.disc(ox+5, floor-6, 5, body)
		c.marker(ox+5, floor-6, 2)
		return
	case p.flat:
		c.rect(ox+2, floor-8, 28, 8, body)
		c.frame(ox+2, floor-8, 28, 8, outline)
		c.marker(ox+16, floor-4, 2)
		return
	}

	headY, torsoY, torsoH, legH := floor-34, floor-27, 13, 14
	if p.crouch {
		headY, torsoY, torsoH, legH = floor-20, floor-14, 8, 6
	}

	c.rect(ox+12, floor-legH-p.legA, 4, legH, shade)
	c.rect(ox+17, floor-legH-p.legB, 4, legH, shade)
	c.rect(ox+10, torsoY, 12, torsoH, body)
	c.frame(ox+10, torsoY, 12, torsoH, outline)
	if p.push {
		c.rect(ox+22, torsoY+2, 9, 3, shade)
		c.rect(ox+28, torsoY, 3, 7, shade)
	} else {
		c.rect(ox+13, torsoY+2, 3, torsoH-3, shade)
	}
	c.disc(ox+16, headY, 6, body)
	c.marker(ox+17, headY, 2)
	c.marker(ox+16, torsoY+torsoH/2, 2)
}

func playerSheet() *image.RGBA {
	rows := [][]pose{
		{{}, {legA: 1, legB: 1}},
		{{legA: 3}, {}, {legB: 3}, {}},
		{{legA: 4, legB: 2}},
		{{legA: 1, legB: 3}},
		{{crouch: true}},
		{{crouch: true, legA: 1}, {crouch: true, legB: 1}},
		{{push: true}, {push: true, legB: 2}},
		{{flat: true}},
		{{lying: true}},
	}
	c := newCanvas(4*FigureW, len(rows)*FigureH)
	for r, frames := range rows {
		for f, p := range frames {
			drawFigure(c, f*FigureW, r*FigureH, p, dummyYellow, dummyShade)
		}
	}
	return c.img
}

func dummySheet() *image.RGBA {
	c := newCanvas(FigureW, FigureH)
	drawFigure(c, 0, 0, pose{}, propGrey, propShade)
	return c.img
}

func crateSheet() *image.RGBA {
	c := newCanvas(24, 24)
	c.rect(0, 0, 24, 24, colornames.Peru)
	c.frame(0, 0, 24, 24, colornames.Saddlebrown)
	c.frame(2, 2, 20, 20, colornames.Saddlebrown)
	for i := 2; i < 22; i++ {
		c.img.Set(i, i, colornames.Saddlebrown)
		c.img.Set(23-i, i, colornames.Saddlebrown)
	}
	return c.img
}

func spikeSheet() *image.RGBA {
	c := newCanvas(32, 16)
	c.rect(0, 13, 32, 3, colornames.Dimgray)
	for i := 0; i < 4; i++ {
		c.triangle(i*8, 12, 8, 11, colornames.Silver)
	}
	return c.img
}

func checkpointSheet() *image.RGBA {
	c := newCanvas(16*2, 64*2)
	flag := func(ox, oy int, col color.Color, wave int) {
		c.rect(ox+2, oy+4, 2, 60, colornames.Lightgray)
		c.rect(ox+4, oy+6+wave, 10, 8, col)
	}
	flag(0, 0, colornames.Gray, 0)
	flag(0, 64, colornames.Limegreen, 0)
	flag(16, 64, colornames.Limegreen, 1)
	return c.img
}

func conveyorSheet() *image.RGBA {
	c := newCanvas(BeltW*4, BeltH*2)
	belt := func(ox, oy, shift int, chevron color.Color) {
		c.rect(ox, oy, BeltW, BeltH, colornames.Darkslategray)
		c.rect(ox, oy, BeltW, 2, colornames.Black)
		c.disc(ox+7, oy+9, 5, colornames.Gray)
		c.disc(ox+BeltW-8, oy+9, 5, colornames.Gray)
		for x := 14 + shift; x < BeltW-14; x += 8 {
			c.rect(ox+x, oy+5, 2, 2, chevron)
			c.rect(ox+x+2, oy+7, 2, 2, chevron)
			c.rect(ox+x, oy+9, 2, 2, chevron)
		}
	}
	for f := 0; f < 4; f++ {
		belt(f*BeltW, 0, f*2, colornames.Gold)
	}
	belt(0, BeltH, 0, colornames.Dimgray)
	return c.img
}

func detectorSheet() *image.RGBA {
	c := newCanvas(32, 48)
	lamp := func(ox, oy int, col color.Color) {
		c.rect(ox+1, oy+1, 14, 14, colornames.Darkslategray)
		c.disc(ox+8, oy+8, 4, col)
	}
	lamp(0, 0, colornames.Dimgray)
	lamp(0, 16, colornames.Limegreen)
	lamp(0, 32, colornames.Red)
	lamp(16, 32, colornames.Darkred)
	return c.img
}

func pistonSheet() *image.RGBA {
	c := newCanvas(PistonW, PistonH*2)
	head := func(oy int, stripe color.Color) {
		c.rect(PistonW/2-6, oy, 12, 6, colornames.Gray)
		c.rect(0, oy+6, PistonW, PistonH-6, colornames.Slategray)
		c.frame(0, oy+6, PistonW, PistonH-6, outline)
		for x := 2; x < PistonW-4; x += 8 {
			c.rect(x, oy+PistonH-5, 4, 3, stripe)
		}
	}
	head(0, colornames.Gold)
	head(PistonH, colornames.Red)
	return c.img
}

func exitSheet() *image.RGBA {
	c := newCanvas(40, 64)
	c.rect(0, 0, 40, 64, colornames.Darkslategray)
	c.rect(4, 12, 32, 52, colornames.Black)
	c.frame(4, 12, 32, 52, colornames.Gray)
	c.rect(10, 2, 20, 7, colornames.Forestgreen)
	c.rect(12, 4, 16, 3, colornames.Palegreen)
	return c.img
}
