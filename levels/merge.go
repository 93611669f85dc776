package levels

// Rect is a block of solid tiles in tile units.
type Rect struct {
	X, Y, W, H int
}

// SolidRects merges solid tiles into rectangles: each run is grown as wide
// as possible, then down while every tile of the next row under it is solid.
func (l *Level) SolidRects() []Rect {
	if l.Width <= 0 || l.Height <= 0 {
		return nil
	}
	visited := make([]bool, l.Width*l.Height)
	free := func(x, y int) bool {
		return l.Solid(x, y) && !visited[y*l.Width+x]
	}

	var rects []Rect
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !free(x, y) {
				continue
			}
			w := 0
			for x+w < l.Width && free(x+w, y) {
				w++
			}
			h := 1
		grow:
			for y+h < l.Height {
				for xx := x; xx < x+w; xx++ {
					if !free(xx, y+h) {
						break grow
					}
				}
				h++
			}
			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					visited[yy*l.Width+xx] = true
				}
			}
			rects = append(rects, Rect{X: x, Y: y, W: w, H: h})
		}
	}
	return rects
}
