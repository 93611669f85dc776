package common

import "math"

// TPS is the fixed update rate the game runs at.
const TPS = 60

// BaseWidth and BaseHeight are the logical screen size.
const (
	BaseWidth  = 960
	BaseHeight = 540
)

// Gravity is in pixels per tick squared.
const Gravity = 0.45

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approximately reports whether a and b are within eps of each other.
func Approximately(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// SecondsToFrames converts an authored duration to update ticks, rounding up.
// Any positive duration lasts at least one frame.
func SecondsToFrames(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	frames := int(math.Ceil(seconds*TPS - 1e-9))
	if frames < 1 {
		return 1
	}
	return frames
}

// OrDefault returns def when v is not positive.
func OrDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func OrDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// AABB is an axis-aligned box given by its top-left corner and size.
type AABB struct {
	X, Y, W, H float64
}

// CenteredAABB builds a box of size w x h centred on (cx, cy).
func CenteredAABB(cx, cy, w, h float64) AABB {
	return AABB{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (a AABB) Overlaps(b AABB) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

func (a AABB) CenterX() float64 { return a.X + a.W/2 }
func (a AABB) CenterY() float64 { return a.Y + a.H/2 }
