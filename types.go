package screens

import "image/color"

// ActivityState is the presentation state the declarative layer requests for
// a screen.
type ActivityState uint8

const (
	ActivityInactive ActivityState = iota // detached from the native stack
	ActivityBelowTop                      // attached but not the top screen
	ActivityOnTop                         // attached and the top screen
)

func (s ActivityState) String() string {
	switch s {
	case ActivityInactive:
		return "inactive"
	case ActivityBelowTop:
		return "belowTop"
	case ActivityOnTop:
		return "onTop"
	default:
		return "invalid"
	}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default view color.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a premultiplied color.RGBA, scaling alpha by the extra
// factor a (view alpha).
func (c Color) RGBA(a float64) color.RGBA {
	alpha := clamp01(c.A * a)
	return color.RGBA{
		R: uint8(clamp01(c.R) * alpha * 255),
		G: uint8(clamp01(c.G) * alpha * 255),
		B: uint8(clamp01(c.B) * alpha * 255),
		A: uint8(alpha * 255),
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
