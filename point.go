package softdraw

import (
	"image"
	"math"
)

// Point represents a position in surface pixel space.
// The origin is the top-left corner and y increases downward.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Inverted reports whether the rectangle has a negative width or height.
func (r Rect) Inverted() bool {
	return r.W < 0 || r.H < 0
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r. Both edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// FromImageRect converts an integer pixel rectangle.
func FromImageRect(r image.Rectangle) Rect {
	return Rect{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	}
}
