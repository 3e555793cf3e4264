// Package clip computes the pixel window a surface is allowed to write.
//
// A clip rectangle is inclusive on all four edges: a rectangle at x with
// width w admits every integer column in [ceil(x), floor(x+w)].
package clip

import "math"

// Rect represents a rectangle with float64 coordinates.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Region is an inclusive integer pixel window. A Region with MinX > MaxX or
// MinY > MaxY admits nothing.
type Region struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Bounds returns the region covering a width x height buffer.
func Bounds(width, height int) Region {
	return Region{MinX: 0, MinY: 0, MaxX: width - 1, MaxY: height - 1}
}

// Empty reports whether the region admits no pixel.
func (r Region) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Contains reports whether the pixel (x, y) may be written.
func (r Region) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Intersect narrows the region to the pixels inside c. A rectangle with a
// negative size or a NaN field yields an empty region, matching
// Rect.Contains, which admits no point for such a rectangle.
func (r Region) Intersect(c Rect) Region {
	if c.W < 0 || c.H < 0 || math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsNaN(c.W) || math.IsNaN(c.H) {
		return Region{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
	}
	return Region{
		MinX: max(r.MinX, ceilInt(c.X)),
		MinY: max(r.MinY, ceilInt(c.Y)),
		MaxX: min(r.MaxX, floorInt(c.Right())),
		MaxY: min(r.MaxY, floorInt(c.Bottom())),
	}
}

// SpanX clamps the inclusive column run [x0, x1] to the region.
// ok is false when nothing of the run remains.
func (r Region) SpanX(x0, x1 int) (lo, hi int, ok bool) {
	lo, hi = max(x0, r.MinX), min(x1, r.MaxX)
	return lo, hi, lo <= hi
}

// SpanY clamps the inclusive row run [y0, y1] to the region.
func (r Region) SpanY(y0, y1 int) (lo, hi int, ok bool) {
	lo, hi = max(y0, r.MinY), min(y1, r.MaxY)
	return lo, hi, lo <= hi
}

// limit keeps float to int conversions inside a range where int arithmetic
// on the result cannot overflow.
const limit = 1 << 30

func ceilInt(v float64) int {
	return clampInt(math.Ceil(v))
}

func floorInt(v float64) int {
	return clampInt(math.Floor(v))
}

func clampInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -limit:
		return -limit
	case v > limit:
		return limit
	}
	return int(v)
}

// Floor converts a coordinate to a pixel index, saturating at ±2^30.
func Floor(v float64) int {
	return floorInt(v)
}
