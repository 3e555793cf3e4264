package softdraw

import (
	"image"
	"math"

	"github.com/gogpu/softdraw/internal/clip"
)

// Glyph is one shaped, positioned unit of text. Glyphs are produced by a
// text shaper outside this package (see the text sub-package); the surface
// only samples their coverage.
type Glyph interface {
	// Anchor returns the glyph's pen position in surface pixels. The y
	// coordinate is the top of the line; the baseline lies one ascent below.
	Anchor() Point

	// Bounds returns the glyph's ink box in whole pixels, relative to the
	// anchor with the baseline at y = 0 (so Min.Y is usually negative).
	// ok is false for glyphs with nothing to rasterize, such as spaces.
	Bounds() (r image.Rectangle, ok bool)

	// Advance returns the horizontal pen advance in pixels.
	Advance() float64

	// Coverage calls fn for each covered pixel, with (x, y) relative to
	// Bounds().Min and v in [0, 1].
	Coverage(fn func(x, y int, v float64))
}

// Label is a run of glyphs laid out with a single font face.
type Label interface {
	// Glyphs returns the glyphs in drawing order.
	Glyphs() []Glyph

	// Ascent is the distance from the top of the line to the baseline.
	Ascent() float64

	// Descent is the distance from the baseline to the bottom of the line.
	Descent() float64
}

// DrawLabel composites every glyph of l in color c.
//
// Each covered pixel with coverage v receives c scaled by v in all four
// channels. The pixel lands at anchor + bounds offset + (x, y), shifted down
// by the label's ascent so that nothing rises above the anchor. Pixels on
// row 0 or above are skipped, as are coverage samples reported outside the
// glyph bounds. Glyphs without bounds paint nothing.
func (s *Surface) DrawLabel(l Label, c RGBA) {
	if l == nil {
		return
	}
	ascent := l.Ascent()
	for _, g := range l.Glyphs() {
		b, ok := g.Bounds()
		if !ok || b.Empty() {
			continue
		}
		origin := glyphOrigin(g, b, ascent)
		w, h := b.Dx(), b.Dy()
		g.Coverage(func(x, y int, v float64) {
			if x < 0 || y < 0 || x >= w || y >= h || !(v > 0) {
				return
			}
			px, py := origin.X+x, origin.Y+y
			if py <= 0 {
				return
			}
			s.Composite(px, py, c.Scale(math.Min(v, 1)))
		})
	}
}

// MeasureLabel returns the width and height of LabelBounds(l).
func (s *Surface) MeasureLabel(l Label) (width, height float64) {
	r := LabelBounds(l)
	return r.W, r.H
}

// LabelBounds returns the rectangle DrawLabel may paint for l, in surface
// pixels. It is the union of each glyph's pen box (anchor to anchor plus
// advance, one line tall) and its ink box after the ascent shift, so every
// pixel DrawLabel writes lies inside it.
func LabelBounds(l Label) Rect {
	if l == nil {
		return Rect{}
	}
	ascent := l.Ascent()
	lineHeight := ascent + l.Descent()

	var r Rect
	for _, g := range l.Glyphs() {
		a := g.Anchor()
		pen := Rect{
			X: float64(clip.Floor(a.X)),
			Y: float64(clip.Floor(a.Y)),
			W: math.Ceil(g.Advance()),
			H: math.Ceil(lineHeight),
		}
		r = r.Union(pen)

		b, ok := g.Bounds()
		if !ok || b.Empty() {
			continue
		}
		o := glyphOrigin(g, b, ascent)
		r = r.Union(FromImageRect(image.Rectangle{Min: o, Max: o.Add(b.Size())}))
	}
	return r
}

// glyphOrigin returns the absolute pixel of coverage sample (0, 0).
func glyphOrigin(g Glyph, b image.Rectangle, ascent float64) image.Point {
	a := g.Anchor()
	return image.Point{
		X: clip.Floor(a.X) + b.Min.X,
		Y: clip.Floor(a.Y+ascent) + b.Min.Y,
	}
}
