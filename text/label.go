package text

import (
	"image"

	"github.com/gogpu/softdraw"
)

// Label is a shaped string ready to draw. It implements softdraw.Label.
// All methods accept a nil receiver, which behaves as an empty label.
type Label struct {
	text    string
	glyphs  []softdraw.Glyph
	ascent  float64
	descent float64
	width   float64
}

// Glyphs implements softdraw.Label.
func (l *Label) Glyphs() []softdraw.Glyph {
	if l == nil {
		return nil
	}
	return l.glyphs
}

// Ascent implements softdraw.Label.
func (l *Label) Ascent() float64 {
	if l == nil {
		return 0
	}
	return l.ascent
}

// Descent implements softdraw.Label.
func (l *Label) Descent() float64 {
	if l == nil {
		return 0
	}
	return l.descent
}

// Text returns the string the label was laid out from.
func (l *Label) Text() string {
	if l == nil {
		return ""
	}
	return l.text
}

// Len returns the number of glyphs.
func (l *Label) Len() int {
	if l == nil {
		return 0
	}
	return len(l.glyphs)
}

// Advance returns the pen distance from the origin to the end of the last
// glyph.
func (l *Label) Advance() float64 {
	if l == nil {
		return 0
	}
	return l.width
}

// Bounds returns the pixel area DrawLabel may touch for this label.
func (l *Label) Bounds() softdraw.Rect {
	if l == nil {
		return softdraw.Rect{}
	}
	return softdraw.LabelBounds(l)
}

// PositionedGlyph is one glyph of a Label. It implements softdraw.Glyph.
type PositionedGlyph struct {
	id      GlyphID
	cluster int
	anchor  softdraw.Point
	advance float64
	mask    *glyphMask
}

// ID returns the glyph index in the font.
func (g *PositionedGlyph) ID() GlyphID { return g.id }

// Cluster returns the rune index in the source text.
func (g *PositionedGlyph) Cluster() int { return g.cluster }

// Anchor implements softdraw.Glyph.
func (g *PositionedGlyph) Anchor() softdraw.Point { return g.anchor }

// Advance implements softdraw.Glyph.
func (g *PositionedGlyph) Advance() float64 { return g.advance }

// Bounds implements softdraw.Glyph. Glyphs without an outline report false.
func (g *PositionedGlyph) Bounds() (image.Rectangle, bool) {
	if g.mask == nil {
		return image.Rectangle{}, false
	}
	return g.mask.bounds, true
}

// Coverage implements softdraw.Glyph.
func (g *PositionedGlyph) Coverage(fn func(x, y int, v float64)) {
	if g.mask != nil {
		g.mask.coverage(fn)
	}
}
