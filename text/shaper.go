package text

// Shaper converts text into positioned glyphs.
//
// Implementations must be safe for concurrent use. The face passed to Shape
// has its direction already resolved to DirectionLTR or DirectionRTL.
// Positions and advances are in pixels, with the horizontal scale of the
// face applied, and glyphs are returned in visual (drawing) order.
type Shaper interface {
	Shape(text string, face *Face) []ShapedGlyph
}

// ShapedGlyph is one glyph placed by a Shaper.
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the index of the first rune in the source text that
	// produced this glyph.
	Cluster int

	// X is the horizontal position relative to the text origin.
	X float64

	// Y is the vertical offset; positive moves the glyph down.
	Y float64

	// XAdvance is the horizontal advance to the next glyph.
	XAdvance float64
}
