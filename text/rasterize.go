package text

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/softdraw"
)

// maskKey identifies a rasterized glyph in the source cache.
type maskKey struct {
	gid    GlyphID
	ppem   fixed.Int26_6
	scaleX float64
}

// glyphMask is an 8-bit coverage mask for one glyph.
type glyphMask struct {
	// bounds is the ink box relative to the pen, baseline at y = 0.
	bounds image.Rectangle
	alpha  *image.Alpha
}

// coverage calls fn for every non-zero sample, with (x, y) relative to
// bounds.Min.
func (m *glyphMask) coverage(fn func(x, y int, v float64)) {
	w, h := m.bounds.Dx(), m.bounds.Dy()
	for y := range h {
		row := m.alpha.Pix[y*m.alpha.Stride : y*m.alpha.Stride+w]
		for x, v := range row {
			if v != 0 {
				fn(x, y, float64(v)/255)
			}
		}
	}
}

// mask returns the cached coverage mask of gid, rasterizing it on first
// use. Glyphs without an outline yield nil.
func (s *FontSource) mask(gid GlyphID, ppem fixed.Int26_6, scaleX float64) *glyphMask {
	key := maskKey{gid: gid, ppem: ppem, scaleX: scaleX}
	return s.masks.GetOrCreate(key, func() *glyphMask {
		m, err := s.rasterize(gid, ppem, scaleX)
		if err != nil {
			softdraw.Logger().Debug("text: glyph not rasterized",
				"font", s.name, "gid", gid, "err", err)
			return nil
		}
		softdraw.Logger().Debug("text: glyph rasterized",
			"font", s.name, "gid", gid, "ppem", fromFixed(ppem), "ink", m != nil)
		return m
	})
}

// rasterize fills the outline of gid with non-zero winding, stretching x
// by scaleX.
func (s *FontSource) rasterize(gid GlyphID, ppem fixed.Int26_6, scaleX float64) (*glyphMask, error) {
	buf := s.buffer()
	defer s.bufs.Put(buf)

	segs, err := s.font.LoadGlyph(buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return nil, &FontError{Name: s.name, Op: "load glyph", Err: err}
	}
	if len(segs) == 0 {
		return nil, nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range segs {
		for _, p := range seg.Args[:segmentArgs(seg.Op)] {
			x, y := fromFixed(p.X)*scaleX, fromFixed(p.Y)
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	bounds := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	if bounds.Empty() {
		return nil, nil
	}

	w, h := bounds.Dx(), bounds.Dy()
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(fromFixed(p.X)*scaleX - ox), float32(fromFixed(p.Y) - oy)
	}

	r := vector.NewRasterizer(w, h)
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		r.ClosePath()
	}

	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
	return &glyphMask{bounds: bounds, alpha: alpha}, nil
}

// segmentArgs returns how many points of a segment are in use.
func segmentArgs(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}
