package softdraw

import (
	"errors"

	"github.com/gogpu/softdraw/internal/clip"
)

// DrawLine composites c along an axis-aligned segment.
//
// When start.X != end.X the segment is a horizontal run covering every
// integer x between the two endpoints (inclusive) on row start.Y. Otherwise
// it is a vertical run covering every integer y between the endpoints on
// column start.X. Endpoints may be given in either order. Coordinates are
// floored to pixel indices.
//
// Segments that are neither horizontal nor vertical are rejected with an
// error matching ErrUnsupportedGeometry, and nothing is drawn.
func (s *Surface) DrawLine(start, end Point, c RGBA) error {
	if start.X != end.X && start.Y != end.Y {
		err := &GeometryError{Op: "draw line", Start: start, End: end}
		Logger().Debug("softdraw: unsupported geometry", "op", err.Op,
			"start", start, "end", end)
		return err
	}

	if start.X != end.X {
		s.hline(clip.Floor(start.X), clip.Floor(end.X), clip.Floor(start.Y), c)
	} else {
		s.vline(clip.Floor(start.Y), clip.Floor(end.Y), clip.Floor(start.X), c)
	}
	return nil
}

// hline composites the inclusive run [x0, x1] on row y.
func (s *Surface) hline(x0, x1, y int, c RGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if _, _, ok := s.region.SpanY(y, y); !ok {
		return
	}
	if lo, hi, ok := s.region.SpanX(x0, x1); ok {
		s.compositeRow(lo, hi, y, c)
	}
}

// vline composites the inclusive run [y0, y1] on column x.
func (s *Surface) vline(y0, y1, x int, c RGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if _, _, ok := s.region.SpanX(x, x); !ok {
		return
	}
	lo, hi, ok := s.region.SpanY(y0, y1)
	if !ok {
		return
	}
	stride := s.width * BytesPerPixel
	i := PixOffset(x, lo, s.width)
	for y := lo; y <= hi; y++ {
		p := s.buf[i : i+BytesPerPixel]
		Pack(p, Composite(Unpack(p), c))
		i += stride
	}
}

// DrawRect paints r according to attrs.
//
// With StrokeColor, the four edges are drawn as four DrawLine calls running
// corner to corner: top, left, right, bottom. Corner pixels are therefore
// composited twice, which shows with translucent strokes.
//
// With FillColor, every pixel strictly inside the stroke border is
// composited: x in [r.X+1, r.X+r.W-1] and y in [r.Y+1, r.Y+r.H-1]. The
// one-pixel border is left for the stroke, whether or not one is drawn.
//
// A rectangle with negative width or height paints nothing.
func (s *Surface) DrawRect(r Rect, attrs ...RectAttr) error {
	var st rectStyle
	for _, attr := range attrs {
		attr(&st)
	}
	if r.Inverted() {
		Logger().Debug("softdraw: inverted rectangle skipped", "rect", r)
		return nil
	}

	if st.hasFill {
		x0, x1 := clip.Floor(r.X)+1, clip.Floor(r.Right())-1
		y0, y1 := clip.Floor(r.Y)+1, clip.Floor(r.Bottom())-1
		s.fillRect(x0, y0, x1, y1, st.fill)
	}

	if !st.hasStroke {
		return nil
	}
	tl := Pt(r.X, r.Y)
	tr := Pt(r.Right(), r.Y)
	bl := Pt(r.X, r.Bottom())
	br := Pt(r.Right(), r.Bottom())
	return errors.Join(
		s.DrawLine(tl, tr, st.stroke),
		s.DrawLine(tl, bl, st.stroke),
		s.DrawLine(tr, br, st.stroke),
		s.DrawLine(bl, br, st.stroke),
	)
}

// fillRect composites c over the inclusive pixel box [x0, x1] x [y0, y1].
// An empty or inverted box is a no-op.
func (s *Surface) fillRect(x0, y0, x1, y1 int, c RGBA) {
	lx, hx, ok := s.region.SpanX(x0, x1)
	if !ok {
		return
	}
	ly, hy, ok := s.region.SpanY(y0, y1)
	if !ok {
		return
	}
	for y := ly; y <= hy; y++ {
		s.compositeRow(lx, hx, y, c)
	}
}
