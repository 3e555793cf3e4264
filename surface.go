package softdraw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/softdraw/internal/blend"
	"github.com/gogpu/softdraw/internal/clip"
)

// Surface draws into a borrowed pixel buffer.
//
// The buffer holds width*height pixels in Format, row-major with a stride of
// width*4 bytes. A Surface is built for one redraw, used for a bounded
// sequence of drawing calls, and then dropped; it never keeps the buffer
// past that. Every call completes its writes before returning.
//
// Surface is not safe for concurrent use. The caller must not let anything
// else write the buffer while a surface is drawing into it.
type Surface struct {
	width  int
	height int
	buf    []byte

	clip    Rect
	clipped bool

	// region is the surface bounds intersected with the active clip.
	region clip.Region
}

// NewSurface wraps buf as a width x height surface. buf must be exactly
// width*height*4 bytes long.
func NewSurface(buf []byte, width, height int, opts ...SurfaceOption) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if want := width * height * BytesPerPixel; len(buf) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrBufferSize, len(buf), want, width, height)
	}

	o := defaultSurfaceOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Surface{
		width:  width,
		height: height,
		buf:    buf,
	}
	if o.clip != nil {
		s.SetClip(*o.clip)
	} else {
		s.ResetClip()
	}

	Logger().Debug("softdraw: surface created",
		"width", width, "height", height, "format", Format.String(), "clipped", s.clipped)
	return s, nil
}

// Width returns the width of the surface in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Data returns the borrowed buffer.
func (s *Surface) Data() []byte {
	return s.buf
}

// SetClip restricts subsequent writes to r. Both edges of r are inclusive.
// It replaces any previous clip.
func (s *Surface) SetClip(r Rect) {
	s.clip = r
	s.clipped = true
	s.region = clip.Bounds(s.width, s.height).Intersect(toClipRect(r))
}

// ResetClip removes the active clip.
func (s *Surface) ResetClip() {
	s.clip = Rect{}
	s.clipped = false
	s.region = clip.Bounds(s.width, s.height)
}

// Clip returns the active clip rectangle, if any.
func (s *Surface) Clip() (Rect, bool) {
	return s.clip, s.clipped
}

// Visible reports whether the clip admits pixel (x, y). It is always true
// when no clip is set. Bounds are checked separately by the write path.
func (s *Surface) Visible(x, y int) bool {
	if !s.clipped {
		return true
	}
	return toClipRect(s.clip).Contains(float64(x), float64(y))
}

// Pixel returns the stored bytes of pixel (x, y). Out-of-range coordinates
// return the zero color.
func (s *Surface) Pixel(x, y int) RGBA8 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return RGBA8{}
	}
	return Unpack(s.buf[PixOffset(x, y, s.width):])
}

// Composite blends c over pixel (x, y). Pixels outside the surface or the
// active clip are left alone.
func (s *Surface) Composite(x, y int, c RGBA) {
	if !s.region.Contains(x, y) {
		return
	}
	p := s.buf[PixOffset(x, y, s.width):]
	Pack(p, Composite(Unpack(p), c))
}

// compositeRow blends c over the inclusive run [x0, x1] on row y. The run
// must already be clamped to the region.
func (s *Surface) compositeRow(x0, x1, y int, c RGBA) {
	i := PixOffset(x0, y, s.width)
	for x := x0; x <= x1; x++ {
		p := s.buf[i : i+BytesPerPixel]
		Pack(p, Composite(Unpack(p), c))
		i += BytesPerPixel
	}
}

// Fill overwrites every pixel with c, ignoring the clip. It is meant for
// clearing a frame before drawing.
func (s *Surface) Fill(c RGBA) {
	var px [BytesPerPixel]byte
	r, g, b, a := blend.Source(c.R, c.G, c.B, c.A, 0, 0, 0, 0)
	Pack(px[:], RGBA8{R: r, G: g, B: b, A: a})

	copy(s.buf, px[:])
	for n := BytesPerPixel; n < len(s.buf); n *= 2 {
		copy(s.buf[n:], s.buf[:n])
	}
}

// Composite returns the result of blending c over the stored pixel existing
// with the "over" operator. Color channels become existing*(1-a) + c*a,
// rounded to the nearest byte, and the alpha channel becomes 255. A fully
// transparent c returns existing unchanged.
func Composite(existing RGBA8, c RGBA) RGBA8 {
	r, g, b, a := blend.SourceOver(c.R, c.G, c.B, c.A, existing.R, existing.G, existing.B, existing.A)
	return RGBA8{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	p := s.Pixel(x, y)
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

func toClipRect(r Rect) clip.Rect {
	return clip.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
