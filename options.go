package softdraw

// SurfaceOption configures a Surface during creation.
//
// Example:
//
//	s, err := softdraw.NewSurface(buf, 320, 240,
//	    softdraw.WithClip(softdraw.NewRect(0, 0, 160, 240)))
type SurfaceOption func(*surfaceOptions)

// surfaceOptions holds optional configuration for Surface creation.
type surfaceOptions struct {
	clip *Rect
}

// defaultSurfaceOptions returns the default surface options.
func defaultSurfaceOptions() surfaceOptions {
	return surfaceOptions{
		clip: nil, // No clip
	}
}

// WithClip starts the surface with r as its active clip, as if SetClip(r)
// had been called right after creation.
func WithClip(r Rect) SurfaceOption {
	return func(o *surfaceOptions) {
		o.clip = &r
	}
}

// RectAttr configures how DrawRect paints a rectangle.
type RectAttr func(*rectStyle)

// rectStyle is the resolved set of RectAttrs. Stroke and fill are
// independent; with neither set DrawRect paints nothing.
type rectStyle struct {
	stroke    RGBA
	hasStroke bool
	fill      RGBA
	hasFill   bool
}

// StrokeColor outlines the rectangle with c.
func StrokeColor(c RGBA) RectAttr {
	return func(s *rectStyle) {
		s.stroke = c
		s.hasStroke = true
	}
}

// FillColor paints the rectangle interior, excluding the one-pixel border, with c.
func FillColor(c RGBA) RectAttr {
	return func(s *rectStyle) {
		s.fill = c
		s.hasFill = true
	}
}
