package softdraw

// Frame paints one complete frame onto a surface. Calls are applied in
// order, later ones on top of earlier ones.
type Frame interface {
	Paint(s *Surface) error
}

// FrameFunc adapts a function to the Frame interface.
type FrameFunc func(s *Surface) error

// Paint calls f(s).
func (f FrameFunc) Paint(s *Surface) error {
	return f(s)
}

// Render borrows buf for a single frame: it wraps buf in a Surface, lets f
// paint it and drops the surface before returning. The caller may hand buf
// to a display system afterwards.
func Render(buf []byte, width, height int, f Frame, opts ...SurfaceOption) error {
	s, err := NewSurface(buf, width, height, opts...)
	if err != nil {
		return err
	}
	return f.Paint(s)
}
