// Package softdraw is a software rendering backend for immediate-mode user
// interfaces.
//
// A Surface borrows a window's pixel buffer for one redraw and writes drawing
// commands straight into it:
//
//	s, err := softdraw.NewSurface(buf, width, height)
//	if err != nil {
//	    return err
//	}
//	s.Fill(softdraw.White)
//	s.SetClip(softdraw.NewRect(0, 0, 200, 100))
//	_ = s.DrawRect(softdraw.NewRect(10, 10, 80, 24),
//	    softdraw.StrokeColor(softdraw.Red),
//	    softdraw.FillColor(softdraw.RGBA2(0, 0, 1, 0.5)))
//	s.DrawLabel(face.Layout("Hello", softdraw.Pt(14, 12)), softdraw.Black)
//
// # Buffer format
//
// Buffers hold 4 bytes per pixel, row-major, with a stride of width*4. The
// channel order is fixed to blue, green, red, alpha (FormatBGRA8) for every
// write path.
//
// # Compositing
//
// All primitives except Fill go through Composite, the "over" operator with
// a forced-opaque destination. Fill overwrites the whole buffer and ignores
// the clip.
//
// # Text
//
// The surface does not load fonts or shape text. It consumes Labels, runs of
// positioned glyphs that expose per-pixel coverage. The text sub-package
// builds them from TrueType/OpenType fonts.
package softdraw
