package softdraw

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// Verify at compile time that Surface implements image.Image.
var _ image.Image = (*Surface)(nil)

func newTestSurface(t testing.TB, w, h int, opts ...SurfaceOption) *Surface {
	t.Helper()
	s, err := NewSurface(make([]byte, w*h*BytesPerPixel), w, h, opts...)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d) = %v", w, h, err)
	}
	return s
}

// snapshot copies the surface buffer so writes can be diffed later.
func snapshot(s *Surface) []byte {
	return append([]byte(nil), s.Data()...)
}

// changedPixels returns the set of pixels whose bytes differ from before.
func changedPixels(s *Surface, before []byte) map[image.Point]bool {
	out := make(map[image.Point]bool)
	data := s.Data()
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			i := PixOffset(x, y, s.Width())
			for k := 0; k < BytesPerPixel; k++ {
				if data[i+k] != before[i+k] {
					out[image.Pt(x, y)] = true
					break
				}
			}
		}
	}
	return out
}

func TestNewSurfaceValidation(t *testing.T) {
	tests := []struct {
		name    string
		buf     int
		w, h    int
		wantErr error
	}{
		{"ok", 4 * 3 * 4, 4, 3, nil},
		{"short buffer", 4*3*4 - 1, 4, 3, ErrBufferSize},
		{"long buffer", 4*3*4 + 4, 4, 3, ErrBufferSize},
		{"zero width", 0, 0, 3, ErrInvalidSize},
		{"negative height", 16, 4, -1, ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSurface(make([]byte, tt.buf), tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSurface() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFillChannelOrder(t *testing.T) {
	s := newTestSurface(t, 2, 2)
	s.Fill(Bytes(0x11, 0x22, 0x33, 0x44))

	want := []byte{0x33, 0x22, 0x11, 0x44}
	data := s.Data()
	for i := 0; i < len(data); i += BytesPerPixel {
		for k := range want {
			if data[i+k] != want[k] {
				t.Fatalf("pixel at byte %d = %v, want %v (B, G, R, A)", i, data[i:i+4], want)
			}
		}
	}
	if got := s.Pixel(1, 1); got != (RGBA8{R: 0x11, G: 0x22, B: 0x33, A: 0x44}) {
		t.Errorf("Pixel(1, 1) = %v", got)
	}
}

func TestFillWhiteSizes(t *testing.T) {
	sizes := [][2]int{{1, 1}, {3, 1}, {1, 7}, {17, 13}, {640, 480}}
	if !testing.Short() {
		sizes = append(sizes, [2]int{4096, 4096})
	}
	for _, sz := range sizes {
		s := newTestSurface(t, sz[0], sz[1])
		s.SetClip(NewRect(0, 0, 0, 0))
		s.Fill(White)
		for i, b := range s.Data() {
			if b != 0xff {
				t.Fatalf("%dx%d: byte %d = %#x after Fill(White)", sz[0], sz[1], i, b)
			}
		}
	}
}

func TestCompositeOpaqueAndTransparent(t *testing.T) {
	existing := []RGBA8{{0, 0, 0, 0}, {255, 255, 255, 255}, {1, 2, 3, 4}, {200, 100, 50, 128}}
	c := Bytes(10, 20, 30, 255)
	for _, e := range existing {
		if got := Composite(e, c); got != (RGBA8{R: 10, G: 20, B: 30, A: 255}) {
			t.Errorf("Composite(%v, opaque) = %v", e, got)
		}
		if got := Composite(e, Bytes(10, 20, 30, 0)); got != e {
			t.Errorf("Composite(%v, transparent) = %v, want unchanged", e, got)
		}
	}
}

func TestCompositeForcesOpaqueAlpha(t *testing.T) {
	got := Composite(RGBA8{R: 0, G: 0, B: 0, A: 0}, RGBA2(1, 1, 1, 0.5))
	if got != (RGBA8{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("Composite(half white over transparent) = %v", got)
	}
}

func TestSurfaceCompositeBounds(t *testing.T) {
	s := newTestSurface(t, 4, 4)
	before := snapshot(s)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {1 << 20, 1 << 20}} {
		s.Composite(p.X, p.Y, Red)
	}
	if n := len(changedPixels(s, before)); n != 0 {
		t.Errorf("out-of-range composites changed %d pixels", n)
	}
	s.Composite(3, 3, Red)
	if got := s.Pixel(3, 3); got != (RGBA8{R: 255, A: 255}) {
		t.Errorf("Pixel(3, 3) = %v", got)
	}
}

func TestClip(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	if _, ok := s.Clip(); ok {
		t.Fatal("new surface should have no clip")
	}
	if !s.Visible(9, 9) {
		t.Error("Visible should be true without a clip")
	}

	s.SetClip(NewRect(2, 2, 3, 3))
	if r, ok := s.Clip(); !ok || r != NewRect(2, 2, 3, 3) {
		t.Errorf("Clip() = %v, %v", r, ok)
	}
	for _, tt := range []struct {
		x, y int
		want bool
	}{
		{2, 2, true}, {5, 5, true}, {1, 3, false}, {6, 3, false}, {3, 6, false},
	} {
		if got := s.Visible(tt.x, tt.y); got != tt.want {
			t.Errorf("Visible(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	before := snapshot(s)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Composite(x, y, Green)
		}
	}
	changed := changedPixels(s, before)
	if len(changed) != 16 {
		t.Errorf("clip admitted %d pixels, want 16", len(changed))
	}
	for p := range changed {
		if !s.Visible(p.X, p.Y) {
			t.Errorf("pixel %v written outside clip", p)
		}
	}

	s.ResetClip()
	if _, ok := s.Clip(); ok {
		t.Error("ResetClip should clear the clip")
	}
}

func TestClipNaNOriginAdmitsNothing(t *testing.T) {
	for _, r := range []Rect{
		NewRect(math.NaN(), 0, 2, 2),
		NewRect(0, math.NaN(), 2, 2),
	} {
		s := newTestSurface(t, 4, 4)
		s.SetClip(r)
		before := snapshot(s)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if s.Visible(x, y) {
					t.Errorf("clip %v: Visible(%d, %d) = true", r, x, y)
				}
				s.Composite(x, y, White)
			}
		}
		if n := len(changedPixels(s, before)); n != 0 {
			t.Errorf("clip %v admitted %d pixels, want 0", r, n)
		}
	}
}

func TestWithClipOption(t *testing.T) {
	s := newTestSurface(t, 8, 8, WithClip(NewRect(0, 0, 1, 1)))
	if _, ok := s.Clip(); !ok {
		t.Fatal("WithClip should set an active clip")
	}
	if s.Visible(2, 2) {
		t.Error("Visible(2, 2) should be false")
	}
}

func TestSurfaceImage(t *testing.T) {
	s := newTestSurface(t, 3, 2)
	s.Fill(Bytes(1, 2, 3, 255))
	if b := s.Bounds(); b != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds() = %v", b)
	}
	if c := s.At(2, 1); c != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("At(2, 1) = %v", c)
	}
	if c := s.At(5, 5); c != (color.NRGBA{}) {
		t.Errorf("At out of range = %v", c)
	}
	if s.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel should be NRGBA")
	}
}

func TestRenderBorrowsBuffer(t *testing.T) {
	buf := make([]byte, 4*4*BytesPerPixel)
	err := Render(buf, 4, 4, FrameFunc(func(s *Surface) error {
		s.Fill(Blue)
		return nil
	}))
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if buf[0] != 255 || buf[2] != 0 || buf[3] != 255 {
		t.Errorf("first pixel = %v, want blue in BGRA", buf[:4])
	}

	wantErr := errors.New("frame failed")
	if err := Render(buf, 4, 4, FrameFunc(func(*Surface) error { return wantErr })); !errors.Is(err, wantErr) {
		t.Errorf("Render() error = %v, want %v", err, wantErr)
	}
	if err := Render(buf, 5, 4, FrameFunc(func(*Surface) error { return nil })); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Render() with wrong size = %v, want ErrBufferSize", err)
	}
}

func BenchmarkFill(b *testing.B) {
	s := newTestSurface(b, 1920, 1080)
	b.ReportAllocs()
	for b.Loop() {
		s.Fill(White)
	}
}
