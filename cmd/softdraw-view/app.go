package main

import (
	"sync"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/internal/ui"
)

// paintFunc draws frame n of whatever is being viewed.
type paintFunc func(s *softdraw.Surface, n int) error

// app owns the frame buffer and the current frame source. Presenters call
// render once per displayed frame and feed pointer input back in.
type app struct {
	width, height int
	buf           []byte

	mu      sync.Mutex
	n       int
	paint   paintFunc
	release func()
	demo    *ui.Demo
}

func newApp(width, height int, paint paintFunc, release func()) *app {
	return &app{
		width:   width,
		height:  height,
		buf:     make([]byte, width*height*softdraw.BytesPerPixel),
		paint:   paint,
		release: release,
	}
}

func newDemoApp(width, height int, d *ui.Demo) *app {
	a := newApp(width, height, func(s *softdraw.Surface, _ int) error {
		return d.Paint(s)
	}, nil)
	a.demo = d
	return a
}

// render paints the next frame into the buffer and returns it. The slice
// stays valid until the next call.
func (a *app) render() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.paint == nil {
		return a.buf, nil
	}
	n := a.n
	a.n++
	err := softdraw.Render(a.buf, a.width, a.height, softdraw.FrameFunc(func(s *softdraw.Surface) error {
		return a.paint(s, n)
	}))
	return a.buf, err
}

// swap replaces the frame source, releasing the old one.
func (a *app) swap(paint paintFunc, release func()) {
	a.mu.Lock()
	old := a.release
	a.paint, a.release = paint, release
	a.mu.Unlock()
	if old != nil {
		old()
	}
}

func (a *app) pointer(x, y float64) {
	if a.demo == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.demo.MouseMove(softdraw.Pt(x, y))
}

func (a *app) button(down bool) {
	if a.demo == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.demo.MouseButton(down)
}

// closeRequested reports whether the viewed content asked to close.
func (a *app) closeRequested() bool {
	if a.demo == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.demo.CloseRequested()
}

func (a *app) close() {
	a.swap(nil, nil)
}
