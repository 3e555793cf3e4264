//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/gogpu/softdraw"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// x11Window presents frames in a plain X11 window with PutImage. Surface
// buffers are BGRA, which is the ZPixmap layout at depth 24 and 32 on
// little-endian servers, so rows are sent unconverted.
type x11Window struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	win    xproto.Window
	gc     xproto.Gcontext

	protocols xproto.Atom
	delete    xproto.Atom
	maxBytes  int
}

func runX11(ctx context.Context, a *app, title string, fps int) error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	w, err := newX11Window(conn, a.width, a.height, title)
	if err != nil {
		return err
	}
	return w.loop(ctx, a, fps)
}

func newX11Window(conn *xgb.Conn, width, height int, title string) (*x11Window, error) {
	setup := xproto.Setup(conn)
	if len(setup.Roots) == 0 {
		return nil, errors.New("no screens found")
	}
	screen := &setup.Roots[0]
	if screen.RootDepth != 24 && screen.RootDepth != 32 {
		return nil, fmt.Errorf("unsupported color depth: %d", screen.RootDepth)
	}

	w := &x11Window{
		conn:     conn,
		screen:   screen,
		maxBytes: int(setup.MaximumRequestLength) * 4,
	}

	var err error
	if w.win, err = xproto.NewWindowId(conn); err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, w.win, screen.Root,
		0, 0, uint16(width), uint16(height), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			screen.BlackPixel,
			xproto.EventMaskExposure |
				xproto.EventMaskPointerMotion |
				xproto.EventMaskButtonPress |
				xproto.EventMaskButtonRelease |
				xproto.EventMaskStructureNotify,
		}).Check()
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	xproto.ChangeProperty(conn, xproto.PropModeReplace, w.win,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))

	if w.protocols, err = internAtom(conn, "WM_PROTOCOLS"); err != nil {
		return nil, err
	}
	if w.delete, err = internAtom(conn, "WM_DELETE_WINDOW"); err != nil {
		return nil, err
	}
	data := make([]byte, 4)
	xgb.Put32(data, uint32(w.delete))
	xproto.ChangeProperty(conn, xproto.PropModeReplace, w.win,
		w.protocols, xproto.AtomAtom, 32, 1, data)

	if w.gc, err = xproto.NewGcontextId(conn); err != nil {
		return nil, err
	}
	xproto.CreateGC(conn, w.gc, xproto.Drawable(w.win), 0, nil)
	xproto.MapWindow(conn, w.win)
	return w, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (w *x11Window) loop(ctx context.Context, a *app, fps int) error {
	events := make(chan xgb.Event)
	go func() {
		defer close(events)
		for {
			ev, err := w.conn.WaitForEvent()
			if ev == nil && err == nil {
				return
			}
			if err != nil {
				softdraw.Logger().Warn("view: x11 error", "err", err)
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			w.present(a)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case xproto.ExposeEvent:
				if e.Count == 0 {
					w.present(a)
				}
			case xproto.MotionNotifyEvent:
				a.pointer(float64(e.EventX), float64(e.EventY))
			case xproto.ButtonPressEvent:
				if e.Detail == xproto.ButtonIndex1 {
					a.pointer(float64(e.EventX), float64(e.EventY))
					a.button(true)
				}
			case xproto.ButtonReleaseEvent:
				if e.Detail == xproto.ButtonIndex1 {
					a.pointer(float64(e.EventX), float64(e.EventY))
					a.button(false)
				}
			case xproto.ClientMessageEvent:
				if e.Type == w.protocols && xproto.Atom(e.Data.Data32[0]) == w.delete {
					return nil
				}
			case xproto.DestroyNotifyEvent:
				return nil
			}
			if a.closeRequested() {
				return nil
			}
		}
	}
}

// present renders a frame and uploads it in as many PutImage requests as
// the server's request size limit needs.
func (w *x11Window) present(a *app) {
	buf, err := a.render()
	if err != nil {
		softdraw.Logger().Debug("view: frame error", "err", err)
	}

	stride := a.width * softdraw.BytesPerPixel
	rows := max((w.maxBytes-putImageHeader)/stride, 1)
	for y := 0; y < a.height; y += rows {
		n := min(rows, a.height-y)
		xproto.PutImage(w.conn, xproto.ImageFormatZPixmap, xproto.Drawable(w.win), w.gc,
			uint16(a.width), uint16(n), 0, int16(y), 0, w.screen.RootDepth,
			buf[y*stride:(y+n)*stride])
	}
	w.conn.Sync()
}
