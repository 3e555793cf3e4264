package ui

import (
	"errors"
	"fmt"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/text"
)

// Counter is a window with a "Counter: N" label and an "increment" button.
// It implements softdraw.Frame.
type Counter struct {
	ui    *UI
	count int
}

// Counter window placement, in surface pixels and window-relative pixels.
var (
	CounterWindowPos  = softdraw.Pt(50, 50)
	CounterWindowSize = softdraw.Pt(200, 100)
	CounterLabelPos   = softdraw.Pt(20, 20)
	CounterButtonPos  = softdraw.Pt(100, 50)
)

// NewCounter returns a counter at zero drawn by u.
func NewCounter(u *UI) *Counter {
	return &Counter{ui: u}
}

// Count returns the number of clicks so far.
func (c *Counter) Count() int {
	return c.count
}

// Paint draws the counter window and applies a click from the last frame.
func (c *Counter) Paint(s *softdraw.Surface) error {
	c.ui.Begin(s)
	c.ui.Window(CounterWindowPos, CounterWindowSize, func() {
		c.ui.Label(CounterLabelPos, fmt.Sprintf("Counter: %d", c.count))
		if c.ui.Button(CounterButtonPos, "increment") {
			c.count++
			softdraw.Logger().Debug("ui: counter incremented", "count", c.count)
		}
	})
	return c.ui.End()
}

// DemoTitle is the window title of the demo.
const DemoTitle = "Perturabo"

// Demo is the decorated counter window used by softdraw-view -demo.
type Demo struct {
	ui      *UI
	counter *Counter
	deco    Decoration

	width, height int
	pressed       Part
	closing       bool
}

// NewDemo returns an active demo window using face for all text.
func NewDemo(face *text.Face) *Demo {
	theme := DefaultTheme()
	u := New(face, theme)
	return &Demo{
		ui:      u,
		counter: NewCounter(u),
		deco: Decoration{
			Title:  DemoTitle,
			Active: true,
			Theme:  theme,
			Face:   face,
		},
	}
}

// SetActive switches between focused and unfocused decoration colors.
func (d *Demo) SetActive(active bool) {
	d.deco.Active = active
}

// MouseMove records the pointer position.
func (d *Demo) MouseMove(p softdraw.Point) {
	d.ui.MouseMove(p)
	d.deco.Hover = HitDecoration(d.width, d.height, p)
}

// MouseButton records a press or release. Releasing over the close button
// after pressing it requests close.
func (d *Demo) MouseButton(down bool) {
	if down {
		d.pressed = d.deco.Hover
	} else if d.pressed == PartClose && d.deco.Hover == PartClose {
		d.closing = true
	}
	d.ui.MouseButton(down)
}

// CloseRequested reports whether the close button was clicked.
func (d *Demo) CloseRequested() bool {
	return d.closing
}

// Count returns the counter value.
func (d *Demo) Count() int {
	return d.counter.Count()
}

// Paint draws one frame of the demo.
func (d *Demo) Paint(s *softdraw.Surface) error {
	d.width, d.height = s.Width(), s.Height()
	s.Fill(softdraw.Black)
	return errors.Join(
		DrawDecoration(s, d.deco),
		d.counter.Paint(s),
	)
}
