package ui

import (
	"errors"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/text"
)

const buttonPadding = 4

// UI is an immediate-mode widget set. Each frame runs Begin, any number of
// widget calls, then End; widgets draw as they are called and report
// interaction from the pointer state fed in between frames.
type UI struct {
	face  *text.Face
	theme Theme

	mouse    softdraw.Point
	down     bool
	pressAt  softdraw.Point
	released bool

	s      *softdraw.Surface
	origin softdraw.Point
	errs   []error
}

// New returns a UI drawing text with face.
func New(face *text.Face, theme Theme) *UI {
	return &UI{face: face, theme: theme}
}

// Theme returns the UI colors.
func (u *UI) Theme() Theme {
	return u.theme
}

// MouseMove records the pointer position in surface pixels.
func (u *UI) MouseMove(p softdraw.Point) {
	u.mouse = p
}

// MouseButton records a press or release of the primary button.
func (u *UI) MouseButton(down bool) {
	switch {
	case down && !u.down:
		u.pressAt = u.mouse
	case !down && u.down:
		u.released = true
	}
	u.down = down
}

// Begin starts a frame on s.
func (u *UI) Begin(s *softdraw.Surface) {
	u.s = s
	u.origin = softdraw.Point{}
	u.errs = u.errs[:0]
}

// End finishes the frame and returns any drawing errors. A release not
// claimed by a button during the frame is dropped.
func (u *UI) End() error {
	u.s = nil
	u.released = false
	return errors.Join(u.errs...)
}

// Window draws a panel at pos with the given size and runs fn with widget
// positions relative to it and drawing clipped to it.
func (u *UI) Window(pos, size softdraw.Point, fn func()) {
	r := softdraw.NewRect(pos.X, pos.Y, size.X, size.Y)
	u.check(u.s.DrawRect(r,
		softdraw.FillColor(u.theme.PrimaryActive),
		softdraw.StrokeColor(u.theme.SecondaryActive),
	))

	prev, hadClip := u.s.Clip()
	u.s.SetClip(r)
	u.origin = pos
	fn()
	u.origin = softdraw.Point{}
	if hadClip {
		u.s.SetClip(prev)
	} else {
		u.s.ResetClip()
	}
}

// Label draws s with its top-left at pos.
func (u *UI) Label(pos softdraw.Point, s string) {
	u.s.DrawLabel(u.face.Layout(s, u.origin.Add(pos)), u.theme.SecondaryActive)
}

// Button draws a button with label at pos and reports whether it was
// clicked: pressed and released with the pointer inside it.
func (u *UI) Button(pos softdraw.Point, label string) bool {
	at := u.origin.Add(pos)
	w, h := u.face.Measure(label)
	r := softdraw.NewRect(at.X, at.Y, w+2*buttonPadding, h+2*buttonPadding)

	hovered := r.Contains(u.mouse)
	u.check(u.s.DrawRect(r,
		softdraw.FillColor(u.theme.PrimaryInactive),
		softdraw.StrokeColor(u.theme.SecondaryActive),
	))
	if hovered {
		u.check(u.s.DrawRect(r, softdraw.FillColor(u.theme.SecondaryActive.Scale(0.25))))
	}
	u.s.DrawLabel(
		u.face.Layout(label, at.Add(softdraw.Pt(buttonPadding, buttonPadding))),
		u.theme.SecondaryActive,
	)

	if u.released && hovered && r.Contains(u.pressAt) {
		u.released = false
		return true
	}
	return false
}

func (u *UI) check(err error) {
	if err != nil {
		u.errs = append(u.errs, err)
	}
}
