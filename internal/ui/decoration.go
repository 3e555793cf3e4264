package ui

import (
	"errors"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/internal/clip"
	"github.com/gogpu/softdraw/text"
)

const (
	// HeaderHeight is the height of the title bar including the divider.
	HeaderHeight = 24
	// ButtonWidth is the width of each title bar button.
	ButtonWidth = 24

	iconSize = 8
)

// Part identifies a region of a decorated window.
type Part int

const (
	PartNone Part = iota
	PartContent
	PartTitle
	PartMinimize
	PartMaximize
	PartClose
)

func (p Part) String() string {
	switch p {
	case PartNone:
		return "none"
	case PartContent:
		return "content"
	case PartTitle:
		return "title"
	case PartMinimize:
		return "minimize"
	case PartMaximize:
		return "maximize"
	case PartClose:
		return "close"
	default:
		return "unknown"
	}
}

// Decoration describes the title bar of a window.
type Decoration struct {
	Title  string
	Active bool
	// Hover is the part under the pointer, which gets hovered colors.
	Hover Part
	// Disabled buttons keep their idle colors and hide the close icon.
	Disabled []Part
	Theme    Theme
	// Face renders the title. No title is drawn when nil.
	Face *text.Face
}

func (d *Decoration) state(p Part) ButtonState {
	for _, q := range d.Disabled {
		if q == p {
			return ButtonDisabled
		}
	}
	if d.Hover == p {
		return ButtonHovered
	}
	return ButtonIdle
}

// buttonRect returns the inclusive box of a title bar button; the close
// button sits at the right edge with maximize and minimize to its left.
func buttonRect(width int, p Part) softdraw.Rect {
	slot := int(PartClose - p)
	x := width - (slot+1)*ButtonWidth
	return softdraw.NewRect(float64(x), 0, ButtonWidth-1, HeaderHeight-2)
}

// DrawDecoration paints the title bar across the top HeaderHeight rows of
// s: the bar, the title, three buttons and the divider line.
func DrawDecoration(s *softdraw.Surface, d Decoration) error {
	w := s.Width()
	var errs []error

	bar := softdraw.NewRect(0, 0, float64(w-1), HeaderHeight-2)
	errs = append(errs, box(s, bar, d.Theme.Primary(d.Active)))

	if d.Face != nil && d.Title != "" {
		drawTitle(s, d)
	}

	closeState := d.state(PartClose)
	closeBox := buttonRect(w, PartClose)
	errs = append(errs, box(s, closeBox, d.Theme.CloseButtonColor(closeState)))
	cross(s, closeBox, d.Theme.CloseButtonIconColor(closeState))

	icon := d.Theme.Primary(d.Active)
	maxBox := buttonRect(w, PartMaximize)
	errs = append(errs, box(s, maxBox, d.Theme.MaximizeButtonColor(d.state(PartMaximize))))
	cx, cy := center(maxBox)
	errs = append(errs, s.DrawRect(
		softdraw.NewRect(cx-iconSize/2, cy-iconSize/2, iconSize, iconSize),
		softdraw.StrokeColor(icon),
	))

	minBox := buttonRect(w, PartMinimize)
	errs = append(errs, box(s, minBox, d.Theme.MinimizeButtonColor(d.state(PartMinimize))))
	cx, cy = center(minBox)
	errs = append(errs, s.DrawLine(
		softdraw.Pt(cx-iconSize/2, cy+iconSize/2-1),
		softdraw.Pt(cx+iconSize/2, cy+iconSize/2-1),
		icon,
	))

	errs = append(errs, s.DrawLine(
		softdraw.Pt(0, HeaderHeight-1),
		softdraw.Pt(float64(w-1), HeaderHeight-1),
		d.Theme.Secondary(d.Active),
	))
	return errors.Join(errs...)
}

// drawTitle lays out the title vertically centered in the bar, clipped so
// it never runs under the buttons.
func drawTitle(s *softdraw.Surface, d Decoration) {
	prev, hadClip := s.Clip()
	defer func() {
		if hadClip {
			s.SetClip(prev)
		} else {
			s.ResetClip()
		}
	}()
	right := float64(s.Width() - 3*ButtonWidth - 1)
	s.SetClip(softdraw.NewRect(0, 0, right, HeaderHeight-2))

	m := d.Face.Metrics()
	top := max((HeaderHeight-1-m.LineHeight())/2, 1)
	s.DrawLabel(d.Face.Layout(d.Title, softdraw.Pt(8, top)), d.Theme.Secondary(d.Active))
}

// HitDecoration returns the part of a width x height decorated window
// under p.
func HitDecoration(width, height int, p softdraw.Point) Part {
	x, y := clip.Floor(p.X), clip.Floor(p.Y)
	if x < 0 || y < 0 || x >= width || y >= height {
		return PartNone
	}
	if y >= HeaderHeight {
		return PartContent
	}
	for _, part := range []Part{PartClose, PartMaximize, PartMinimize} {
		r := buttonRect(width, part)
		if x >= int(r.X) && x <= int(r.Right()) && y <= int(r.Bottom()) {
			return part
		}
	}
	return PartTitle
}

// box paints the whole inclusive box r: the fill covers the interior and
// the stroke the border.
func box(s *softdraw.Surface, r softdraw.Rect, c softdraw.RGBA) error {
	return s.DrawRect(r, softdraw.FillColor(c), softdraw.StrokeColor(c))
}

// cross draws the close icon. Its strokes are diagonal, so they are
// composited pixel by pixel rather than through DrawLine.
func cross(s *softdraw.Surface, r softdraw.Rect, c softdraw.RGBA) {
	cx, cy := center(r)
	x0, y0 := clip.Floor(cx), clip.Floor(cy)
	for i := -iconSize / 2; i <= iconSize/2; i++ {
		s.Composite(x0+i, y0+i, c)
		if i != 0 {
			s.Composite(x0+i, y0-i, c)
		}
	}
}

func center(r softdraw.Rect) (x, y float64) {
	return r.X + float64(int(r.W/2)), r.Y + float64(int(r.H/2))
}
