package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/softdraw"
)

// Paint runs every command against s in document order. A failing command
// is logged and skipped; the failures come back joined, each as a
// *CommandError.
func (sc *Scene) Paint(s *softdraw.Surface) error {
	var errs []error
	for i, op := range sc.doc.Ops {
		if err := sc.apply(s, op); err != nil {
			cerr := &CommandError{Index: i, Kind: op.Kind, Err: err}
			softdraw.Logger().Warn("scene: op skipped", "index", i, "kind", op.Kind, "err", err)
			errs = append(errs, cerr)
		}
	}
	return errors.Join(errs...)
}

func (sc *Scene) apply(s *softdraw.Surface, op Op) error {
	switch op.Kind {
	case "fill":
		c, err := sc.color(op.Color, "color")
		if err != nil {
			return err
		}
		s.Fill(c)

	case "clip":
		r, err := rectArg(op.Rect)
		if err != nil {
			return err
		}
		s.SetClip(r)

	case "unclip":
		s.ResetClip()

	case "line":
		from, err := pointArg(op.From, "from")
		if err != nil {
			return err
		}
		to, err := pointArg(op.To, "to")
		if err != nil {
			return err
		}
		c, err := sc.color(op.Color, "color")
		if err != nil {
			return err
		}
		return s.DrawLine(from, to, c)

	case "rect":
		r, err := rectArg(op.Rect)
		if err != nil {
			return err
		}
		var attrs []softdraw.RectAttr
		if op.Fill != "" {
			c, err := sc.color(op.Fill, "fill")
			if err != nil {
				return err
			}
			attrs = append(attrs, softdraw.FillColor(c))
		}
		if op.Stroke != "" {
			c, err := sc.color(op.Stroke, "stroke")
			if err != nil {
				return err
			}
			attrs = append(attrs, softdraw.StrokeColor(c))
		}
		return s.DrawRect(r, attrs...)

	case "label":
		at, err := pointArg(op.At, "at")
		if err != nil {
			return err
		}
		c, err := sc.color(op.Color, "color")
		if err != nil {
			return err
		}
		face, err := sc.face(op.Size)
		if err != nil {
			return err
		}
		s.DrawLabel(face.Layout(op.Text, at), c)

	default:
		return ErrUnknownOp
	}
	return nil
}

// color resolves a palette name, common color name or hex string.
func (sc *Scene) color(v, field string) (softdraw.RGBA, error) {
	if v == "" {
		return softdraw.RGBA{}, fmt.Errorf("%w: missing %s", ErrBadArgs, field)
	}
	if c, ok := sc.palette[v]; ok {
		return c, nil
	}
	c, err := softdraw.ParseColor(v)
	if err != nil {
		return softdraw.RGBA{}, fmt.Errorf("%s: %w", field, err)
	}
	return c, nil
}

func pointArg(v []float64, field string) (softdraw.Point, error) {
	if len(v) != 2 {
		return softdraw.Point{}, fmt.Errorf("%w: %s wants [x, y], got %v", ErrBadArgs, field, v)
	}
	return softdraw.Pt(v[0], v[1]), nil
}

func rectArg(v []float64) (softdraw.Rect, error) {
	if len(v) != 4 {
		return softdraw.Rect{}, fmt.Errorf("%w: rect wants [x, y, w, h], got %v", ErrBadArgs, v)
	}
	return softdraw.NewRect(v[0], v[1], v[2], v[3]), nil
}
