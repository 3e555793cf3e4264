package script

import (
	"errors"
	"fmt"

	rt "github.com/arnodel/golua/runtime"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/text"
)

func (sc *Script) registerFunctions() {
	sc.setGoFunction("fill", sc.fill, 1)
	sc.setGoFunction("set_clip", sc.setClip, 4)
	sc.setGoFunction("reset_clip", sc.resetClip, 0)
	sc.setGoFunction("draw_line", sc.drawLine, 5)
	sc.setGoFunction("draw_rect", sc.drawRect, 5)
	sc.setGoFunction("draw_label", sc.drawLabel, 4)
	sc.setGoFunction("measure_label", sc.measureLabel, 1)
	sc.setGoFunction("rgba", rgba, 3)
}

func (sc *Script) setGoFunction(name string, fn rt.GoFunctionFunc, nArgs int) {
	f := rt.NewGoFunction(fn, name, nArgs, true)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, f)
	sc.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(f))
}

// surface returns the draw target. The script mutex is held by Draw for
// the whole call, so no further locking is needed here.
func (sc *Script) surface(fn string) (*softdraw.Surface, error) {
	if sc.target == nil {
		return nil, fmt.Errorf("%s: %w", fn, ErrNoSurface)
	}
	return sc.target, nil
}

// fill handles fill(color)
func (sc *Script) fill(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := sc.surface("fill")
	if err != nil {
		return nil, err
	}
	col, err := getColorArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	s.Fill(col)
	return c.Next(), nil
}

// setClip handles set_clip(x, y, w, h)
func (sc *Script) setClip(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := sc.surface("set_clip")
	if err != nil {
		return nil, err
	}
	r, err := getRectArgs(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_clip: %w", err)
	}
	s.SetClip(r)
	return c.Next(), nil
}

// resetClip handles reset_clip()
func (sc *Script) resetClip(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := sc.surface("reset_clip")
	if err != nil {
		return nil, err
	}
	s.ResetClip()
	return c.Next(), nil
}

// drawLine handles draw_line(x1, y1, x2, y2, color). A diagonal line is
// not a Lua error; it returns false and a message instead.
func (sc *Script) drawLine(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := sc.surface("draw_line")
	if err != nil {
		return nil, err
	}
	args := getAllArgs(c)
	var v [4]float64
	for i := range v {
		if v[i], err = getFloatArg(args, i); err != nil {
			return nil, fmt.Errorf("draw_line: %w", err)
		}
	}
	col, err := getColorArg(args, 4)
	if err != nil {
		return nil, fmt.Errorf("draw_line: %w", err)
	}

	err = s.DrawLine(softdraw.Pt(v[0], v[1]), softdraw.Pt(v[2], v[3]), col)
	if errors.Is(err, softdraw.ErrUnsupportedGeometry) {
		return c.PushingNext(t.Runtime, rt.BoolValue(false), rt.StringValue(err.Error())), nil
	}
	if err != nil {
		return nil, fmt.Errorf("draw_line: %w", err)
	}
	return c.PushingNext1(t.Runtime, rt.BoolValue(true)), nil
}

// drawRect handles draw_rect(x, y, w, h, stroke[, fill])
func (sc *Script) drawRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := sc.surface("draw_rect")
	if err != nil {
		return nil, err
	}
	args := getAllArgs(c)
	r, err := getRectArgs(args, 0)
	if err != nil {
		return nil, fmt.Errorf("draw_rect: %w", err)
	}

	var attrs []softdraw.RectAttr
	if hasArg(args, 4) {
		col, err := getColorArg(args, 4)
		if err != nil {
			return nil, fmt.Errorf("draw_rect: stroke: %w", err)
		}
		attrs = append(attrs, softdraw.StrokeColor(col))
	}
	if hasArg(args, 5) {
		col, err := getColorArg(args, 5)
		if err != nil {
			return nil, fmt.Errorf("draw_rect: fill: %w", err)
		}
		attrs = append(attrs, softdraw.FillColor(col))
	}
	if err := s.DrawRect(r, attrs...); err != nil {
		return nil, fmt.Errorf("draw_rect: %w", err)
	}
	return c.Next(), nil
}

// drawLabel handles draw_label(text, x, y, color[, size]) and returns the
// label's measured width and height.
func (sc *Script) drawLabel(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	s, err := sc.surface("draw_label")
	if err != nil {
		return nil, err
	}
	args := getAllArgs(c)
	str, err := getStringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("draw_label: %w", err)
	}
	x, err := getFloatArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("draw_label: %w", err)
	}
	y, err := getFloatArg(args, 2)
	if err != nil {
		return nil, fmt.Errorf("draw_label: %w", err)
	}
	col, err := getColorArg(args, 3)
	if err != nil {
		return nil, fmt.Errorf("draw_label: %w", err)
	}
	face, err := sc.sizedFace(args, 4)
	if err != nil {
		return nil, fmt.Errorf("draw_label: %w", err)
	}

	label := face.Layout(str, softdraw.Pt(x, y))
	s.DrawLabel(label, col)
	w, h := s.MeasureLabel(label)
	return c.PushingNext(t.Runtime, rt.FloatValue(w), rt.FloatValue(h)), nil
}

// measureLabel handles measure_label(text[, size]). It works outside draw.
func (sc *Script) measureLabel(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	str, err := getStringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("measure_label: %w", err)
	}
	face, err := sc.sizedFace(args, 1)
	if err != nil {
		return nil, fmt.Errorf("measure_label: %w", err)
	}
	w, h := face.Measure(str)
	return c.PushingNext(t.Runtime, rt.FloatValue(w), rt.FloatValue(h)), nil
}

func (sc *Script) sizedFace(args []rt.Value, idx int) (*text.Face, error) {
	var size float64
	if hasArg(args, idx) {
		v, err := getFloatArg(args, idx)
		if err != nil {
			return nil, err
		}
		size = v
	}
	return sc.face(size)
}

// rgba handles rgba(r, g, b[, a]) and returns {r=, g=, b=, a=}.
func rgba(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	var v [4]float64
	v[3] = 1
	for i := range v {
		if i == 3 && !hasArg(args, i) {
			break
		}
		f, err := getFloatArg(args, i)
		if err != nil {
			return nil, fmt.Errorf("rgba: %w", err)
		}
		v[i] = f
	}

	tbl := rt.NewTable()
	for i, k := range colorKeys {
		tbl.Set(rt.StringValue(k), rt.FloatValue(v[i]))
	}
	return c.PushingNext1(t.Runtime, rt.TableValue(tbl)), nil
}

var colorKeys = [4]string{"r", "g", "b", "a"}

// getAllArgs combines Args() and Etc() to get all arguments including varargs
func getAllArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

// hasArg reports whether argument idx was passed and is not nil.
func hasArg(args []rt.Value, idx int) bool {
	return idx < len(args) && !args[idx].IsNil()
}

func getFloatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	return toFloat(args[idx], idx)
}

func toFloat(v rt.Value, idx int) (float64, error) {
	if f, ok := v.TryFloat(); ok {
		return f, nil
	}
	if i, ok := v.TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx+1)
}

func getStringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx+1)
}

func getRectArgs(args []rt.Value, idx int) (softdraw.Rect, error) {
	var v [4]float64
	for i := range v {
		f, err := getFloatArg(args, idx+i)
		if err != nil {
			return softdraw.Rect{}, err
		}
		v[i] = f
	}
	return softdraw.NewRect(v[0], v[1], v[2], v[3]), nil
}

// getColorArg accepts a color string or a table with r, g, b[, a] fields
// or array entries 1..4.
func getColorArg(args []rt.Value, idx int) (softdraw.RGBA, error) {
	if !hasArg(args, idx) {
		return softdraw.RGBA{}, fmt.Errorf("argument %d: missing color", idx+1)
	}
	if s, ok := args[idx].TryString(); ok {
		return softdraw.ParseColor(s)
	}
	tbl, ok := args[idx].TryTable()
	if !ok {
		return softdraw.RGBA{}, fmt.Errorf("argument %d is not a color", idx+1)
	}

	v := [4]float64{0, 0, 0, 1}
	for i, k := range colorKeys {
		field := tbl.Get(rt.StringValue(k))
		if field.IsNil() {
			field = tbl.Get(rt.IntValue(int64(i + 1)))
		}
		if field.IsNil() {
			if i == 3 {
				break
			}
			return softdraw.RGBA{}, fmt.Errorf("argument %d: color has no %s", idx+1, k)
		}
		f, err := toFloat(field, idx)
		if err != nil {
			return softdraw.RGBA{}, fmt.Errorf("argument %d: color %s is not a number", idx+1, k)
		}
		v[i] = f
	}
	return softdraw.RGBA2(v[0], v[1], v[2], v[3]), nil
}
