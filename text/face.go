package text

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/softdraw"
)

// Face is a FontSource at one pixel size with layout options applied.
// Faces are cheap; create as many as needed. A Face is immutable and safe
// for concurrent use.
type Face struct {
	source *FontSource
	size   float64
	ppem   fixed.Int26_6
	config faceConfig
}

// Source returns the font source this face was created from.
func (f *Face) Source() *FontSource { return f.source }

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Direction returns the configured text direction, possibly DirectionAuto.
func (f *Face) Direction() Direction { return f.config.direction }

// Hinting returns the hinting mode.
func (f *Face) Hinting() Hinting { return f.config.hinting }

// ScaleX returns the horizontal stretch factor.
func (f *Face) ScaleX() float64 { return f.config.scaleX }

// Metrics returns the vertical metrics of the face. A font whose metrics
// cannot be read yields zero metrics.
func (f *Face) Metrics() Metrics {
	m, err := f.source.metrics(f.ppem, f.config.hinting.font())
	if err != nil {
		softdraw.Logger().Debug("text: metrics unavailable", "err", err)
	}
	return m
}

// Layout shapes s and places it with the top-left of its line at origin.
func (f *Face) Layout(s string, origin softdraw.Point) *Label {
	m := f.Metrics()
	l := &Label{
		text:    s,
		ascent:  m.Ascent,
		descent: m.Descent,
	}

	resolved := *f
	if resolved.config.direction == DirectionAuto {
		resolved.config.direction = DetectDirection(s)
	}

	for _, sg := range f.source.shaper.Shape(s, &resolved) {
		l.glyphs = append(l.glyphs, &PositionedGlyph{
			id:      sg.GID,
			cluster: sg.Cluster,
			anchor:  softdraw.Pt(origin.X+sg.X, origin.Y+sg.Y),
			advance: sg.XAdvance,
			mask:    f.source.mask(sg.GID, f.ppem, f.config.scaleX),
		})
		l.width = max(l.width, sg.X+sg.XAdvance)
	}
	return l
}

// Measure returns the size of the area that drawing s with this face would
// touch, as softdraw.Surface.MeasureLabel reports it.
func (f *Face) Measure(s string) (width, height float64) {
	r := f.Layout(s, softdraw.Point{}).Bounds()
	return r.W, r.H
}
