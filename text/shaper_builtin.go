package text

import (
	"slices"
	"unicode"
)

// BuiltinShaper maps runes to glyphs one at a time using the font's cmap,
// advance widths and kern table. It covers Latin, Cyrillic, Greek, CJK and
// other scripts that need no contextual shaping. Right-to-left text is
// emitted in reversed rune order.
//
// Control characters produce no glyph. Runes missing from the font map to
// the font's .notdef glyph.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements the Shaper interface.
func (BuiltinShaper) Shape(text string, face *Face) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}
	src := face.source
	hinting := face.config.hinting.font()
	scaleX := face.config.scaleX

	type item struct {
		gid     GlyphID
		cluster int
	}
	items := make([]item, 0, len(text))
	for cluster, r := range []rune(text) {
		if unicode.IsControl(r) {
			continue
		}
		gid, _ := src.GlyphIndex(r)
		items = append(items, item{gid: gid, cluster: cluster})
	}
	if face.config.direction == DirectionRTL {
		slices.Reverse(items)
	}

	result := make([]ShapedGlyph, 0, len(items))
	var x float64
	for i, it := range items {
		if i > 0 {
			x += src.kern(items[i-1].gid, it.gid, face.ppem, hinting) * scaleX
		}
		adv := src.advance(it.gid, face.ppem, hinting) * scaleX
		result = append(result, ShapedGlyph{
			GID:      it.gid,
			Cluster:  it.cluster,
			X:        x,
			XAdvance: adv,
		})
		x += adv
	}
	return result
}
