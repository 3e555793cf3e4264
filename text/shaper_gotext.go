package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/softdraw"
)

// GoTextShaper shapes text with the HarfBuzz port from go-text/typesetting.
// Unlike BuiltinShaper it applies GSUB and GPOS features: ligatures,
// contextual forms, mark positioning and bidirectional reordering within a
// run.
//
//	shaper := text.NewGoTextShaper()
//	source, err := text.NewFontSource(data, text.WithShaper(shaper))
//
// GoTextShaper is safe for concurrent use. Parsed fonts are cached per
// FontSource; HarfbuzzShaper instances, which hold mutable buffers, are
// pooled.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[*FontSource]*font.Font
}

// NewGoTextShaper creates a new GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[*FontSource]*font.Font),
	}
}

// Shape implements the Shaper interface.
func (s *GoTextShaper) Shape(text string, face *Face) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}

	goTextFont, err := s.getOrCreateFont(face.source)
	if err != nil {
		softdraw.Logger().Warn("text: go-text could not parse font",
			"font", face.source.name, "err", err)
		return nil
	}

	// font.Face is not safe for concurrent use; it is cheap to create.
	goTextFace := font.NewFace(goTextFont)

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(face.config.direction),
		Face:      goTextFace,
		Size:      face.ppem,
		Script:    detectScript(runes),
		Language:  language.NewLanguage(face.config.language),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	return convertGlyphs(output.Glyphs, face.config.scaleX)
}

// getOrCreateFont returns the cached go-text font for source.
func (s *GoTextShaper) getOrCreateFont(source *FontSource) (*font.Font, error) {
	s.mu.RLock()
	if f, ok := s.fontCache[source]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.fontCache[source]; ok {
		return f, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(source.data))
	if err != nil {
		return nil, &FontError{Name: source.name, Op: "parse", Err: err}
	}
	s.fontCache[source] = face.Font
	return face.Font, nil
}

// RemoveSource drops the cached font for source.
func (s *GoTextShaper) RemoveSource(source *FontSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fontCache, source)
}

// mapDirection converts a resolved Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune. Mixed-script
// text should be split into runs by the caller.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// convertGlyphs converts go-text output to ShapedGlyphs. go-text offsets
// point up; ours point down.
func convertGlyphs(glyphs []shaping.Glyph, scaleX float64) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]ShapedGlyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		adv := fromFixed(g.Advance) * scaleX
		result[i] = ShapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph indices are 16-bit
			Cluster:  g.TextIndex(),
			X:        x + fromFixed(g.XOffset)*scaleX,
			Y:        -fromFixed(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result
}
