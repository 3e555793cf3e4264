package text

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/softdraw"
)

// FontSource is a parsed font plus the caches shared by every Face made
// from it. Create one per font file and reuse it.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	name   string
	data   []byte
	font   *sfnt.Font
	shaper Shaper
	masks  *Cache[maskKey, *glyphMask]
	bufs   sync.Pool
}

// NewFontSource parses TrueType or OpenType data. The slice is retained
// and must not be modified afterwards.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, &FontError{Name: cfg.name, Op: "parse", Err: err}
	}

	s := &FontSource{
		name:   cfg.name,
		data:   data,
		font:   f,
		shaper: cfg.shaper,
		masks:  NewCache[maskKey, *glyphMask](cfg.cacheLimit),
	}
	s.bufs.New = func() any { return new(sfnt.Buffer) }

	if s.name == "" {
		buf := s.buffer()
		if family, err := f.Name(buf, sfnt.NameIDFamily); err == nil {
			s.name = family
		}
		s.bufs.Put(buf)
	}
	return s, nil
}

// NewFontSourceFromFile reads and parses the font file at path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return NewFontSource(data, opts...)
}

var defaultSource = sync.OnceValue(func() *FontSource {
	s, err := NewFontSource(gomono.TTF, WithName("Go Mono"))
	if err != nil {
		panic(fmt.Sprintf("text: embedded font: %v", err))
	}
	return s
})

// DefaultSource returns the shared source for the embedded Go Mono font.
func DefaultSource() *FontSource {
	return defaultSource()
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	return s.name
}

// Data returns the font file bytes. The slice must not be modified.
func (s *FontSource) Data() []byte {
	return s.data
}

// Shaper returns the shaper used by faces of this source.
func (s *FontSource) Shaper() Shaper {
	return s.shaper
}

// NumGlyphs returns the number of glyphs in the font.
func (s *FontSource) NumGlyphs() int {
	return s.font.NumGlyphs()
}

// Face returns a face of the given pixel size (em height).
func (s *FontSource) Face(size float64, opts ...FaceOption) (*Face, error) {
	if !(size > 0) || size > 1<<16 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	cfg := defaultFaceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Face{source: s, size: size, ppem: toFixed(size), config: cfg}, nil
}

// CachedGlyphs reports how many rasterized glyph masks are cached.
func (s *FontSource) CachedGlyphs() int {
	return s.masks.Len()
}

func (s *FontSource) buffer() *sfnt.Buffer {
	return s.bufs.Get().(*sfnt.Buffer)
}

// GlyphIndex returns the glyph for r, or false if the font has none.
func (s *FontSource) GlyphIndex(r rune) (GlyphID, bool) {
	buf := s.buffer()
	defer s.bufs.Put(buf)

	gid, err := s.font.GlyphIndex(buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

func (s *FontSource) advance(gid GlyphID, ppem fixed.Int26_6, h font.Hinting) float64 {
	buf := s.buffer()
	defer s.bufs.Put(buf)

	adv, err := s.font.GlyphAdvance(buf, sfnt.GlyphIndex(gid), ppem, h)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

func (s *FontSource) kern(a, b GlyphID, ppem fixed.Int26_6, h font.Hinting) float64 {
	buf := s.buffer()
	defer s.bufs.Put(buf)

	k, err := s.font.Kern(buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), ppem, h)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			softdraw.Logger().Debug("text: kern lookup failed", "font", s.name, "err", err)
		}
		return 0
	}
	return fromFixed(k)
}

func (s *FontSource) metrics(ppem fixed.Int26_6, h font.Hinting) (Metrics, error) {
	buf := s.buffer()
	defer s.bufs.Put(buf)

	m, err := s.font.Metrics(buf, ppem, h)
	if err != nil {
		return Metrics{}, &FontError{Name: s.name, Op: "metrics", Err: err}
	}
	ascent := absFixed(m.Ascent)
	descent := absFixed(m.Descent)
	return Metrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   max(fromFixed(m.Height)-ascent-descent, 0),
		XHeight:   fromFixed(m.XHeight),
		CapHeight: fromFixed(m.CapHeight),
	}, nil
}

// toFixed converts a pixel size to 26.6 fixed point.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fromFixed converts a 26.6 fixed point value to pixels.
func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func absFixed(v fixed.Int26_6) float64 {
	if v < 0 {
		v = -v
	}
	return fromFixed(v)
}
