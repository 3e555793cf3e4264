package text

import "math"

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	name       string
	cacheLimit int
	shaper     Shaper
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		cacheLimit: 512,
		shaper:     BuiltinShaper{},
	}
}

// WithName overrides the name reported by FontSource.Name. By default the
// family name stored in the font is used.
func WithName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// WithCacheLimit sets the maximum number of cached glyph masks.
// A value of 0 disables the cache limit.
func WithCacheLimit(n int) SourceOption {
	return func(c *sourceConfig) {
		c.cacheLimit = n
	}
}

// WithShaper selects the shaper used by faces of the source.
// A nil shaper keeps the default BuiltinShaper.
func WithShaper(s Shaper) SourceOption {
	return func(c *sourceConfig) {
		if s != nil {
			c.shaper = s
		}
	}
}

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig holds configuration for Face.
type faceConfig struct {
	direction Direction
	hinting   Hinting
	scaleX    float64
	language  string
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{
		direction: DirectionLTR,
		hinting:   HintingNone,
		scaleX:    1,
		language:  "en",
	}
}

// WithDirection sets the text direction for the face.
func WithDirection(d Direction) FaceOption {
	return func(c *faceConfig) {
		c.direction = d
	}
}

// WithHinting sets the hinting mode used for advances and metrics.
func WithHinting(h Hinting) FaceOption {
	return func(c *faceConfig) {
		c.hinting = h
	}
}

// WithScaleX stretches glyphs horizontally by factor. Outlines, advances
// and kerning are all scaled; vertical metrics are not. Factors that are
// not positive and finite are ignored.
func WithScaleX(factor float64) FaceOption {
	return func(c *faceConfig) {
		if factor > 0 && !math.IsInf(factor, 0) {
			c.scaleX = factor
		}
	}
}

// WithLanguage sets the language tag passed to the shaper (e.g., "en", "ar").
func WithLanguage(lang string) FaceOption {
	return func(c *faceConfig) {
		c.language = lang
	}
}
