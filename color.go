package softdraw

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. This is the form used by the
// compositor; see RGBA8 for the stored byte form.
type RGBA struct {
	R, G, B, A float64
}

// RGBA8 is the byte form of a color, one channel per byte in [0, 255].
type RGBA8 struct {
	R, G, B, A uint8
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// RGB8 creates an opaque color from byte channels.
func RGB8(r, g, b uint8) RGBA {
	return RGBA8{R: r, G: g, B: b, A: 255}.Float()
}

// Bytes creates a color from four byte channels.
func Bytes(r, g, b, a uint8) RGBA {
	return RGBA8{R: r, G: g, B: b, A: a}.Float()
}

// Bytes converts the color to its byte form, rounding each channel to the
// nearest byte and clamping out-of-range values.
func (c RGBA) Bytes() RGBA8 {
	return RGBA8{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: toByte(c.A),
	}
}

// Float converts a byte color to the [0, 1] form.
func (c RGBA8) Float() RGBA {
	return RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// RGBA implements color.Color. The returned values are alpha-premultiplied.
func (c RGBA8) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Scale multiplies all four channels by v. Glyph coverage uses this to weight
// the label color.
func (c RGBA) Scale(v float64) RGBA {
	return RGBA{R: c.R * v, G: c.G * v, B: c.B * v, A: c.A * v}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	b := c.Bytes()
	return color.NRGBA{R: b.R, G: b.G, B: b.B, A: b.A}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8{R: n.R, G: n.G, B: n.B, A: n.A}.Float()
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. Malformed input yields opaque black.
func Hex(hex string) RGBA {
	c, ok := ParseHex(hex)
	if !ok {
		return Black
	}
	return c
}

// ParseHex is like Hex but reports whether the string was well formed.
func ParseHex(hex string) (RGBA, bool) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var ch [4]uint8
	ch[3] = 255

	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			v, ok := hexDigit(hex[i])
			if !ok {
				return RGBA{}, false
			}
			ch[i] = v * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return RGBA{}, false
			}
			ch[i/2] = hi<<4 | lo
		}
	default:
		return RGBA{}, false
	}

	return Bytes(ch[0], ch[1], ch[2], ch[3]), true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// toByte maps [0, 1] to [0, 255] with round-to-nearest.
func toByte(x float64) uint8 {
	v := math.Round(x * 255)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)

var namedColors = map[string]RGBA{
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"yellow":      Yellow,
	"cyan":        Cyan,
	"magenta":     Magenta,
	"transparent": Transparent,
}

// ParseColor accepts "#rgb", "#rgba", "#rrggbb" and "#rrggbbaa" hex
// strings or one of the common color names (case-insensitive).
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := ParseHex(s); ok {
			return c, nil
		}
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
