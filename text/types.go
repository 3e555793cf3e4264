package text

import "golang.org/x/image/font"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a glyph index within a font.
type GlyphID uint16

// Direction specifies text direction.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
	// DirectionAuto picks LTR or RTL per string with DetectDirection.
	DirectionAuto
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionAuto:
		return "Auto"
	default:
		return unknownStr
	}
}

// ParseDirection maps "ltr", "rtl" and "auto" (any case) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "ltr", "LTR", "":
		return DirectionLTR, true
	case "rtl", "RTL":
		return DirectionRTL, true
	case "auto", "Auto", "AUTO":
		return DirectionAuto, true
	}
	return DirectionLTR, false
}

// Hinting specifies font hinting mode.
type Hinting int

const (
	// HintingNone disables hinting.
	HintingNone Hinting = iota
	// HintingVertical applies vertical hinting only.
	HintingVertical
	// HintingFull applies full hinting.
	HintingFull
)

// String returns the string representation of the hinting.
func (h Hinting) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingVertical:
		return "Vertical"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}

// font converts h to the x/image hinting mode.
func (h Hinting) font() font.Hinting {
	switch h {
	case HintingVertical:
		return font.HintingVertical
	case HintingFull:
		return font.HintingFull
	default:
		return font.HintingNone
	}
}
