// Package ui draws window chrome and a small immediate-mode widget set on a
// softdraw.Surface.
package ui

import "github.com/gogpu/softdraw"

// ButtonState is the pointer state of a title bar button.
type ButtonState int

const (
	// ButtonIdle is a button the pointer is not over.
	ButtonIdle ButtonState = iota
	// ButtonHovered is a button under the pointer.
	ButtonHovered
	// ButtonDisabled is a button that does not react.
	ButtonDisabled
)

func (s ButtonState) String() string {
	switch s {
	case ButtonIdle:
		return "idle"
	case ButtonHovered:
		return "hovered"
	case ButtonDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Theme holds the decoration colors. Primary is the title bar, secondary
// the divider line under it.
type Theme struct {
	PrimaryActive   softdraw.RGBA
	PrimaryInactive softdraw.RGBA

	SecondaryActive   softdraw.RGBA
	SecondaryInactive softdraw.RGBA

	CloseButtonHovered     softdraw.RGBA
	CloseButton            softdraw.RGBA
	CloseButtonIconHovered softdraw.RGBA
	CloseButtonIcon        softdraw.RGBA

	MaximizeButtonHovered softdraw.RGBA
	MaximizeButton        softdraw.RGBA

	MinimizeButtonHovered softdraw.RGBA
	MinimizeButton        softdraw.RGBA
}

// DefaultTheme returns dark gray bars with red, green and blue buttons.
func DefaultTheme() Theme {
	bg := softdraw.RGB8(0x22, 0x22, 0x22)
	white := softdraw.RGB8(0xff, 0xff, 0xff)
	return Theme{
		PrimaryActive:          bg,
		PrimaryInactive:        softdraw.RGB8(0x33, 0x33, 0x33),
		SecondaryActive:        white,
		SecondaryInactive:      white,
		CloseButtonHovered:     softdraw.RGB8(0xff, 0x00, 0x00),
		CloseButton:            softdraw.RGB8(0x88, 0x00, 0x00),
		CloseButtonIconHovered: bg,
		CloseButtonIcon:        white,
		MaximizeButtonHovered:  softdraw.RGB8(0x00, 0xff, 0x00),
		MaximizeButton:         softdraw.RGB8(0x00, 0x88, 0x00),
		MinimizeButtonHovered:  softdraw.RGB8(0x00, 0x00, 0xff),
		MinimizeButton:         softdraw.RGB8(0x00, 0x00, 0x88),
	}
}

// Primary returns the title bar color.
func (t Theme) Primary(active bool) softdraw.RGBA {
	if active {
		return t.PrimaryActive
	}
	return t.PrimaryInactive
}

// Secondary returns the divider color.
func (t Theme) Secondary(active bool) softdraw.RGBA {
	if active {
		return t.SecondaryActive
	}
	return t.SecondaryInactive
}

func (t Theme) CloseButtonColor(s ButtonState) softdraw.RGBA {
	if s == ButtonHovered {
		return t.CloseButtonHovered
	}
	return t.CloseButton
}

// CloseButtonIconColor returns the color of the cross. A disabled close
// button shows its icon in the button color, hiding it.
func (t Theme) CloseButtonIconColor(s ButtonState) softdraw.RGBA {
	switch s {
	case ButtonHovered:
		return t.CloseButtonIconHovered
	case ButtonIdle:
		return t.CloseButtonIcon
	default:
		return t.CloseButton
	}
}

func (t Theme) MaximizeButtonColor(s ButtonState) softdraw.RGBA {
	if s == ButtonHovered {
		return t.MaximizeButtonHovered
	}
	return t.MaximizeButton
}

func (t Theme) MinimizeButtonColor(s ButtonState) softdraw.RGBA {
	if s == ButtonHovered {
		return t.MinimizeButtonHovered
	}
	return t.MinimizeButton
}
