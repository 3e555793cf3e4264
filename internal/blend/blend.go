// Package blend implements the compositing operators used by the surface.
//
// Sources are straight-alpha float colors in [0, 1]; destinations are the
// stored bytes of a single pixel. The surface is opaque once written, so
// SourceOver always produces a destination alpha of 255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
package blend

// Mode selects a compositing operator.
type Mode uint8

const (
	// ModeSourceOver blends the source over the destination. This is the
	// operator behind every drawing primitive.
	ModeSourceOver Mode = iota
	// ModeSource replaces the destination with the source bytes.
	ModeSource
)

// String returns the operator name.
func (m Mode) String() string {
	switch m {
	case ModeSourceOver:
		return "SourceOver"
	case ModeSource:
		return "Source"
	default:
		return "Unknown"
	}
}

// Func is the signature shared by all operators.
// Parameters:
//   - sr, sg, sb, sa: source color, straight alpha, [0, 1]
//   - dr, dg, db, da: destination bytes
//
// Returns the new destination bytes.
type Func func(sr, sg, sb, sa float64, dr, dg, db, da byte) (r, g, b, a byte)

// ForMode returns the operator for m. Unknown modes fall back to SourceOver.
func ForMode(m Mode) Func {
	switch m {
	case ModeSource:
		return Source
	default:
		return SourceOver
	}
}

// SourceOver computes D' = D*(1-Sa) + S*Sa for each color channel and forces
// the destination alpha to 255. A fully transparent source leaves the
// destination untouched, alpha included.
func SourceOver(sr, sg, sb, sa float64, dr, dg, db, da byte) (r, g, b, a byte) {
	sa = clampUnit(sa)
	if sa == 0 {
		return dr, dg, db, da
	}
	if sa == 1 {
		return unitToByte(sr), unitToByte(sg), unitToByte(sb), 255
	}
	return mix(dr, sr, sa), mix(dg, sg, sa), mix(db, sb, sa), 255
}

// Source ignores the destination and stores the source as bytes.
func Source(sr, sg, sb, sa float64, _, _, _, _ byte) (r, g, b, a byte) {
	return unitToByte(sr), unitToByte(sg), unitToByte(sb), unitToByte(sa)
}
