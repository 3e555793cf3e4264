package softdraw

import (
	"errors"
	"fmt"
)

// Sentinel errors for softdraw.
var (
	// ErrUnsupportedGeometry is returned for segments that are neither
	// horizontal nor vertical. Nothing is drawn.
	ErrUnsupportedGeometry = errors.New("softdraw: unsupported geometry")

	// ErrInvalidSize is returned when a surface is created with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("softdraw: invalid surface size")

	// ErrBufferSize is returned when the borrowed buffer length is not
	// width*height*4.
	ErrBufferSize = errors.New("softdraw: buffer size mismatch")

	// ErrInvalidColor is returned by ParseColor for unrecognized input.
	ErrInvalidColor = errors.New("softdraw: invalid color")
)

// GeometryError describes a rejected segment. It matches
// ErrUnsupportedGeometry with errors.Is.
type GeometryError struct {
	Op         string
	Start, End Point
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("softdraw: %s: unsupported geometry: diagonal segment (%g,%g)-(%g,%g)",
		e.Op, e.Start.X, e.Start.Y, e.End.X, e.End.Y)
}

// Is reports whether target is ErrUnsupportedGeometry.
func (e *GeometryError) Is(target error) bool {
	return target == ErrUnsupportedGeometry
}
