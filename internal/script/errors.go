package script

import "errors"

var (
	// ErrNoDraw is returned when a script does not define a global draw
	// function.
	ErrNoDraw = errors.New("script: draw function not defined")

	// ErrNoSurface is raised in Lua when a drawing function is called
	// outside draw.
	ErrNoSurface = errors.New("script: no surface outside draw")

	// ErrClosed is returned by Draw after Close, or after a draw call ran
	// out of its limits or panicked.
	ErrClosed = errors.New("script: closed")

	// ErrLimit is returned when a call exceeds its CPU or memory limit.
	ErrLimit = errors.New("script: resource limit exceeded")

	// ErrPanic is returned when a Go function called from Lua panics.
	ErrPanic = errors.New("script: panic in Go function")
)
