package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for a face size that is not a positive number.
	ErrInvalidSize = errors.New("text: invalid face size")
)

// FontError reports a failure to parse or query font data.
type FontError struct {
	Name string // source name, may be empty
	Op   string
	Err  error
}

func (e *FontError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("text: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("text: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *FontError) Unwrap() error { return e.Err }
