package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOp is reported for a command whose kind is not recognized.
	ErrUnknownOp = errors.New("scene: unknown op")

	// ErrBadArgs is reported for a command with missing or malformed fields.
	ErrBadArgs = errors.New("scene: bad arguments")

	// ErrFormat is returned for a file extension that is not a scene format.
	ErrFormat = errors.New("scene: unsupported format")
)

// CommandError reports a command that could not be drawn. Rendering
// continues with the next command.
type CommandError struct {
	Index int    // position in the op list, from 0
	Kind  string // op kind as written in the document
	Err   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("scene: op %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
