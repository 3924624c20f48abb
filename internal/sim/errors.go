package sim

import (
	"errors"
	"fmt"
)

// ErrRenderer indicates the renderer failed to draw or clear. It is fatal
// for the loop.
var ErrRenderer = errors.New("sim: renderer failure")

// FrameError wraps a renderer error with frame context.
type FrameError struct {
	Frame   int
	Op      string
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %s: %v", e.Frame, e.Op, e.Wrapped)
}

func (e *FrameError) Unwrap() []error {
	return []error{ErrRenderer, e.Wrapped}
}
