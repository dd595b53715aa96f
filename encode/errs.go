package encode

import (
	"errors"
	"fmt"
)

// MaxDepth bounds container nesting during encoding.
const MaxDepth = 2048

// ErrDeepNesting indicates a tree nested beyond MaxDepth.
var ErrDeepNesting = errors.New("nesting depth exceeded")

// EmitError wraps a serialization failure, either a sink write error or
// ErrDeepNesting.
type EmitError struct {
	Err error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit: %s", e.Err)
}

func (e *EmitError) Unwrap() error {
	return e.Err
}
