package load

import (
	"errors"
	"fmt"

	"github.com/yamlcore/go-yamlcore/token"
)

var (
	// ErrUndefinedAlias indicates an alias whose anchor is not in
	// scope. The parser already rejects these, so seeing this error
	// from the loader means an event source handed it an alias id it
	// never announced.
	ErrUndefinedAlias = errors.New("undefined alias")

	// ErrDecode indicates input bytes that do not form valid text in
	// the detected encoding.
	ErrDecode = errors.New("invalid byte sequence")
)

// LoadError reports a failure to materialize a value from the event
// stream, such as a scalar that does not match its explicit
// core-schema tag.
type LoadError struct {
	Err  error
	Mark token.Marker
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s at line %d column %d", e.Err, e.Mark.Line, e.Mark.Col+1)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErrf(m token.Marker, format string, args ...any) *LoadError {
	return &LoadError{Err: fmt.Errorf(format, args...), Mark: m}
}
