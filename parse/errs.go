package parse

import (
	"fmt"

	"github.com/yamlcore/go-yamlcore/token"
)

// ParseError reports a grammar violation at a source position. Scan
// errors pass through the parser unchanged, so callers see a
// *token.ScanError for lexical problems and a *ParseError for
// grammar problems.
type ParseError struct {
	Err  error
	Mark token.Marker
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d column %d", e.Err, e.Mark.Line, e.Mark.Col+1)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrf(m token.Marker, format string, args ...any) *ParseError {
	return &ParseError{Err: fmt.Errorf(format, args...), Mark: m}
}
