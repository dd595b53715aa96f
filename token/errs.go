package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF = errors.New("found unexpected end of stream")
	ErrTabIndent     = errors.New("tabs disallowed within this context (block indentation)")
	ErrFlowDepth     = errors.New("recursion limit exceeded")
)

// ScanError is the only error kind the scanner produces. The input
// position where scanning failed is in Mark.
type ScanError struct {
	Err  error
	Mark Marker
}

func NewScanError(e error, m Marker) *ScanError {
	return &ScanError{Err: e, Mark: m}
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at line %d column %d", e.Err.Error(), e.Mark.Line, e.Mark.Col+1)
}

func scanErrf(m Marker, format string, args ...any) *ScanError {
	return NewScanError(fmt.Errorf(format, args...), m)
}
