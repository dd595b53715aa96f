package token

import "fmt"

// Marker is a position in the input: byte offset, 1-based line and
// 0-based column. Every token, event and error carries one.
type Marker struct {
	Index int
	Line  int
	Col   int
}

func (m Marker) String() string {
	return fmt.Sprintf("line %d column %d", m.Line, m.Col+1)
}
