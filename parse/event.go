package parse

import (
	"fmt"

	"github.com/yamlcore/go-yamlcore/token"
)

// Kind identifies the grammar production an Event notifies.
type Kind int

const (
	NoEvent Kind = iota
	StreamStart
	StreamEnd
	DocumentStart
	DocumentEnd
	Alias
	Scalar
	SequenceStart
	SequenceEnd
	MappingStart
	MappingEnd
)

var kindStrings = map[Kind]string{
	NoEvent:       "no-event",
	StreamStart:   "stream-start",
	StreamEnd:     "stream-end",
	DocumentStart: "document-start",
	DocumentEnd:   "document-end",
	Alias:         "alias",
	Scalar:        "scalar",
	SequenceStart: "sequence-start",
	SequenceEnd:   "sequence-end",
	MappingStart:  "mapping-start",
	MappingEnd:    "mapping-end",
}

func (k Kind) String() string {
	return kindStrings[k]
}

// Tag is a resolved tag property. Handle holds the expanded prefix,
// such as "tag:yaml.org,2002:" for the "!!" shorthand; it is empty
// for verbatim tags, whose Suffix is the full tag text.
type Tag struct {
	Handle string
	Suffix string
}

func (t *Tag) String() string {
	return t.Handle + t.Suffix
}

// Event is one grammar-level parsing notification.
//
// Value and Style are set on Scalar events. Anchor is the anchor id
// bound to a Scalar, SequenceStart, or MappingStart node, or the
// referenced id on an Alias event; ids start at 1, and 0 means no
// anchor. Tag is set when the node carries an explicit tag property.
type Event struct {
	Kind   Kind
	Mark   token.Marker
	Value  string
	Style  token.Style
	Anchor int
	Tag    *Tag
}

func (e *Event) String() string {
	switch e.Kind {
	case Scalar:
		if e.Tag != nil {
			return fmt.Sprintf("%s(%q, %s, !<%s>)", e.Kind, e.Value, e.Style, e.Tag)
		}
		return fmt.Sprintf("%s(%q, %s)", e.Kind, e.Value, e.Style)
	case Alias:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Anchor)
	case SequenceStart, MappingStart:
		if e.Anchor > 0 || e.Tag != nil {
			return fmt.Sprintf("%s(&%d, %v)", e.Kind, e.Anchor, e.Tag)
		}
	}
	return e.Kind.String()
}

// emptyScalar synthesizes the null scalar produced for omitted nodes,
// such as the value of "a:" with nothing after the colon.
func emptyScalar(mark token.Marker, anchor int, tag *Tag) *Event {
	return &Event{
		Kind:   Scalar,
		Mark:   mark,
		Value:  "~",
		Style:  token.Plain,
		Anchor: anchor,
		Tag:    tag,
	}
}

// EventReceiver consumes events in source order. A non-nil error
// aborts the parse and is returned from Load unchanged.
type EventReceiver interface {
	OnEvent(ev *Event) error
}
