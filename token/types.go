package token

import "fmt"

type Type int

const (
	TNone Type = iota
	// TStreamStart is sent first, before even TDocumentStart.
	TStreamStart
	// TStreamEnd is the end of the stream, EOF.
	TStreamEnd
	TVersionDirective
	TTagDirective
	// TDocumentStart is the start of a document (`---`).
	TDocumentStart
	// TDocumentEnd is the end of a document (`...`).
	TDocumentEnd
	TBlockSequenceStart
	TBlockMappingStart
	// TBlockEnd closes the matching TBlockSequenceStart or
	// TBlockMappingStart.
	TBlockEnd
	TFlowSequenceStart
	TFlowSequenceEnd
	TFlowMappingStart
	TFlowMappingEnd
	// TBlockEntry is a `-` entry in a block sequence.
	TBlockEntry
	// TFlowEntry is a `,` separator in a flow collection.
	TFlowEntry
	TKey
	TValue
	TAlias
	TAnchor
	TTag
	TScalar
)

func (t Type) String() string {
	return map[Type]string{
		TNone:               "TNone",
		TStreamStart:        "TStreamStart",
		TStreamEnd:          "TStreamEnd",
		TVersionDirective:   "TVersionDirective",
		TTagDirective:       "TTagDirective",
		TDocumentStart:      "TDocumentStart",
		TDocumentEnd:        "TDocumentEnd",
		TBlockSequenceStart: "TBlockSequenceStart",
		TBlockMappingStart:  "TBlockMappingStart",
		TBlockEnd:           "TBlockEnd",
		TFlowSequenceStart:  "TFlowSequenceStart",
		TFlowSequenceEnd:    "TFlowSequenceEnd",
		TFlowMappingStart:   "TFlowMappingStart",
		TFlowMappingEnd:     "TFlowMappingEnd",
		TBlockEntry:         "TBlockEntry",
		TFlowEntry:          "TFlowEntry",
		TKey:                "TKey",
		TValue:              "TValue",
		TAlias:              "TAlias",
		TAnchor:             "TAnchor",
		TTag:                "TTag",
		TScalar:             "TScalar",
	}[t]
}

// Style is the presentation style of a scalar token.
type Style int

const (
	AnyStyle Style = iota
	Plain
	SingleQuoted
	DoubleQuoted
	Literal
	Folded
)

func (s Style) String() string {
	return map[Style]string{
		AnyStyle:     "any",
		Plain:        "plain",
		SingleQuoted: "single",
		DoubleQuoted: "double",
		Literal:      "literal",
		Folded:       "folded",
	}[s]
}

// Token is one lexical element of the input.
//
// Which fields carry data depends on Type:
//   - TScalar: Style and Value (the decoded scalar text)
//   - TAnchor, TAlias: Value (the anchor name)
//   - TTag: Handle and Suffix; an empty Handle means a verbatim tag
//   - TTagDirective: Handle and Suffix (the prefix)
//   - TVersionDirective: Major and Minor
type Token struct {
	Mark Marker
	Type Type

	Style  Style
	Value  string
	Handle string
	Suffix string
	Major  int
	Minor  int
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Mark)
}

func (t *Token) String() string {
	switch t.Type {
	case TScalar:
		return fmt.Sprintf("%s(%s, %q)", t.Type, t.Style, t.Value)
	case TAnchor, TAlias:
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	case TTag:
		return fmt.Sprintf("%s(%q, %q)", t.Type, t.Handle, t.Suffix)
	case TTagDirective:
		return fmt.Sprintf("%s(%q, %q)", t.Type, t.Handle, t.Suffix)
	case TVersionDirective:
		return fmt.Sprintf("%s(%d.%d)", t.Type, t.Major, t.Minor)
	default:
		return t.Type.String()
	}
}
