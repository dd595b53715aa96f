package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yamlcore/go-yamlcore/token"
)

func parseAll(t *testing.T, in string, opts ...ParseOption) ([]*Event, error) {
	t.Helper()
	p := NewParser(in, opts...)
	var evs []*Event
	for i := 0; i < 10000; i++ {
		ev, err := p.Next()
		if err != nil {
			return evs, err
		}
		if ev == nil {
			return evs, nil
		}
		evs = append(evs, ev)
	}
	t.Fatalf("parser did not terminate on %q", in)
	return nil, nil
}

func kinds(evs []*Event) []Kind {
	res := make([]Kind, len(evs))
	for i, ev := range evs {
		res[i] = ev.Kind
	}
	return res
}

func TestParseEventSequences(t *testing.T) {
	tests := []struct {
		in string
		e  []Kind
	}{
		{
			"a: b\n",
			[]Kind{StreamStart, DocumentStart, MappingStart,
				Scalar, Scalar, MappingEnd, DocumentEnd, StreamEnd},
		},
		{
			"- 1\n- 2\n",
			[]Kind{StreamStart, DocumentStart, SequenceStart,
				Scalar, Scalar, SequenceEnd, DocumentEnd, StreamEnd},
		},
		{
			"[a, b]",
			[]Kind{StreamStart, DocumentStart, SequenceStart,
				Scalar, Scalar, SequenceEnd, DocumentEnd, StreamEnd},
		},
		{
			"{a: 1, b: 2}",
			[]Kind{StreamStart, DocumentStart, MappingStart,
				Scalar, Scalar, Scalar, Scalar, MappingEnd, DocumentEnd, StreamEnd},
		},
		{
			// An indentless sequence under a mapping key.
			"a:\n- b\n- c\n",
			[]Kind{StreamStart, DocumentStart, MappingStart,
				Scalar, SequenceStart, Scalar, Scalar, SequenceEnd,
				MappingEnd, DocumentEnd, StreamEnd},
		},
		{
			// A single-pair mapping inside a flow sequence.
			"[a: b]",
			[]Kind{StreamStart, DocumentStart, SequenceStart,
				MappingStart, Scalar, Scalar, MappingEnd,
				SequenceEnd, DocumentEnd, StreamEnd},
		},
		{
			"[ : foo ]",
			[]Kind{StreamStart, DocumentStart, SequenceStart,
				MappingStart, Scalar, Scalar, MappingEnd,
				SequenceEnd, DocumentEnd, StreamEnd},
		},
		{
			"---\na: 1\n...\n---\nb: 2\n",
			[]Kind{StreamStart,
				DocumentStart, MappingStart, Scalar, Scalar, MappingEnd, DocumentEnd,
				DocumentStart, MappingStart, Scalar, Scalar, MappingEnd, DocumentEnd,
				StreamEnd},
		},
		{
			// Explicit document with no content.
			"---\n",
			[]Kind{StreamStart, DocumentStart, Scalar, DocumentEnd, StreamEnd},
		},
		{
			"",
			[]Kind{StreamStart, StreamEnd},
		},
		{
			// Missing value synthesizes a null scalar.
			"a:\nb: 2\n",
			[]Kind{StreamStart, DocumentStart, MappingStart,
				Scalar, Scalar, Scalar, Scalar, MappingEnd, DocumentEnd, StreamEnd},
		},
	}
	for _, tst := range tests {
		evs, err := parseAll(t, tst.in)
		if err != nil {
			t.Errorf("parse %q: %v", tst.in, err)
			continue
		}
		if d := cmp.Diff(tst.e, kinds(evs)); d != "" {
			t.Errorf("parse %q: event kinds differ (-want +got):\n%s", tst.in, d)
		}
	}
}

func TestParseNestingBalance(t *testing.T) {
	inputs := []string{
		"a: {b: [1, {c: d}], e: [[f]]}\n",
		"- - - x\n",
		"a:\n  b:\n    c: [1, 2]\n",
		"---\n- 1\n---\n{a: b}\n",
	}
	for _, in := range inputs {
		evs, err := parseAll(t, in)
		if err != nil {
			t.Errorf("parse %q: %v", in, err)
			continue
		}
		depth := 0
		for _, ev := range evs {
			switch ev.Kind {
			case SequenceStart, MappingStart:
				depth++
			case SequenceEnd, MappingEnd:
				depth--
			}
			if depth < 0 {
				t.Errorf("parse %q: unbalanced end event", in)
				break
			}
		}
		if depth != 0 {
			t.Errorf("parse %q: depth %d at stream end", in, depth)
		}
	}
}

func TestParseAnchorsAndAliases(t *testing.T) {
	evs, err := parseAll(t, "a: &x 1\nb: *x\n")
	if err != nil {
		t.Fatal(err)
	}
	var anchored, alias *Event
	for _, ev := range evs {
		if ev.Kind == Scalar && ev.Anchor > 0 {
			anchored = ev
		}
		if ev.Kind == Alias {
			alias = ev
		}
	}
	if anchored == nil || alias == nil {
		t.Fatal("missing anchored scalar or alias event")
	}
	if anchored.Anchor != 1 || alias.Anchor != 1 {
		t.Errorf("anchor ids: scalar %d, alias %d, want both 1", anchored.Anchor, alias.Anchor)
	}
	if anchored.Value != "1" {
		t.Errorf("anchored value %q, want %q", anchored.Value, "1")
	}
}

func TestParseUnknownAnchor(t *testing.T) {
	_, err := parseAll(t, "a: *nope\n")
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	if pe.Mark.Line != 1 {
		t.Errorf("marker line %d, want 1", pe.Mark.Line)
	}
}

func firstTagged(t *testing.T, in string, opts ...ParseOption) *Event {
	t.Helper()
	evs, err := parseAll(t, in, opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", in, err)
	}
	for _, ev := range evs {
		if ev.Tag != nil {
			return ev
		}
	}
	t.Fatalf("parse %q: no tagged event", in)
	return nil
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in     string
		handle string
		suffix string
	}{
		{"!!int 5\n", "tag:yaml.org,2002:", "int"},
		{"!local x\n", "!", "local"},
		{"!<tag:example.com,2024:x> 1\n", "", "tag:example.com,2024:x"},
		{"%TAG !e! tag:example.com,2024:\n---\n!e!foo 1\n", "tag:example.com,2024:", "foo"},
		{"!!str\n", "tag:yaml.org,2002:", "str"},
	}
	for _, tst := range tests {
		ev := firstTagged(t, tst.in)
		if ev.Tag.Handle != tst.handle || ev.Tag.Suffix != tst.suffix {
			t.Errorf("parse %q: tag (%q, %q), want (%q, %q)",
				tst.in, ev.Tag.Handle, ev.Tag.Suffix, tst.handle, tst.suffix)
		}
	}
}

func TestParseTaggedEmptyScalar(t *testing.T) {
	// A node may consist of properties alone (spec 1.2 example 7.2).
	ev := firstTagged(t, "a: !!str\n")
	if ev.Kind != Scalar || ev.Value != "~" {
		t.Errorf("got %s, want the synthesized null scalar", ev)
	}
}

func TestParseDirectiveErrors(t *testing.T) {
	tests := []string{
		"%YAML 1.2\n%YAML 1.2\n---\nx\n",
		"%YAML 2.0\n---\nx\n",
		"%TAG !e! tag:a:\n%TAG !e! tag:b:\n---\nx\n",
		"!u!x 1\n", // undeclared handle
	}
	for _, in := range tests {
		_, err := parseAll(t, in)
		if err == nil {
			t.Errorf("parse %q: expected error", in)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("parse %q: error %v is not a *ParseError", in, err)
		}
	}
}

func TestParseScanErrorsPassThrough(t *testing.T) {
	_, err := parseAll(t, "\"unterminated")
	var se *token.ScanError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a *token.ScanError", err)
	}
	if !errors.Is(err, token.ErrUnexpectedEOF) {
		t.Errorf("error %v does not wrap ErrUnexpectedEOF", err)
	}
}

func TestKeepTagsWidensScope(t *testing.T) {
	in := "--- &a 1\n---\n*a\n"
	if _, err := parseAll(t, in); err == nil {
		t.Error("expected unknown anchor error without KeepTags")
	}
	evs, err := parseAll(t, in, KeepTags(true))
	if err != nil {
		t.Fatal(err)
	}
	var alias *Event
	for _, ev := range evs {
		if ev.Kind == Alias {
			alias = ev
		}
	}
	if alias == nil || alias.Anchor != 1 {
		t.Errorf("alias event %v, want anchor id 1", alias)
	}

	tagged := "%TAG !e! tag:x:\n---\n!e!a 1\n---\n!e!b 2\n"
	if _, err := parseAll(t, tagged); err == nil {
		t.Error("expected undefined handle error without KeepTags")
	}
	if _, err := parseAll(t, tagged, KeepTags(true)); err != nil {
		t.Errorf("KeepTags parse: %v", err)
	}
}

func TestParseErrorIsSticky(t *testing.T) {
	p := NewParser("a: *nope\n")
	var first error
	for {
		_, err := p.Next()
		if err != nil {
			first = err
			break
		}
	}
	_, again := p.Next()
	if again != first {
		t.Errorf("second error %v, want the sticky %v", again, first)
	}
}

type eventCollector struct {
	evs []*Event
	err error
}

func (c *eventCollector) OnEvent(ev *Event) error {
	if c.err != nil {
		return c.err
	}
	c.evs = append(c.evs, ev)
	return nil
}

func TestLoadDeliversAllEvents(t *testing.T) {
	in := "---\na: [1, 2]\n---\nb\n"
	want, err := parseAll(t, in)
	if err != nil {
		t.Fatal(err)
	}
	recv := &eventCollector{}
	if err := NewParser(in).Load(recv, true); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(kinds(want), kinds(recv.evs)); d != "" {
		t.Errorf("event kinds differ (-want +got):\n%s", d)
	}
}

func TestLoadSingleDocument(t *testing.T) {
	recv := &eventCollector{}
	if err := NewParser("---\na: 1\n---\nb: 2\n").Load(recv, false); err != nil {
		t.Fatal(err)
	}
	for _, ev := range recv.evs {
		if ev.Kind == Scalar && ev.Value == "b" {
			t.Error("second document was parsed with multi=false")
		}
	}
}

func TestLoadReceiverErrorAborts(t *testing.T) {
	recv := &eventCollector{err: errors.New("stop")}
	err := NewParser("a: 1\n").Load(recv, true)
	if err == nil || err.Error() != "stop" {
		t.Errorf("got %v, want the receiver error", err)
	}
}
