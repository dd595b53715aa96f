package load

import (
	"strconv"

	"github.com/yamlcore/go-yamlcore/debug"
	"github.com/yamlcore/go-yamlcore/ir"
	"github.com/yamlcore/go-yamlcore/parse"
	"github.com/yamlcore/go-yamlcore/token"
)

// coreTag is the prefix the "!!" handle expands to.
const coreTag = "tag:yaml.org,2002:"

type loadOpts struct {
	keepTags bool
}

// Option configures loading.
type Option func(*loadOpts)

// KeepTags keeps anchor and tag scope open across document
// boundaries. See parse.KeepTags.
func KeepTags(v bool) Option {
	return func(o *loadOpts) { o.keepTags = v }
}

// Documents parses d and returns one value tree per document, in
// source order. The whole stream is consumed; the first error aborts
// loading and no partial trees are returned.
func Documents(d []byte, opts ...Option) ([]*ir.Node, error) {
	return DocumentsString(string(d), opts...)
}

// DocumentsString is Documents for string input.
func DocumentsString(s string, opts ...Option) ([]*ir.Node, error) {
	lOpts := &loadOpts{}
	for _, f := range opts {
		f(lOpts)
	}
	l := &loader{anchors: map[int]*ir.Node{}}
	p := parse.NewParser(s, parse.KeepTags(lOpts.keepTags))
	if err := p.Load(l, true); err != nil {
		return nil, err
	}
	return l.docs, nil
}

// building is a container under construction together with the
// anchor id to record it under once complete.
type building struct {
	node   *ir.Node
	anchor int
}

// loader materializes value trees from the event stream. docStack
// holds the chain of open containers; keyStack holds, for each open
// hash, the key awaiting its value, with the BadValue sentinel
// marking an empty slot.
type loader struct {
	docs     []*ir.Node
	docStack []building
	keyStack []*ir.Node
	anchors  map[int]*ir.Node
}

func (l *loader) OnEvent(ev *parse.Event) error {
	if debug.Load() {
		debug.Logf("load: %s\n", ev)
	}
	switch ev.Kind {
	case parse.NoEvent, parse.StreamStart, parse.StreamEnd, parse.DocumentStart:
	case parse.DocumentEnd:
		switch len(l.docStack) {
		case 0:
			l.docs = append(l.docs, ir.Null())
		case 1:
			l.docs = append(l.docs, l.docStack[0].node)
			l.docStack = l.docStack[:0]
		default:
			return loadErrf(ev.Mark, "document ended with %d open containers", len(l.docStack))
		}
	case parse.SequenceStart:
		l.docStack = append(l.docStack, building{appTagged(ir.NewArray(), ev.Tag), ev.Anchor})
	case parse.SequenceEnd:
		l.insert(l.pop())
	case parse.MappingStart:
		l.docStack = append(l.docStack, building{appTagged(ir.NewHash(), ev.Tag), ev.Anchor})
		l.keyStack = append(l.keyStack, ir.BadValue())
	case parse.MappingEnd:
		l.keyStack = l.keyStack[:len(l.keyStack)-1]
		l.insert(l.pop())
	case parse.Scalar:
		node, err := resolveScalar(ev)
		if err != nil {
			return err
		}
		l.insert(building{node, ev.Anchor})
	case parse.Alias:
		n, ok := l.anchors[ev.Anchor]
		if !ok {
			return loadErrf(ev.Mark, "%w", ErrUndefinedAlias)
		}
		// Aliases materialize as independent copies; the tree never
		// shares nodes.
		l.insert(building{n.Clone(), 0})
	}
	return nil
}

func (l *loader) pop() building {
	b := l.docStack[len(l.docStack)-1]
	l.docStack = l.docStack[:len(l.docStack)-1]
	return b
}

// insert records a completed node under its anchor and attaches it to
// the enclosing container, or makes it the document root.
func (l *loader) insert(b building) {
	if b.anchor > 0 {
		l.anchors[b.anchor] = b.node
	}
	if len(l.docStack) == 0 {
		l.docStack = append(l.docStack, b)
		return
	}
	parent := l.docStack[len(l.docStack)-1].node
	switch parent.Type {
	case ir.ArrayType:
		parent.Append(b.node)
	case ir.HashType:
		key := l.keyStack[len(l.keyStack)-1]
		if key.IsBadValue() {
			l.keyStack[len(l.keyStack)-1] = b.node
		} else {
			parent.SetPair(key, b.node)
			l.keyStack[len(l.keyStack)-1] = ir.BadValue()
		}
	}
}

// resolveScalar applies the core schema to a scalar event. Quoted and
// block scalars are always strings. A "!!" tag forces one type and a
// lexical mismatch is an error; any other explicit tag is recorded on
// the node verbatim.
func resolveScalar(ev *parse.Event) (*ir.Node, error) {
	t := ev.Tag
	if ev.Style != token.Plain {
		return appTagged(ir.FromString(ev.Value), t), nil
	}
	if t == nil {
		return ir.FromScalar(ev.Value), nil
	}
	if t.Handle != coreTag {
		return appTagged(ir.FromString(ev.Value), t), nil
	}
	switch t.Suffix {
	case "bool":
		switch ev.Value {
		case "true":
			return ir.FromBool(true), nil
		case "false":
			return ir.FromBool(false), nil
		}
		return nil, loadErrf(ev.Mark, "invalid !!bool scalar %q", ev.Value)
	case "int":
		i, err := strconv.ParseInt(ev.Value, 10, 64)
		if err != nil {
			return nil, loadErrf(ev.Mark, "invalid !!int scalar %q", ev.Value)
		}
		return ir.FromInt(i), nil
	case "float":
		f, ok := ir.ParseFloatCore(ev.Value)
		if !ok {
			return nil, loadErrf(ev.Mark, "invalid !!float scalar %q", ev.Value)
		}
		return ir.FromFloatText(f, ev.Value), nil
	case "null":
		switch ev.Value {
		case "~", "null", "":
			return ir.Null(), nil
		}
		return nil, loadErrf(ev.Mark, "invalid !!null scalar %q", ev.Value)
	}
	// "!!str" and unrecognized core suffixes load as strings.
	return ir.FromString(ev.Value), nil
}

// appTagged records an explicit application tag on n. Core-schema
// tags and the non-specific "!" tag resolve away instead of being
// stored.
func appTagged(n *ir.Node, t *parse.Tag) *ir.Node {
	if t == nil || t.Handle == coreTag || (t.Handle == "" && t.Suffix == "!") {
		return n
	}
	return n.WithTag(t.String())
}
