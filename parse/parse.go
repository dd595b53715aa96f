package parse

import (
	"github.com/yamlcore/go-yamlcore/debug"
	"github.com/yamlcore/go-yamlcore/token"
)

// Parser consumes tokens from a Scanner and produces one Event per
// pull. The grammar is recognized by an explicit state machine over
// a continuation stack, so successive Next calls resume exactly
// where the previous one stopped.
type Parser struct {
	scanner *token.Scanner
	states  []state
	state   state
	tok     *token.Token

	anchors  map[string]int
	anchorID int
	tags     map[string]string
	declared map[string]bool
	keepTags bool

	err         error
	streamEnded bool
	trace       func(*Event)
}

// NewParser creates a parser over src.
func NewParser(src string, opts ...ParseOption) *Parser {
	p := &Parser{
		scanner:  token.NewScanner(src),
		state:    sStreamStart,
		anchors:  map[string]int{},
		tags:     defaultTags(),
		declared: map[string]bool{},
	}
	if debug.Parse() {
		p.trace = func(ev *Event) { debug.Logf("parse: %s\n", ev) }
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// defaultTags seeds the handle table with the two built-in shorthand
// handles. "%TAG" directives extend or override these per document.
func defaultTags() map[string]string {
	return map[string]string{
		"!!": "tag:yaml.org,2002:",
		"!":  "!",
	}
}

// Next returns the next event, or (nil, nil) once StreamEnd has been
// delivered. Errors are sticky.
func (p *Parser) Next() (*Event, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.streamEnded {
		return nil, nil
	}
	ev, err := p.stateMachine()
	if err != nil {
		p.err = err
		return nil, err
	}
	if ev.Kind == StreamEnd {
		p.streamEnded = true
	}
	if p.trace != nil {
		p.trace(ev)
	}
	return ev, nil
}

// Load drives the parser to completion, delivering every event to
// recv in source order. With multi false only the first document is
// parsed; with multi true the whole stream is consumed.
func (p *Parser) Load(recv EventReceiver, multi bool) error {
	if !p.scanner.Started() {
		ev, err := p.deliver(recv)
		if err != nil {
			return err
		}
		if ev.Kind != StreamStart {
			return parseErrf(ev.Mark, "did not find expected <stream-start>")
		}
	}
	for {
		ev, err := p.deliver(recv)
		if err != nil {
			return err
		}
		if ev.Kind == StreamEnd {
			return nil
		}
		if ev.Kind != DocumentStart {
			return parseErrf(ev.Mark, "did not find expected <document start>")
		}
		if err := p.loadDocument(recv); err != nil {
			return err
		}
		if !multi {
			return nil
		}
	}
}

func (p *Parser) deliver(recv EventReceiver) (*Event, error) {
	ev, err := p.Next()
	if err != nil {
		return nil, err
	}
	if ev == nil {
		ev = &Event{Kind: StreamEnd, Mark: p.scanner.Mark()}
	}
	if err := recv.OnEvent(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (p *Parser) loadDocument(recv EventReceiver) error {
	ev, err := p.deliver(recv)
	if err != nil {
		return err
	}
	if err := p.loadNode(ev, recv); err != nil {
		return err
	}
	ev, err = p.deliver(recv)
	if err != nil {
		return err
	}
	if ev.Kind != DocumentEnd {
		return parseErrf(ev.Mark, "did not find expected <document end>")
	}
	return nil
}

func (p *Parser) loadNode(first *Event, recv EventReceiver) error {
	switch first.Kind {
	case Alias, Scalar:
		return nil
	case SequenceStart:
		return p.loadSequence(recv)
	case MappingStart:
		return p.loadMapping(recv)
	}
	return parseErrf(first.Mark, "while loading a node, found unexpected event %s", first.Kind)
}

func (p *Parser) loadSequence(recv EventReceiver) error {
	for {
		ev, err := p.deliver(recv)
		if err != nil {
			return err
		}
		if ev.Kind == SequenceEnd {
			return nil
		}
		if err := p.loadNode(ev, recv); err != nil {
			return err
		}
	}
}

func (p *Parser) loadMapping(recv EventReceiver) error {
	for {
		ev, err := p.deliver(recv)
		if err != nil {
			return err
		}
		if ev.Kind == MappingEnd {
			return nil
		}
		// key
		if err := p.loadNode(ev, recv); err != nil {
			return err
		}
		// value
		ev, err = p.deliver(recv)
		if err != nil {
			return err
		}
		if err := p.loadNode(ev, recv); err != nil {
			return err
		}
	}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() (*token.Token, error) {
	if p.tok == nil {
		tok, err := p.scanner.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, token.NewScanError(token.ErrUnexpectedEOF, p.scanner.Mark())
		}
		p.tok = tok
	}
	return p.tok, nil
}

func (p *Parser) skip() {
	p.tok = nil
}

func (p *Parser) popState() {
	p.state = p.states[len(p.states)-1]
	p.states = p.states[:len(p.states)-1]
}

func (p *Parser) pushState(s state) {
	p.states = append(p.states, s)
}

func (p *Parser) stateMachine() (*Event, error) {
	switch p.state {
	case sStreamStart:
		return p.streamStart()
	case sImplicitDocumentStart:
		return p.documentStart(true)
	case sDocumentStart:
		return p.documentStart(false)
	case sDocumentContent:
		return p.documentContent()
	case sDocumentEnd:
		return p.documentEnd()
	case sBlockNode:
		return p.parseNode(true, false)
	case sBlockNodeOrIndentlessSequence:
		return p.parseNode(true, true)
	case sFlowNode:
		return p.parseNode(false, false)
	case sBlockSequenceFirstEntry:
		return p.blockSequenceEntry(true)
	case sBlockSequenceEntry:
		return p.blockSequenceEntry(false)
	case sIndentlessSequenceEntry:
		return p.indentlessSequenceEntry()
	case sBlockMappingFirstKey:
		return p.blockMappingKey(true)
	case sBlockMappingKey:
		return p.blockMappingKey(false)
	case sBlockMappingValue:
		return p.blockMappingValue()
	case sFlowSequenceFirstEntry:
		return p.flowSequenceEntry(true)
	case sFlowSequenceEntry:
		return p.flowSequenceEntry(false)
	case sFlowSequenceEntryMappingKey:
		return p.flowSequenceEntryMappingKey()
	case sFlowSequenceEntryMappingValue:
		return p.flowSequenceEntryMappingValue()
	case sFlowSequenceEntryMappingEnd:
		return p.flowSequenceEntryMappingEnd()
	case sFlowMappingFirstKey:
		return p.flowMappingKey(true)
	case sFlowMappingKey:
		return p.flowMappingKey(false)
	case sFlowMappingValue:
		return p.flowMappingValue(false)
	case sFlowMappingEmptyValue:
		return p.flowMappingValue(true)
	case sEnd:
		return &Event{Kind: StreamEnd, Mark: p.scanner.Mark()}, nil
	}
	return nil, parseErrf(p.scanner.Mark(), "invalid parser state %s", p.state)
}

func (p *Parser) streamStart() (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.TStreamStart {
		return nil, parseErrf(tok.Mark, "did not find expected <stream-start>")
	}
	p.state = sImplicitDocumentStart
	p.skip()
	return &Event{Kind: StreamStart, Mark: tok.Mark}, nil
}

func (p *Parser) documentStart(implicit bool) (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !implicit {
		for tok.Type == token.TDocumentEnd {
			p.skip()
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
		}
	}

	switch {
	case tok.Type == token.TStreamEnd:
		p.state = sEnd
		p.skip()
		return &Event{Kind: StreamEnd, Mark: tok.Mark}, nil
	case tok.Type == token.TVersionDirective,
		tok.Type == token.TTagDirective,
		tok.Type == token.TDocumentStart:
		return p.explicitDocumentStart()
	case implicit:
		if err := p.processDirectives(); err != nil {
			return nil, err
		}
		p.pushState(sDocumentEnd)
		p.state = sBlockNode
		return &Event{Kind: DocumentStart, Mark: tok.Mark}, nil
	default:
		return p.explicitDocumentStart()
	}
}

// processDirectives consumes the directive tokens leading a document.
// The YAML version is checked for major version 1; minor mismatches
// are tolerated per the 1.2 spec.
func (p *Parser) processDirectives() error {
	versionSeen := false
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch tok.Type {
		case token.TVersionDirective:
			if versionSeen {
				return parseErrf(tok.Mark, "duplicate YAML directive")
			}
			if tok.Major != 1 {
				return parseErrf(tok.Mark, "found incompatible YAML document")
			}
			versionSeen = true
		case token.TTagDirective:
			// The scanner hands unknown directives back as tag
			// directives with an empty handle; those are ignored.
			if tok.Handle != "" {
				if p.declared[tok.Handle] {
					return parseErrf(tok.Mark,
						"the TAG directive must only be given at most once per handle in the same document")
				}
				p.declared[tok.Handle] = true
				p.tags[tok.Handle] = tok.Suffix
			}
		default:
			return nil
		}
		p.skip()
	}
}

func (p *Parser) explicitDocumentStart() (*Event, error) {
	if err := p.processDirectives(); err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.TDocumentStart {
		return nil, parseErrf(tok.Mark, "did not find expected <document start>")
	}
	p.pushState(sDocumentEnd)
	p.state = sDocumentContent
	p.skip()
	return &Event{Kind: DocumentStart, Mark: tok.Mark}, nil
}

func (p *Parser) documentContent() (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TVersionDirective, token.TTagDirective,
		token.TDocumentStart, token.TDocumentEnd, token.TStreamEnd:
		// An explicit document with no content, e.g. "---\n...".
		p.popState()
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	return p.parseNode(true, false)
}

func (p *Parser) documentEnd() (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	mark := tok.Mark
	if tok.Type == token.TDocumentEnd {
		p.skip()
	}
	if !p.keepTags {
		p.tags = defaultTags()
		p.anchors = map[string]int{}
	}
	p.declared = map[string]bool{}
	p.state = sDocumentStart
	return &Event{Kind: DocumentEnd, Mark: mark}, nil
}

// registerAnchor binds name to a fresh id. Rebinding a name is legal
// and shadows the earlier definition for later aliases.
func (p *Parser) registerAnchor(name string) int {
	p.anchorID++
	p.anchors[name] = p.anchorID
	return p.anchorID
}

// resolveTag expands a tag token's handle against the handle table.
func (p *Parser) resolveTag(tok *token.Token) (*Tag, error) {
	if tok.Handle == "" {
		// Verbatim tags bypass the handle table.
		return &Tag{Suffix: tok.Suffix}, nil
	}
	prefix, ok := p.tags[tok.Handle]
	if !ok {
		return nil, parseErrf(tok.Mark, "while parsing a node, found an undefined tag handle %s", tok.Handle)
	}
	return &Tag{Handle: prefix, Suffix: tok.Suffix}, nil
}

func (p *Parser) parseNode(block, indentlessSequence bool) (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	anchor := 0
	var tag *Tag
	switch tok.Type {
	case token.TAlias:
		p.popState()
		id, ok := p.anchors[tok.Value]
		if !ok {
			return nil, parseErrf(tok.Mark, "while parsing node, found unknown anchor")
		}
		p.skip()
		return &Event{Kind: Alias, Mark: tok.Mark, Anchor: id}, nil
	case token.TAnchor:
		anchor = p.registerAnchor(tok.Value)
		p.skip()
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == token.TTag {
			if tag, err = p.resolveTag(next); err != nil {
				return nil, err
			}
			p.skip()
		}
	case token.TTag:
		if tag, err = p.resolveTag(tok); err != nil {
			return nil, err
		}
		p.skip()
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == token.TAnchor {
			anchor = p.registerAnchor(next.Value)
			p.skip()
		}
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Type == token.TBlockEntry && indentlessSequence:
		p.state = sIndentlessSequenceEntry
		return &Event{Kind: SequenceStart, Mark: tok.Mark, Anchor: anchor, Tag: tag}, nil
	case tok.Type == token.TScalar:
		p.popState()
		p.skip()
		return &Event{
			Kind:   Scalar,
			Mark:   tok.Mark,
			Value:  tok.Value,
			Style:  tok.Style,
			Anchor: anchor,
			Tag:    tag,
		}, nil
	case tok.Type == token.TFlowSequenceStart:
		p.state = sFlowSequenceFirstEntry
		return &Event{Kind: SequenceStart, Mark: tok.Mark, Anchor: anchor, Tag: tag}, nil
	case tok.Type == token.TFlowMappingStart:
		p.state = sFlowMappingFirstKey
		return &Event{Kind: MappingStart, Mark: tok.Mark, Anchor: anchor, Tag: tag}, nil
	case tok.Type == token.TBlockSequenceStart && block:
		p.state = sBlockSequenceFirstEntry
		return &Event{Kind: SequenceStart, Mark: tok.Mark, Anchor: anchor, Tag: tag}, nil
	case tok.Type == token.TBlockMappingStart && block:
		p.state = sBlockMappingFirstKey
		return &Event{Kind: MappingStart, Mark: tok.Mark, Anchor: anchor, Tag: tag}, nil
	case anchor > 0 || tag != nil:
		// An empty scalar node may carry properties alone, as in
		// "!!str" or "&a" followed by nothing.
		p.popState()
		return emptyScalar(tok.Mark, anchor, tag), nil
	}
	return nil, parseErrf(tok.Mark, "while parsing a node, did not find expected node content")
}

func (p *Parser) blockSequenceEntry(first bool) (*Event, error) {
	if first {
		// skip TBlockSequenceStart
		if _, err := p.peek(); err != nil {
			return nil, err
		}
		p.skip()
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TBlockEnd:
		p.popState()
		p.skip()
		return &Event{Kind: SequenceEnd, Mark: tok.Mark}, nil
	case token.TBlockEntry:
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.TBlockEntry || tok.Type == token.TBlockEnd {
			p.state = sBlockSequenceEntry
			return emptyScalar(tok.Mark, 0, nil), nil
		}
		p.pushState(sBlockSequenceEntry)
		return p.parseNode(true, false)
	}
	return nil, parseErrf(tok.Mark,
		"while parsing a block collection, did not find expected '-' indicator")
}

func (p *Parser) indentlessSequenceEntry() (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.TBlockEntry {
		p.popState()
		return &Event{Kind: SequenceEnd, Mark: tok.Mark}, nil
	}
	p.skip()
	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TBlockEntry, token.TKey, token.TValue, token.TBlockEnd:
		p.state = sIndentlessSequenceEntry
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	p.pushState(sIndentlessSequenceEntry)
	return p.parseNode(true, false)
}

func (p *Parser) blockMappingKey(first bool) (*Event, error) {
	if first {
		// skip TBlockMappingStart
		if _, err := p.peek(); err != nil {
			return nil, err
		}
		p.skip()
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TKey:
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case token.TKey, token.TValue, token.TBlockEnd:
			p.state = sBlockMappingValue
			return emptyScalar(tok.Mark, 0, nil), nil
		}
		p.pushState(sBlockMappingValue)
		return p.parseNode(true, true)
	case token.TValue:
		// Spec 1.2 example 8.18 allows a missing key.
		p.state = sBlockMappingValue
		return emptyScalar(tok.Mark, 0, nil), nil
	case token.TBlockEnd:
		p.popState()
		p.skip()
		return &Event{Kind: MappingEnd, Mark: tok.Mark}, nil
	}
	return nil, parseErrf(tok.Mark,
		"while parsing a block mapping, did not find expected key")
}

func (p *Parser) blockMappingValue() (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.TValue {
		p.state = sBlockMappingKey
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	p.skip()
	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TKey, token.TValue, token.TBlockEnd:
		p.state = sBlockMappingKey
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	p.pushState(sBlockMappingKey)
	return p.parseNode(true, true)
}

func (p *Parser) flowSequenceEntry(first bool) (*Event, error) {
	if first {
		// skip TFlowSequenceStart
		if _, err := p.peek(); err != nil {
			return nil, err
		}
		p.skip()
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Type == token.TFlowSequenceEnd:
		p.popState()
		p.skip()
		return &Event{Kind: SequenceEnd, Mark: tok.Mark}, nil
	case tok.Type == token.TFlowEntry && !first:
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
	case !first:
		return nil, parseErrf(tok.Mark,
			"while parsing a flow sequence, did not find expected ',' or ']'")
	}
	switch tok.Type {
	case token.TFlowSequenceEnd:
		p.popState()
		p.skip()
		return &Event{Kind: SequenceEnd, Mark: tok.Mark}, nil
	case token.TKey:
		// A single-pair mapping inside a flow sequence, "[a: b]".
		p.state = sFlowSequenceEntryMappingKey
		p.skip()
		return &Event{Kind: MappingStart, Mark: tok.Mark}, nil
	}
	p.pushState(sFlowSequenceEntry)
	return p.parseNode(false, false)
}

func (p *Parser) flowSequenceEntryMappingKey() (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TValue, token.TFlowEntry, token.TFlowSequenceEnd:
		p.skip()
		p.state = sFlowSequenceEntryMappingValue
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	p.pushState(sFlowSequenceEntryMappingValue)
	return p.parseNode(false, false)
}

func (p *Parser) flowSequenceEntryMappingValue() (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.TValue {
		p.state = sFlowSequenceEntryMappingEnd
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	p.skip()
	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.TFlowEntry, token.TFlowSequenceEnd:
		p.state = sFlowSequenceEntryMappingEnd
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	p.pushState(sFlowSequenceEntryMappingEnd)
	return p.parseNode(false, false)
}

func (p *Parser) flowSequenceEntryMappingEnd() (*Event, error) {
	p.state = sFlowSequenceEntry
	return &Event{Kind: MappingEnd, Mark: p.scanner.Mark()}, nil
}

func (p *Parser) flowMappingKey(first bool) (*Event, error) {
	if first {
		// skip TFlowMappingStart
		if _, err := p.peek(); err != nil {
			return nil, err
		}
		p.skip()
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.TFlowMappingEnd {
		if !first {
			if tok.Type != token.TFlowEntry {
				return nil, parseErrf(tok.Mark,
					"while parsing a flow mapping, did not find expected ',' or '}'")
			}
			p.skip()
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
		}
		switch tok.Type {
		case token.TKey:
			p.skip()
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
			switch tok.Type {
			case token.TValue, token.TFlowEntry, token.TFlowMappingEnd:
				p.state = sFlowMappingValue
				return emptyScalar(tok.Mark, 0, nil), nil
			}
			p.pushState(sFlowMappingValue)
			return p.parseNode(false, false)
		case token.TValue:
			// Spec 1.2 example 7.3, an omitted key.
			p.state = sFlowMappingValue
			return emptyScalar(tok.Mark, 0, nil), nil
		case token.TFlowMappingEnd:
		default:
			p.pushState(sFlowMappingEmptyValue)
			return p.parseNode(false, false)
		}
	}
	p.popState()
	p.skip()
	return &Event{Kind: MappingEnd, Mark: tok.Mark}, nil
}

func (p *Parser) flowMappingValue(empty bool) (*Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if empty {
		p.state = sFlowMappingKey
		return emptyScalar(tok.Mark, 0, nil), nil
	}
	if tok.Type == token.TValue {
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case token.TFlowEntry, token.TFlowMappingEnd:
		default:
			p.pushState(sFlowMappingKey)
			return p.parseNode(false, false)
		}
	}
	p.state = sFlowMappingKey
	return emptyScalar(tok.Mark, 0, nil), nil
}
