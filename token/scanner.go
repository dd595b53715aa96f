package token

import (
	"slices"
	"unicode/utf8"

	"github.com/yamlcore/go-yamlcore/debug"
)

// simpleKey tracks a scalar already in the token queue that may still
// turn out to be a mapping key.
//
// Upon scanning `a` in `a: b` we cannot yet know whether it is a key
// or a plain value. The scalar token stays queued and a simpleKey
// records its queue position. When a `:` follows on the same line
// (within 1024 bytes), a TKey token is inserted in front of it.
// Otherwise the entry goes stale and the scalar is emitted as is.
type simpleKey struct {
	possible    bool
	required    bool
	tokenNumber int
	mark        Marker
}

// indentLevel is one level on the indentation stack.
//
// Levels that do not open a block, such as the extra column reserved
// after a `-` for a single sequence entry, must not emit a TBlockEnd
// when closed; needsBlockEnd distinguishes them.
type indentLevel struct {
	indent        int
	needsBlockEnd bool
}

// maxFlowDepth bounds nesting of flow collections so that adversarial
// input like `[[[[...` fails instead of exhausting memory downstream.
const maxFlowDepth = 256

// Scanner turns input text into a stream of tokens. It understands
// indentation and whitespace and holds enough context to disambiguate
// constructs such as simple keys, but full validation of document
// structure is left to the parser.
//
// The zero Scanner is not usable; create one with NewScanner.
type Scanner struct {
	src  []rune
	pos  int
	mark Marker

	tokens         []*Token
	tokensParsed   int
	tokenAvailable bool
	err            error

	streamStartProduced    bool
	streamEndProduced      bool
	adjacentValueAllowedAt int
	simpleKeyAllowed       bool
	simpleKeys             []simpleKey
	indent                 int
	indents                []indentLevel
	flowLevel              int
	leadingWhitespace      bool
	flowMappingStarted     bool
	implicitFlowMapping    bool

	trace func(*Token)
}

// NewScanner creates a scanner over src. The whole input is held in
// memory; Marker offsets are byte offsets into src.
func NewScanner(src string, opts ...Opt) *Scanner {
	s := &Scanner{
		src:               []rune(src),
		mark:              Marker{Index: 0, Line: 1, Col: 0},
		simpleKeyAllowed:  true,
		indent:            -1,
		leadingWhitespace: true,
	}
	if debug.Scan() {
		s.trace = func(t *Token) { debug.Logf("scan: %s\n", t) }
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next token. After TStreamEnd has been returned,
// Next returns (nil, nil). Errors are sticky: once scanning fails,
// every subsequent call returns the same *ScanError.
func (s *Scanner) Next() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.streamEndProduced {
		return nil, nil
	}
	if !s.tokenAvailable {
		if err := s.fetchMoreTokens(); err != nil {
			s.err = err
			return nil, err
		}
	}
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	s.tokenAvailable = false
	s.tokensParsed++
	if t.Type == TStreamEnd {
		s.streamEndProduced = true
	}
	if s.trace != nil {
		s.trace(t)
	}
	return t, nil
}

// Err returns the sticky error, if any.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) Mark() Marker {
	return s.mark
}

func (s *Scanner) Started() bool {
	return s.streamStartProduced
}

func (s *Scanner) Ended() bool {
	return s.streamEndProduced
}

// at returns the rune i positions ahead without consuming it. Past the
// end of input it returns the zero rune.
func (s *Scanner) at(i int) rune {
	if s.pos+i < len(s.src) {
		return s.src[s.pos+i]
	}
	return 0
}

func (s *Scanner) ch() rune {
	return s.at(0)
}

func (s *Scanner) chIs(c rune) bool {
	return s.at(0) == c
}

// skip consumes the next rune and updates the mark.
func (s *Scanner) skip() {
	if s.pos >= len(s.src) {
		return
	}
	c := s.src[s.pos]
	s.pos++
	s.mark.Index += utf8.RuneLen(c)
	if c == '\n' {
		s.leadingWhitespace = true
		s.mark.Line++
		s.mark.Col = 0
	} else {
		if s.leadingWhitespace && !isBlank(c) {
			s.leadingWhitespace = false
		}
		s.mark.Col++
	}
}

// skipLine consumes a line break (CR, LF or CRLF), if any.
func (s *Scanner) skipLine() {
	if s.at(0) == '\r' && s.at(1) == '\n' {
		s.skip()
		s.skip()
	} else if isBreak(s.at(0)) {
		s.skip()
	}
}

// readBreak consumes a line break and appends a normalized \n to sb.
func (s *Scanner) readBreak(sb *[]rune) {
	if s.at(0) == '\r' && s.at(1) == '\n' {
		*sb = append(*sb, '\n')
		s.skip()
		s.skip()
	} else if isBreak(s.at(0)) {
		*sb = append(*sb, '\n')
		s.skip()
	}
}

func (s *Scanner) push(t *Token) {
	s.tokens = append(s.tokens, t)
}

func (s *Scanner) insertToken(pos int, t *Token) {
	s.tokens = slices.Insert(s.tokens, pos, t)
}

func (s *Scanner) allowSimpleKey() {
	s.simpleKeyAllowed = true
}

func (s *Scanner) disallowSimpleKey() {
	s.simpleKeyAllowed = false
}

func (s *Scanner) fetchMoreTokens() error {
	for {
		needMore := false
		if len(s.tokens) == 0 {
			needMore = true
		} else {
			if err := s.staleSimpleKeys(); err != nil {
				return err
			}
			// If our next token to be emitted may be a key, fetch
			// more context.
			for i := range s.simpleKeys {
				sk := &s.simpleKeys[i]
				if sk.possible && sk.tokenNumber == s.tokensParsed {
					needMore = true
					break
				}
			}
		}
		if !needMore {
			break
		}
		if err := s.fetchNextToken(); err != nil {
			return err
		}
	}
	s.tokenAvailable = true
	return nil
}

func (s *Scanner) fetchNextToken() error {
	if !s.streamStartProduced {
		s.fetchStreamStart()
		return nil
	}
	if err := s.skipToNextToken(); err != nil {
		return err
	}
	if err := s.staleSimpleKeys(); err != nil {
		return err
	}

	s.unrollIndent(s.mark.Col)

	if isZ(s.ch()) {
		return s.fetchStreamEnd()
	}

	if s.mark.Col == 0 && s.chIs('%') {
		return s.fetchDirective()
	}

	if s.mark.Col == 0 &&
		s.at(0) == '-' && s.at(1) == '-' && s.at(2) == '-' && isBlankz(s.at(3)) {
		return s.fetchDocumentIndicator(TDocumentStart)
	}

	if s.mark.Col == 0 &&
		s.at(0) == '.' && s.at(1) == '.' && s.at(2) == '.' && isBlankz(s.at(3)) {
		if err := s.fetchDocumentIndicator(TDocumentEnd); err != nil {
			return err
		}
		s.skipWsToEol(true)
		if !isBreakz(s.ch()) {
			return scanErrf(s.mark, "invalid content after document end marker")
		}
		return nil
	}

	if s.mark.Col < s.indent {
		return scanErrf(s.mark, "invalid indentation")
	}

	c := s.at(0)
	nc := s.at(1)
	switch {
	case c == '[':
		return s.fetchFlowCollectionStart(TFlowSequenceStart)
	case c == '{':
		return s.fetchFlowCollectionStart(TFlowMappingStart)
	case c == ']':
		return s.fetchFlowCollectionEnd(TFlowSequenceEnd)
	case c == '}':
		return s.fetchFlowCollectionEnd(TFlowMappingEnd)
	case c == ',':
		return s.fetchFlowEntry()
	case c == '-' && isBlankz(nc):
		return s.fetchBlockEntry()
	case c == '?' && isBlankz(nc):
		return s.fetchKey()
	case c == ':' && (isBlankz(nc) ||
		(s.flowLevel > 0 && (isFlow(nc) || s.mark.Index == s.adjacentValueAllowedAt))):
		return s.fetchValue()
	case c == '*':
		return s.fetchAnchor(true)
	case c == '&':
		return s.fetchAnchor(false)
	case c == '!':
		return s.fetchTag()
	case c == '|' && s.flowLevel == 0:
		return s.fetchBlockScalar(true)
	case c == '>' && s.flowLevel == 0:
		return s.fetchBlockScalar(false)
	case c == '\'':
		return s.fetchFlowScalar(true)
	case c == '"':
		return s.fetchFlowScalar(false)
	case c == '-' && !isBlankz(nc):
		return s.fetchPlainScalar()
	case (c == ':' || c == '?') && !isBlankz(nc) && s.flowLevel == 0:
		return s.fetchPlainScalar()
	case c == '%' || c == '@' || c == '`':
		return scanErrf(s.mark, "unexpected character: `%c'", c)
	default:
		return s.fetchPlainScalar()
	}
}

// staleSimpleKeys marks queued simple keys that can no longer become
// keys. Outside flow constructs a simple key cannot span lines nor
// exceed 1024 bytes.
func (s *Scanner) staleSimpleKeys() error {
	for i := range s.simpleKeys {
		sk := &s.simpleKeys[i]
		if sk.possible && s.flowLevel == 0 &&
			(sk.mark.Line < s.mark.Line || sk.mark.Index+1024 < s.mark.Index) {
			if sk.required {
				return scanErrf(s.mark, "simple key expect ':'")
			}
			sk.possible = false
		}
	}
	return nil
}

// skipToNextToken skips whitespace and comments up to the next token.
func (s *Scanner) skipToNextToken() error {
	for {
		switch c := s.ch(); {
		case c == ' ':
			s.skip()
		case c == '\t' && s.isWithinBlock() && s.leadingWhitespace && s.mark.Col < s.indent:
			// Tabs may not be used as indentation. They are fine as
			// leading whitespace outside of indentation, and anywhere
			// on lines without content.
			s.skipWsToEol(true)
			if !isBreakz(s.ch()) {
				return NewScanError(ErrTabIndent, s.mark)
			}
		case c == '\t':
			s.skip()
		case c == '\n' || c == '\r':
			s.skipLine()
			if s.flowLevel == 0 {
				s.allowSimpleKey()
			}
		case c == '#':
			for !isBreakz(s.ch()) {
				s.skip()
			}
		default:
			return nil
		}
	}
}

// skipYamlWhitespace skips spaces, line breaks and comments, requiring
// at least one space or break.
func (s *Scanner) skipYamlWhitespace() error {
	needWhitespace := true
	for {
		switch s.ch() {
		case ' ':
			s.skip()
			needWhitespace = false
		case '\n', '\r':
			s.skipLine()
			if s.flowLevel == 0 {
				s.allowSimpleKey()
			}
			needWhitespace = false
		case '#':
			for !isBreakz(s.ch()) {
				s.skip()
			}
		default:
			if needWhitespace {
				return scanErrf(s.mark, "expected whitespace")
			}
			return nil
		}
	}
}

// skipWsToEol skips whitespace and comments at most up to end of line.
// It reports whether tabs were encountered and whether at least one
// space was.
func (s *Scanner) skipWsToEol(skipTabs bool) (foundTabs, hasYamlWs bool) {
	for {
		switch s.ch() {
		case ' ':
			hasYamlWs = true
			s.skip()
		case '\t':
			if !skipTabs {
				return
			}
			foundTabs = true
			s.skip()
		case '#':
			for !isBreakz(s.ch()) {
				s.skip()
			}
		default:
			return
		}
	}
}

func (s *Scanner) fetchStreamStart() {
	mark := s.mark
	s.indent = -1
	s.streamStartProduced = true
	s.allowSimpleKey()
	s.push(&Token{Mark: mark, Type: TStreamStart})
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
}

func (s *Scanner) fetchStreamEnd() error {
	// force new line
	if s.mark.Col != 0 {
		s.mark.Col = 0
		s.mark.Line++
	}

	// No more context will come: every pending simple key goes stale.
	// A required one is an error.
	for i := range s.simpleKeys {
		sk := &s.simpleKeys[i]
		if sk.required && sk.possible {
			return scanErrf(s.mark, "simple key expected")
		}
		sk.possible = false
	}

	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()

	s.push(&Token{Mark: s.mark, Type: TStreamEnd})
	return nil
}

func (s *Scanner) fetchFlowCollectionStart(tt Type) error {
	// The indicators '[' and '{' may start a simple key.
	s.saveSimpleKey()

	s.rollOneColIndent()
	if err := s.increaseFlowLevel(); err != nil {
		return err
	}

	s.allowSimpleKey()

	mark := s.mark
	s.skip()

	if tt == TFlowMappingStart {
		s.flowMappingStarted = true
	}

	s.push(&Token{Mark: mark, Type: tt})
	return nil
}

func (s *Scanner) fetchFlowCollectionEnd(tt Type) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.decreaseFlowLevel()

	s.disallowSimpleKey()

	s.endImplicitMapping(s.mark)

	mark := s.mark
	s.skip()

	s.push(&Token{Mark: mark, Type: tt})
	return nil
}

// fetchFlowEntry pushes a TFlowEntry token and skips over the `,`.
func (s *Scanner) fetchFlowEntry() error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.allowSimpleKey()

	s.endImplicitMapping(s.mark)

	mark := s.mark
	s.skip()

	s.push(&Token{Mark: mark, Type: TFlowEntry})
	return nil
}

func (s *Scanner) increaseFlowLevel() error {
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
	if s.flowLevel+1 > maxFlowDepth {
		return NewScanError(ErrFlowDepth, s.mark)
	}
	s.flowLevel++
	return nil
}

func (s *Scanner) decreaseFlowLevel() {
	if s.flowLevel > 0 {
		s.flowLevel--
		s.simpleKeys = s.simpleKeys[:len(s.simpleKeys)-1]
	}
}

// fetchBlockEntry adds an indentation level and a TBlockSequenceStart
// token if needed, then pushes a TBlockEntry token. It only skips over
// the `-`; the entry value is fetched later.
func (s *Scanner) fetchBlockEntry() error {
	if s.flowLevel > 0 {
		return scanErrf(s.mark, `"-" is only valid inside a block`)
	}
	if !s.simpleKeyAllowed {
		return scanErrf(s.mark, "block sequence entries are not allowed in this context")
	}

	mark := s.mark
	s.skip()

	s.rollIndent(mark.Col, -1, TBlockSequenceStart, mark)
	foundTabs, _ := s.skipWsToEol(true)
	if foundTabs && s.at(0) == '-' && isBlankz(s.at(1)) {
		return scanErrf(s.mark, "'-' must be followed by a valid YAML whitespace")
	}

	s.skipWsToEol(false)
	if isBreak(s.ch()) || isFlow(s.ch()) {
		s.rollOneColIndent()
	}

	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.allowSimpleKey()

	s.push(&Token{Mark: s.mark, Type: TBlockEntry})
	return nil
}

func (s *Scanner) fetchDocumentIndicator(tt Type) error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()

	mark := s.mark
	s.skip()
	s.skip()
	s.skip()

	s.push(&Token{Mark: mark, Type: tt})
	return nil
}

func (s *Scanner) fetchKey() error {
	mark := s.mark
	if s.flowLevel == 0 {
		// Check if we are allowed to start a new key (not necessarily
		// simple).
		if !s.simpleKeyAllowed {
			return scanErrf(s.mark, "mapping keys are not allowed in this context")
		}
		s.rollIndent(mark.Col, -1, TBlockMappingStart, mark)
	} else {
		// The parser, upon receiving a TKey, will insert a
		// MappingStart event.
		s.flowMappingStarted = true
	}

	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	if s.flowLevel == 0 {
		s.allowSimpleKey()
	} else {
		s.disallowSimpleKey()
	}

	s.skip()
	if err := s.skipYamlWhitespace(); err != nil {
		return err
	}
	if s.ch() == '\t' {
		return scanErrf(s.mark, "tabs disallowed in this context")
	}
	s.push(&Token{Mark: mark, Type: TKey})
	return nil
}

// fetchValue fetches a value in a mapping (after a `:`).
func (s *Scanner) fetchValue() error {
	sk := s.simpleKeys[len(s.simpleKeys)-1]
	mark := s.mark
	s.implicitFlowMapping = s.flowLevel > 0 && !s.flowMappingStarted

	// Skip over ':'.
	s.skip()
	if s.ch() == '\t' {
		_, hasYamlWs := s.skipWsToEol(true)
		if !hasYamlWs && (s.ch() == '-' || isAlpha(s.ch())) {
			return scanErrf(s.mark, "':' must be followed by a valid YAML whitespace")
		}
	}

	if sk.possible {
		// insert simple key
		s.insertToken(sk.tokenNumber-s.tokensParsed, &Token{Mark: sk.mark, Type: TKey})
		if s.implicitFlowMapping {
			if sk.mark.Line < mark.Line {
				return scanErrf(mark, "illegal placement of ':' indicator")
			}
			s.insertToken(sk.tokenNumber-s.tokensParsed,
				&Token{Mark: s.mark, Type: TFlowMappingStart})
		}

		// Add the TBlockMappingStart token if needed.
		s.rollIndent(sk.mark.Col, sk.tokenNumber, TBlockMappingStart, mark)
		s.rollOneColIndent()

		s.simpleKeys[len(s.simpleKeys)-1].possible = false
		s.disallowSimpleKey()
	} else {
		if s.implicitFlowMapping {
			s.push(&Token{Mark: s.mark, Type: TFlowMappingStart})
		}
		// The ':' indicator follows a complex key.
		if s.flowLevel == 0 {
			if !s.simpleKeyAllowed {
				return scanErrf(mark, "mapping values are not allowed in this context")
			}
			s.rollIndent(mark.Col, -1, TBlockMappingStart, mark)
		}
		s.rollOneColIndent()

		if s.flowLevel == 0 {
			s.allowSimpleKey()
		} else {
			s.disallowSimpleKey()
		}
	}
	s.push(&Token{Mark: mark, Type: TValue})
	return nil
}

// rollIndent adds an indentation level with the given block token if
// the column is further indented than the current level. Inside flow
// constructs indentation does not apply. A tokenNumber >= 0 places the
// block token at that queue position instead of at the back.
func (s *Scanner) rollIndent(col int, tokenNumber int, tt Type, mark Marker) {
	if s.flowLevel > 0 {
		return
	}

	// If the last indent was a non-block indent, remove it. We
	// prepared an indent we thought we wouldn't use, but realized just
	// now that it is a block indent.
	if s.indent <= col && len(s.indents) > 0 {
		last := s.indents[len(s.indents)-1]
		if !last.needsBlockEnd {
			s.indent = last.indent
			s.indents = s.indents[:len(s.indents)-1]
		}
	}

	if s.indent < col {
		s.indents = append(s.indents, indentLevel{indent: s.indent, needsBlockEnd: true})
		s.indent = col
		if tokenNumber >= 0 {
			s.insertToken(tokenNumber-s.tokensParsed, &Token{Mark: mark, Type: tt})
		} else {
			s.push(&Token{Mark: mark, Type: tt})
		}
	}
}

// unrollIndent pops indentation levels deeper than col, pushing a
// TBlockEnd for every block level closed.
func (s *Scanner) unrollIndent(col int) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > col {
		last := s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
		s.indent = last.indent
		if last.needsBlockEnd {
			s.push(&Token{Mark: s.mark, Type: TBlockEnd})
		}
	}
}

// rollOneColIndent adds an indentation level of one column that does
// not start a block. Nothing is added inside a flow level or when the
// last indent is already a non-block indent.
func (s *Scanner) rollOneColIndent() {
	if s.flowLevel == 0 && len(s.indents) > 0 && s.indents[len(s.indents)-1].needsBlockEnd {
		s.indents = append(s.indents, indentLevel{indent: s.indent, needsBlockEnd: false})
		s.indent++
	}
}

// unrollNonBlockIndents pops all trailing indents created by
// rollOneColIndent.
func (s *Scanner) unrollNonBlockIndents() {
	for len(s.indents) > 0 {
		last := s.indents[len(s.indents)-1]
		if last.needsBlockEnd {
			break
		}
		s.indent = last.indent
		s.indents = s.indents[:len(s.indents)-1]
	}
}

// saveSimpleKey records the token about to be pushed as a potential
// simple key.
func (s *Scanner) saveSimpleKey() {
	if !s.simpleKeyAllowed {
		return
	}
	required := s.flowLevel > 0 && s.indent == s.mark.Col &&
		len(s.indents) > 0 && s.indents[len(s.indents)-1].needsBlockEnd
	s.simpleKeys[len(s.simpleKeys)-1] = simpleKey{
		possible:    true,
		required:    required,
		tokenNumber: s.tokensParsed + len(s.tokens),
		mark:        s.mark,
	}
}

func (s *Scanner) removeSimpleKey() error {
	last := &s.simpleKeys[len(s.simpleKeys)-1]
	if last.possible && last.required {
		return scanErrf(s.mark, "simple key expected")
	}
	last.possible = false
	return nil
}

// isWithinBlock reports whether the scanner is inside a block.
func (s *Scanner) isWithinBlock() bool {
	return len(s.indents) > 0
}

// endImplicitMapping closes an implicit flow mapping, if one had
// started.
func (s *Scanner) endImplicitMapping(mark Marker) {
	if s.implicitFlowMapping {
		s.implicitFlowMapping = false
		s.flowMappingStarted = false
		s.push(&Token{Mark: mark, Type: TFlowMappingEnd})
	}
}
