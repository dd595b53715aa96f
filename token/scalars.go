package token

import "unicode/utf8"

func (s *Scanner) fetchBlockScalar(literal bool) error {
	s.saveSimpleKey()
	s.allowSimpleKey()
	tok, err := s.scanBlockScalar(literal)
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanBlockScalar(literal bool) (*Token, error) {
	startMark := s.mark
	chomping := 0
	increment := 0
	indent := 0
	leadingBlank := false
	trailingBlank := false

	var str, leadingBreak, trailingBreaks []rune

	// skip '|' or '>'
	s.skip()
	s.unrollNonBlockIndents()

	// Parse the header: chomping indicator and/or explicit indent.
	if s.ch() == '+' || s.ch() == '-' {
		if s.ch() == '+' {
			chomping = 1
		} else {
			chomping = -1
		}
		s.skip()
		if isDigit(s.ch()) {
			if s.ch() == '0' {
				return nil, scanErrf(startMark,
					"while scanning a block scalar, found an indentation indicator equal to 0")
			}
			increment = int(s.ch() - '0')
			s.skip()
		}
	} else if isDigit(s.ch()) {
		if s.ch() == '0' {
			return nil, scanErrf(startMark,
				"while scanning a block scalar, found an indentation indicator equal to 0")
		}
		increment = int(s.ch() - '0')
		s.skip()
		if s.ch() == '+' || s.ch() == '-' {
			if s.ch() == '+' {
				chomping = 1
			} else {
				chomping = -1
			}
			s.skip()
		}
	}

	s.skipWsToEol(true)

	if !isBreakz(s.ch()) {
		return nil, scanErrf(startMark,
			"while scanning a block scalar, did not find expected comment or line break")
	}
	if isBreak(s.ch()) {
		s.skipLine()
	}

	if s.ch() == '\t' {
		return nil, scanErrf(startMark, "a block scalar content cannot start with a tab")
	}

	if increment > 0 {
		if s.indent >= 0 {
			indent = s.indent + increment
		} else {
			indent = increment
		}
	}

	// Scan the leading line breaks and determine the indentation level
	// if needed.
	if indent == 0 {
		indent = s.skipBlockScalarFirstLineIndent(&trailingBreaks)
	} else {
		s.skipBlockScalarIndent(indent, &trailingBreaks)
	}

	startMark = s.mark

	for s.mark.Col == indent && !isZ(s.ch()) {
		// We are at the beginning of a non-empty line.
		trailingBlank = isBlank(s.ch())
		if !literal && len(leadingBreak) > 0 && !leadingBlank && !trailingBlank {
			if len(trailingBreaks) == 0 {
				str = append(str, ' ')
			}
			leadingBreak = leadingBreak[:0]
		} else {
			str = append(str, leadingBreak...)
			leadingBreak = leadingBreak[:0]
		}

		str = append(str, trailingBreaks...)
		trailingBreaks = trailingBreaks[:0]

		leadingBlank = isBlank(s.ch())

		for !isBreakz(s.ch()) {
			str = append(str, s.ch())
			s.skip()
		}
		// break on EOF
		if isZ(s.ch()) {
			break
		}

		s.readBreak(&leadingBreak)

		// Eat the following indentation spaces and line breaks.
		s.skipBlockScalarIndent(indent, &trailingBreaks)
	}

	// Chomp the tail.
	if chomping != -1 {
		str = append(str, leadingBreak...)
	}
	if chomping == 1 {
		str = append(str, trailingBreaks...)
	}

	style := Folded
	if literal {
		style = Literal
	}
	return &Token{Mark: startMark, Type: TScalar, Style: style, Value: string(str)}, nil
}

// skipBlockScalarIndent skips the block scalar indentation and empty
// lines.
func (s *Scanner) skipBlockScalarIndent(indent int, breaks *[]rune) {
	for {
		// Consume all spaces. Tabs cannot be used as indentation.
		for s.mark.Col < indent && s.ch() == ' ' {
			s.skip()
		}
		if !isBreak(s.ch()) {
			// A content line. Return control.
			break
		}
		s.readBreak(breaks)
	}
}

// skipBlockScalarFirstLineIndent determines the indentation level for
// a block scalar from the first line of its contents, skipping over
// whitespace-only lines.
func (s *Scanner) skipBlockScalarFirstLineIndent(breaks *[]rune) int {
	maxIndent := 0
	for {
		for s.ch() == ' ' {
			s.skip()
		}
		if s.mark.Col > maxIndent {
			maxIndent = s.mark.Col
		}
		if !isBreak(s.ch()) {
			break
		}
		s.readBreak(breaks)
	}

	// For an unindented scalar at the top level the indent must stay
	// 0; everywhere else it is at least 1.
	indent := max(maxIndent, s.indent+1)
	if s.indent > 0 {
		indent = max(indent, 1)
	}
	return indent
}

func (s *Scanner) fetchFlowScalar(single bool) error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanFlowScalar(single)
	if err != nil {
		return err
	}

	// To ensure JSON compatibility, if a key inside a flow mapping is
	// JSON-like, the following value may be specified adjacent to the
	// ':'.
	if err := s.skipToNextToken(); err != nil {
		return err
	}
	s.adjacentValueAllowedAt = s.mark.Index

	s.push(tok)
	return nil
}

func (s *Scanner) scanFlowScalar(single bool) (*Token, error) {
	startMark := s.mark

	var str, leadingBreak, trailingBreaks, whitespaces []rune

	// Eat the left quote.
	s.skip()

	for {
		// Check for a document indicator.
		if s.mark.Col == 0 &&
			((s.at(0) == '-' && s.at(1) == '-' && s.at(2) == '-') ||
				(s.at(0) == '.' && s.at(1) == '.' && s.at(2) == '.')) &&
			isBlankz(s.at(3)) {
			return nil, scanErrf(startMark,
				"while scanning a quoted scalar, found unexpected document indicator")
		}

		if isZ(s.ch()) {
			return nil, scanErrf(s.mark, "while scanning a quoted scalar, %w", ErrUnexpectedEOF)
		}

		leadingBlanks := false
		if err := s.consumeFlowScalarNonWhitespace(single, &str, &leadingBlanks, startMark); err != nil {
			return nil, err
		}

		if (single && s.ch() == '\'') || (!single && s.ch() == '"') {
			break
		}

		// Consume blank characters.
		for isBlank(s.ch()) || isBreak(s.ch()) {
			if isBlank(s.ch()) {
				if leadingBlanks {
					if s.ch() == '\t' && s.mark.Col < s.indent {
						return nil, scanErrf(s.mark, "tab cannot be used as indentation")
					}
					s.skip()
				} else {
					whitespaces = append(whitespaces, s.ch())
					s.skip()
				}
			} else if leadingBlanks {
				s.readBreak(&trailingBreaks)
			} else {
				whitespaces = whitespaces[:0]
				s.readBreak(&leadingBreak)
				leadingBlanks = true
			}
		}

		// Join the whitespaces or fold line breaks.
		if leadingBlanks {
			if len(leadingBreak) == 0 {
				str = append(str, leadingBreak...)
				str = append(str, trailingBreaks...)
				trailingBreaks = trailingBreaks[:0]
				leadingBreak = leadingBreak[:0]
			} else {
				if len(trailingBreaks) == 0 {
					str = append(str, ' ')
				} else {
					str = append(str, trailingBreaks...)
					trailingBreaks = trailingBreaks[:0]
				}
				leadingBreak = leadingBreak[:0]
			}
		} else {
			str = append(str, whitespaces...)
			whitespaces = whitespaces[:0]
		}
	}

	// Eat the right quote.
	s.skip()
	// Ensure there is no invalid trailing content.
	s.skipWsToEol(true)
	switch c := s.ch(); {
	// These can be encountered in flow sequences or mappings.
	case (c == ',' || c == '}' || c == ']') && s.flowLevel > 0:
	// An end-of-line / end-of-stream is fine. No trailing content.
	case isBreakz(c):
	// ':' can be encountered if our scalar is a key. Outside of flow
	// contexts, keys cannot span multiple lines.
	case c == ':' && s.flowLevel == 0 && startMark.Line == s.mark.Line:
	case c == ':' && s.flowLevel > 0:
	default:
		return nil, scanErrf(s.mark, "invalid trailing content after double-quoted scalar")
	}

	style := DoubleQuoted
	if single {
		style = SingleQuoted
	}
	return &Token{Mark: startMark, Type: TScalar, Style: style, Value: string(str)}, nil
}

// consumeFlowScalarNonWhitespace consumes successive non-whitespace
// characters from a flow scalar, resolving escape sequences. It stops
// upon whitespace, end of stream or the closing quote.
func (s *Scanner) consumeFlowScalarNonWhitespace(
	single bool,
	str *[]rune,
	leadingBlanks *bool,
	startMark Marker,
) error {
	for !isBlankz(s.ch()) {
		switch {
		// An escaped single quote.
		case single && s.ch() == '\'' && s.at(1) == '\'':
			*str = append(*str, '\'')
			s.skip()
			s.skip()
		// The right quote.
		case single && s.ch() == '\'':
			return nil
		case !single && s.ch() == '"':
			return nil
		// An escaped line break.
		case !single && s.ch() == '\\' && isBreak(s.at(1)):
			s.skip()
			s.skipLine()
			*leadingBlanks = true
			return nil
		// An escape sequence.
		case !single && s.ch() == '\\':
			c, err := s.resolveFlowScalarEscape(startMark)
			if err != nil {
				return err
			}
			*str = append(*str, c)
		default:
			*str = append(*str, s.ch())
			s.skip()
		}
	}
	return nil
}

// resolveFlowScalarEscape decodes the escape sequence starting at the
// current `\`.
func (s *Scanner) resolveFlowScalarEscape(startMark Marker) (rune, error) {
	codeLength := 0
	var ret rune

	switch s.at(1) {
	case '0':
		ret = 0
	case 'a':
		ret = '\a'
	case 'b':
		ret = '\b'
	case 't', '\t':
		ret = '\t'
	case 'n':
		ret = '\n'
	case 'v':
		ret = '\v'
	case 'f':
		ret = '\f'
	case 'r':
		ret = '\r'
	case 'e':
		ret = 0x1b
	case ' ':
		ret = ' '
	case '"':
		ret = '"'
	case '\'':
		ret = '\''
	case '\\':
		ret = '\\'
	case 'N': // next line (#x85)
		ret = 0x85
	case '_': // non-breaking space (#xA0)
		ret = 0xA0
	case 'L': // line separator (#x2028)
		ret = 0x2028
	case 'P': // paragraph separator (#x2029)
		ret = 0x2029
	case 'x':
		codeLength = 2
	case 'u':
		codeLength = 4
	case 'U':
		codeLength = 8
	default:
		return 0, scanErrf(startMark, "while parsing a quoted scalar, found unknown escape character")
	}
	s.skip()
	s.skip()

	if codeLength > 0 {
		value := 0
		for i := 0; i < codeLength; i++ {
			if !isHex(s.at(i)) {
				return 0, scanErrf(startMark,
					"while parsing a quoted scalar, did not find expected hexadecimal number")
			}
			value = (value << 4) + asHex(s.at(i))
		}
		if !utf8.ValidRune(rune(value)) {
			return 0, scanErrf(startMark,
				"while parsing a quoted scalar, found invalid Unicode character escape code")
		}
		ret = rune(value)
		for i := 0; i < codeLength; i++ {
			s.skip()
		}
	}
	return ret, nil
}

func (s *Scanner) fetchPlainScalar() error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanPlainScalar()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanPlainScalar() (*Token, error) {
	s.unrollNonBlockIndents()
	indent := s.indent + 1
	startMark := s.mark

	var str, leadingBreak, trailingBreaks, whitespaces []rune
	leadingBlanks := true

	for {
		// Check for a document indicator.
		if s.mark.Col == 0 &&
			((s.at(0) == '-' && s.at(1) == '-' && s.at(2) == '-') ||
				(s.at(0) == '.' && s.at(1) == '.' && s.at(2) == '.')) &&
			isBlankz(s.at(3)) {
			break
		}

		if s.ch() == '#' {
			break
		}
		for !isBlankz(s.ch()) {
			// Indicators can end a plain scalar, see 7.3.3 of the
			// YAML spec.
			if s.ch() == ':' &&
				(isBlankz(s.at(1)) || (s.flowLevel > 0 && isFlow(s.at(1)))) {
				break
			}
			if s.flowLevel > 0 && isFlow(s.ch()) {
				break
			}

			if leadingBlanks || len(whitespaces) > 0 {
				if leadingBlanks {
					if len(leadingBreak) == 0 {
						str = append(str, leadingBreak...)
						str = append(str, trailingBreaks...)
						trailingBreaks = trailingBreaks[:0]
						leadingBreak = leadingBreak[:0]
					} else {
						if len(trailingBreaks) == 0 {
							str = append(str, ' ')
						} else {
							str = append(str, trailingBreaks...)
							trailingBreaks = trailingBreaks[:0]
						}
						leadingBreak = leadingBreak[:0]
					}
					leadingBlanks = false
				} else {
					str = append(str, whitespaces...)
					whitespaces = whitespaces[:0]
				}
			}

			str = append(str, s.ch())
			s.skip()
		}
		// is the end?
		if !isBlank(s.ch()) && !isBreak(s.ch()) {
			break
		}

		for isBlank(s.ch()) || isBreak(s.ch()) {
			if isBlank(s.ch()) {
				if leadingBlanks && s.mark.Col < indent && s.ch() == '\t' {
					// If the line contains only whitespace, this is
					// not an error; skip over it.
					s.skipWsToEol(true)
					if isBreakz(s.ch()) {
						continue
					}
					return nil, scanErrf(startMark, "while scanning a plain scalar, found a tab")
				}
				if !leadingBlanks {
					whitespaces = append(whitespaces, s.ch())
				}
				s.skip()
			} else if leadingBlanks {
				s.readBreak(&trailingBreaks)
			} else {
				whitespaces = whitespaces[:0]
				s.readBreak(&leadingBreak)
				leadingBlanks = true
			}
		}

		// check indentation level
		if s.flowLevel == 0 && s.mark.Col < indent {
			break
		}
	}

	if leadingBlanks {
		s.allowSimpleKey()
	}

	return &Token{Mark: startMark, Type: TScalar, Style: Plain, Value: string(str)}, nil
}
