package token

import "unicode/utf8"

func (s *Scanner) fetchDirective() error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()

	tok, err := s.scanDirective()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanDirective() (*Token, error) {
	startMark := s.mark
	s.skip()

	name, err := s.scanDirectiveName()
	if err != nil {
		return nil, err
	}
	var tok *Token
	switch name {
	case "YAML":
		tok, err = s.scanVersionDirectiveValue(startMark)
		if err != nil {
			return nil, err
		}
	case "TAG":
		tok, err = s.scanTagDirectiveValue(startMark)
		if err != nil {
			return nil, err
		}
	default:
		// Unknown directives are skipped, not fatal. An empty tag
		// directive token stands in for them.
		for !isBreakz(s.ch()) {
			s.skip()
		}
		tok = &Token{Mark: startMark, Type: TTagDirective}
	}

	for isBlank(s.ch()) {
		s.skip()
	}

	if s.ch() == '#' {
		for !isBreakz(s.ch()) {
			s.skip()
		}
	}

	if !isBreakz(s.ch()) {
		return nil, scanErrf(startMark,
			"while scanning a directive, did not find expected comment or line break")
	}

	// Eat a line break
	if isBreak(s.ch()) {
		s.skipLine()
	}

	return tok, nil
}

func (s *Scanner) scanDirectiveName() (string, error) {
	startMark := s.mark
	var name []rune
	for isAlpha(s.ch()) {
		name = append(name, s.ch())
		s.skip()
	}

	if len(name) == 0 {
		return "", scanErrf(startMark,
			"while scanning a directive, could not find expected directive name")
	}

	if !isBlankz(s.ch()) {
		return "", scanErrf(startMark,
			"while scanning a directive, found unexpected non-alphabetical character")
	}

	return string(name), nil
}

func (s *Scanner) scanVersionDirectiveValue(mark Marker) (*Token, error) {
	for isBlank(s.ch()) {
		s.skip()
	}

	major, err := s.scanVersionDirectiveNumber(mark)
	if err != nil {
		return nil, err
	}

	if s.ch() != '.' {
		return nil, scanErrf(mark,
			"while scanning a YAML directive, did not find expected digit or '.' character")
	}
	s.skip()

	minor, err := s.scanVersionDirectiveNumber(mark)
	if err != nil {
		return nil, err
	}

	return &Token{Mark: mark, Type: TVersionDirective, Major: major, Minor: minor}, nil
}

func (s *Scanner) scanVersionDirectiveNumber(mark Marker) (int, error) {
	val := 0
	length := 0
	for isDigit(s.ch()) {
		if length+1 > 9 {
			return 0, scanErrf(mark,
				"while scanning a YAML directive, found extremely long version number")
		}
		length++
		val = val*10 + int(s.ch()-'0')
		s.skip()
	}

	if length == 0 {
		return 0, scanErrf(mark,
			"while scanning a YAML directive, did not find expected version number")
	}

	return val, nil
}

func (s *Scanner) scanTagDirectiveValue(mark Marker) (*Token, error) {
	for isBlank(s.ch()) {
		s.skip()
	}
	handle, err := s.scanTagHandle(true, mark)
	if err != nil {
		return nil, err
	}

	for isBlank(s.ch()) {
		s.skip()
	}

	prefix, err := s.scanTagURI(true, "", mark)
	if err != nil {
		return nil, err
	}

	if !isBlankz(s.ch()) {
		return nil, scanErrf(mark,
			"while scanning TAG, did not find expected whitespace or line break")
	}

	return &Token{Mark: mark, Type: TTagDirective, Handle: handle, Suffix: prefix}, nil
}

func (s *Scanner) fetchTag() error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanTag()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanTag() (*Token, error) {
	startMark := s.mark
	var handle, suffix string
	var err error

	if s.at(1) == '<' {
		// A verbatim tag: `!<...>`. The handle stays empty.
		s.skip()
		s.skip()
		suffix, err = s.scanTagURI(false, "", startMark)
		if err != nil {
			return nil, err
		}

		if s.ch() != '>' {
			return nil, scanErrf(startMark, "while scanning a tag, did not find the expected '>'")
		}
		s.skip()
	} else {
		// The tag has either the '!suffix' or the '!handle!suffix'
		// form.
		handle, err = s.scanTagHandle(false, startMark)
		if err != nil {
			return nil, err
		}
		if len(handle) >= 2 && handle[0] == '!' && handle[len(handle)-1] == '!' {
			suffix, err = s.scanTagURI(false, "", startMark)
			if err != nil {
				return nil, err
			}
		} else {
			suffix, err = s.scanTagURI(false, handle, startMark)
			if err != nil {
				return nil, err
			}
			handle = "!"
			// A special case: the '!' tag.
			if suffix == "" {
				handle = ""
				suffix = "!"
			}
		}
	}

	if !isBlankz(s.ch()) {
		return nil, scanErrf(startMark,
			"while scanning a tag, did not find expected whitespace or line break")
	}
	// An empty scalar may follow the tag (spec example 7.2).
	return &Token{Mark: startMark, Type: TTag, Handle: handle, Suffix: suffix}, nil
}

func (s *Scanner) scanTagHandle(directive bool, mark Marker) (string, error) {
	if s.ch() != '!' {
		return "", scanErrf(mark, "while scanning a tag, did not find expected '!'")
	}
	handle := []rune{s.ch()}
	s.skip()

	for isAlpha(s.ch()) {
		handle = append(handle, s.ch())
		s.skip()
	}

	// Check if the trailing character is '!' and copy it.
	if s.ch() == '!' {
		handle = append(handle, s.ch())
		s.skip()
	} else if directive && string(handle) != "!" {
		// It's either the '!' tag or not really a tag handle. If it's
		// a %TAG directive, it's an error. If it's a tag token, it
		// must be a part of the URI.
		return "", scanErrf(mark, "while parsing a tag directive, did not find expected '!'")
	}
	return string(handle), nil
}

func isURIChar(c rune) bool {
	switch c {
	case ';', '/', '?', ':', '@', '&',
		'=', '+', '$', ',', '.', '!', '~', '*', '\'', '(', ')', '[', ']',
		'%':
		return true
	}
	return isAlpha(c)
}

func (s *Scanner) scanTagURI(directive bool, head string, mark Marker) (string, error) {
	length := len(head)
	var uri []rune

	// Copy the head if needed, dropping its leading '!'.
	if length > 1 {
		uri = append(uri, []rune(head)[1:]...)
	}

	for isURIChar(s.ch()) {
		if s.ch() == '%' {
			c, err := s.scanURIEscapes(directive, mark)
			if err != nil {
				return "", err
			}
			uri = append(uri, c)
		} else {
			uri = append(uri, s.ch())
			s.skip()
		}
		length++
	}

	if length == 0 {
		return "", scanErrf(mark, "while parsing a tag, did not find expected tag URI")
	}

	return string(uri), nil
}

// scanURIEscapes decodes one %xx-escaped UTF-8 sequence from a tag
// URI.
func (s *Scanner) scanURIEscapes(directive bool, mark Marker) (rune, error) {
	_ = directive
	width := 0
	code := 0
	for {
		if !(s.ch() == '%' && isHex(s.at(1)) && isHex(s.at(2))) {
			return 0, scanErrf(mark, "while parsing a tag, did not find URI escaped octet")
		}

		octet := (asHex(s.at(1)) << 4) + asHex(s.at(2))
		if width == 0 {
			switch {
			case octet&0x80 == 0x00:
				width = 1
			case octet&0xE0 == 0xC0:
				width = 2
			case octet&0xF0 == 0xE0:
				width = 3
			case octet&0xF8 == 0xF0:
				width = 4
			default:
				return 0, scanErrf(mark, "while parsing a tag, found an incorrect leading UTF-8 octet")
			}
			code = octet
		} else {
			if octet&0xC0 != 0x80 {
				return 0, scanErrf(mark, "while parsing a tag, found an incorrect trailing UTF-8 octet")
			}
			code = (code << 8) + octet
		}

		s.skip()
		s.skip()
		s.skip()

		width--
		if width == 0 {
			break
		}
	}

	c, ok := decodeUTF8Code(code)
	if !ok {
		return 0, scanErrf(mark, "while parsing a tag, found an invalid UTF-8 codepoint")
	}
	return c, nil
}

// decodeUTF8Code converts the concatenated octets of one UTF-8
// sequence into a rune.
func decodeUTF8Code(code int) (rune, bool) {
	var buf []byte
	switch {
	case code <= 0xFF:
		buf = []byte{byte(code)}
	case code <= 0xFFFF:
		buf = []byte{byte(code >> 8), byte(code)}
	case code <= 0xFFFFFF:
		buf = []byte{byte(code >> 16), byte(code >> 8), byte(code)}
	default:
		buf = []byte{byte(code >> 24), byte(code >> 16), byte(code >> 8), byte(code)}
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 || size != len(buf) {
		return 0, false
	}
	return r, true
}

func (s *Scanner) fetchAnchor(alias bool) error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanAnchor(alias)
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanAnchor(alias bool) (*Token, error) {
	startMark := s.mark
	var name []rune

	s.skip()
	for isAnchorChar(s.ch()) {
		name = append(name, s.ch())
		s.skip()
	}

	if len(name) == 0 {
		return nil, scanErrf(startMark,
			"while scanning an anchor or alias, did not find expected alphabetic or numeric character")
	}

	tt := TAnchor
	if alias {
		tt = TAlias
	}
	return &Token{Mark: startMark, Type: tt, Value: string(name)}, nil
}
