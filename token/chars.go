package token

// The zero rune marks end of input.
func isZ(c rune) bool {
	return c == 0
}

func isBreak(c rune) bool {
	return c == '\n' || c == '\r'
}

func isBreakz(c rune) bool {
	return isBreak(c) || isZ(c)
}

func isBlank(c rune) bool {
	return c == ' ' || c == '\t'
}

func isBlankz(c rune) bool {
	return isBlank(c) || isBreakz(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isAlpha reports a word character: digit, letter, `_` or `-`.
func isAlpha(c rune) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}

func isHex(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func asHex(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

// isFlow reports a flow indicator (one of `,[]{}`).
func isFlow(c rune) bool {
	switch c {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

func isBOM(c rune) bool {
	return c == '\uFEFF'
}

func isAnchorChar(c rune) bool {
	return !isBreak(c) && !isBOM(c) && !isBlank(c) && !isFlow(c) && !isZ(c)
}
