package encode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yamlcore/go-yamlcore/ir"
)

// needQuotes reports whether v must be double-quoted to scan back as
// the same string. Plain notation is out when the text is empty, when
// it carries leading or trailing space, when it contains an indicator
// or control character, and when the core schema would resolve it to a
// bool, null or number. The single letters y, Y, n and N stay plain;
// only YAML 1.1 treated them as booleans.
func needQuotes(v string) bool {
	if v == "" {
		return true
	}
	if v[0] == ' ' || v[len(v)-1] == ' ' {
		return true
	}
	switch v[0] {
	case '&', '*', '?', '|', '-', '<', '>', '=', '!', '%', '@', '.':
		return true
	}
	if strings.ContainsFunc(v, func(c rune) bool {
		switch c {
		case ':', '{', '}', '[', ']', ',', '#', '`', '"', '\'', '\\':
			return true
		}
		return c < 0x20 || c == 0x7f
	}) {
		return true
	}
	switch v {
	case "yes", "Yes", "YES", "no", "No", "NO",
		"True", "TRUE", "true", "False", "FALSE", "false",
		"on", "On", "ON", "off", "Off", "OFF",
		"null", "Null", "NULL", "~":
		return true
	}
	if strings.HasPrefix(v, "0x") {
		return true
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	return false
}

// escapeStr renders v as a double-quoted scalar.
func escapeStr(v string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch b := v[i]; b {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\b':
			sb.WriteString("\\b")
		case '\t':
			sb.WriteString("\\t")
		case '\n':
			sb.WriteString("\\n")
		case '\f':
			sb.WriteString("\\f")
		case '\r':
			sb.WriteString("\\r")
		default:
			if b < 0x20 || b == 0x7f {
				fmt.Fprintf(&sb, "\\u%04x", b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// canLiteral reports whether v round-trips as a literal block scalar.
// The scanner strips the indentation prefix from every content line and
// normalizes carriage returns, so strings where that loses information
// fall back to double quotes, as do strings that are line breaks only
// (chomping cannot reproduce them without a content line).
func canLiteral(v string) bool {
	if !strings.Contains(v, "\n") {
		return false
	}
	if strings.TrimRight(v, "\n") == "" {
		return false
	}
	if strings.ContainsFunc(v, func(c rune) bool {
		return (c < 0x20 && c != '\n') || c == 0x7f
	}) {
		return false
	}
	for _, ln := range strings.Split(v, "\n") {
		if ln != "" && (ln[0] == ' ' || ln[0] == '\t') {
			return false
		}
	}
	return true
}

// formatReal prefers the source text the value was loaded from, falling
// back to the shortest representation that parses back exactly.
func formatReal(node *ir.Node) string {
	if node.Number != "" {
		return node.Number
	}
	switch {
	case math.IsInf(node.Real, 1):
		return ".inf"
	case math.IsInf(node.Real, -1):
		return "-.inf"
	case math.IsNaN(node.Real):
		return ".nan"
	}
	s := strconv.FormatFloat(node.Real, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		// Keep the value a float on reload.
		s += ".0"
	}
	return s
}
