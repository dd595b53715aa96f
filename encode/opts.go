package encode

// EncodeOption configures a single Encode call.
type EncodeOption func(*EncState)

// Indent sets the number of spaces per nesting level. The default is 2;
// values below 1 are ignored.
func Indent(n int) EncodeOption {
	return func(es *EncState) {
		if n >= 1 {
			es.indent = n
		}
	}
}

// Compact controls inline container notation, on by default. With it
// off, a container nested under a sequence entry or an explicit key
// starts on its own line instead of sharing the indicator's line.
func Compact(v bool) EncodeOption {
	return func(es *EncState) { es.compact = v }
}

// Header controls the leading "---" line, on by default.
func Header(v bool) EncodeOption {
	return func(es *EncState) { es.header = v }
}

// EncodeColors turns on colorized output.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
