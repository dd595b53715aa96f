package parse

// ParseOption configures a Parser.
type ParseOption func(*Parser)

// KeepTags keeps the anchor and tag handle tables across document
// boundaries instead of resetting them at each document end. Aliases
// may then reference anchors from earlier documents in the stream.
func KeepTags(v bool) ParseOption {
	return func(p *Parser) { p.keepTags = v }
}

// WithTrace installs a sink invoked for every event handed out by
// Next. It overrides the default stderr trace enabled by
// YAMLCORE_DEBUG_PARSE.
func WithTrace(f func(*Event)) ParseOption {
	return func(p *Parser) { p.trace = f }
}
