package token

// Opt configures a Scanner.
type Opt func(*Scanner)

// WithTrace installs a sink invoked for every token handed out by
// Next. It overrides the default stderr trace enabled by
// YAMLCORE_DEBUG_SCAN.
func WithTrace(f func(*Token)) Opt {
	return func(s *Scanner) {
		s.trace = f
	}
}
