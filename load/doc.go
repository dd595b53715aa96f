// Package load builds IR value trees from YAML text.
//
// # Usage
//
//	docs, err := load.Documents([]byte("a: 1\nb: 2\n"))
//	if err != nil {
//	    return err
//	}
//	docs[0].Get("a") // ir.FromInt(1)
//
// A stream may hold several documents separated by "---"; Documents
// returns one tree per document in source order. Input must be UTF-8.
// For byte streams in an unknown encoding, use a Decoder, which
// recognizes UTF-16 input by its byte order mark or null-byte pattern
// and offers trap strategies for invalid byte sequences.
//
// # Related Packages
//
//   - github.com/yamlcore/go-yamlcore/ir - IR representation
//   - github.com/yamlcore/go-yamlcore/parse - The underlying event stream
//   - github.com/yamlcore/go-yamlcore/encode - Encode IR to text
package load
