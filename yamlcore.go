// Package yamlcore is a convenience facade over the pipeline packages:
// token (scanner), parse (event parser), load (tree builder), ir (value
// trees) and encode (serializer).
package yamlcore

import (
	"io"
	"strings"

	"github.com/yamlcore/go-yamlcore/encode"
	"github.com/yamlcore/go-yamlcore/ir"
	"github.com/yamlcore/go-yamlcore/load"
)

// LoadString parses YAML text and returns one value tree per document.
func LoadString(s string, opts ...load.Option) ([]*ir.Node, error) {
	return load.DocumentsString(s, opts...)
}

// LoadBytes is LoadString for byte input already known to be UTF-8.
// Use load.NewDecoder for input in an unknown Unicode encoding.
func LoadBytes(d []byte, opts ...load.Option) ([]*ir.Node, error) {
	return load.Documents(d, opts...)
}

// LoadReader reads r to its end, detects the Unicode encoding and
// loads the documents.
func LoadReader(r io.Reader, opts ...load.DecodeOption) ([]*ir.Node, error) {
	return load.NewDecoder(r, opts...).Decode()
}

// EmitString serializes one document.
func EmitString(node *ir.Node, opts ...encode.EncodeOption) (string, error) {
	var sb strings.Builder
	if err := encode.Encode(node, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EmitDocuments serializes a document stream, each document introduced
// by its own "---" line.
func EmitDocuments(docs []*ir.Node, opts ...encode.EncodeOption) (string, error) {
	var sb strings.Builder
	if err := encode.EncodeDocuments(docs, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}
