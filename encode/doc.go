// Package encode serializes value trees to YAML block notation.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("alice")},
//	    {Key: ir.FromString("age"), Val: ir.FromInt(30)},
//	})
//	var buf bytes.Buffer
//	err := encode.Encode(node, &buf)
//
//	// With options
//	err = encode.Encode(node, &buf, encode.Indent(4), encode.Compact(false))
//
// Output is deterministic: hash entries keep their insertion order and
// plain scalars are quoted only when the text would otherwise resolve
// to another type or would not scan back as the same string. Strings
// with embedded line breaks come out as literal block scalars where the
// scanner can reproduce them exactly, and as double-quoted escapes
// otherwise.
//
// # Related Packages
//
//   - github.com/yamlcore/go-yamlcore/ir - value tree representation
//   - github.com/yamlcore/go-yamlcore/load - build value trees from text
package encode
